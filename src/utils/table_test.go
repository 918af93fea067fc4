package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/longport-trade/src/models"
)

func TestFormatDecimal(t *testing.T) {
	cases := map[string]string{
		"200":         "200",
		"1234567":     "1,234,567",
		"-1234.5":     "-1,234.5",
		"0.001":       "0.001",
		"999.99":      "999.99",
		"12345.67890": "12,345.6789",
	}

	for in, expected := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, expected, FormatDecimal(decimal.RequireFromString(in)))
		})
	}
}

func TestRenderOrdersTable(t *testing.T) {
	var buf bytes.Buffer
	RenderOrdersTable(&buf, []*models.Order{
		{
			OrderID:     "706388312699592704",
			Symbol:      "700.HK",
			Side:        models.OrderSideBuy,
			OrderType:   models.OrderTypeMO,
			Status:      models.OrderStatusNew,
			Quantity:    decimal.NewFromInt(200),
			SubmittedAt: time.Date(2026, 10, 19, 2, 30, 0, 0, time.UTC),
		},
	})

	out := buf.String()
	assert.Contains(t, out, "706388312699592704")
	assert.Contains(t, out, "700.HK")
	assert.Contains(t, out, "2026-10-19 02:30:00")
}

func TestRenderSubmitOrderTable(t *testing.T) {
	var buf bytes.Buffer
	opts := models.NewSubmitOrderOptions("700.HK", models.OrderTypeMO, models.OrderSideBuy, decimal.NewFromInt(200), models.TimeInForceDay)
	RenderSubmitOrderTable(&buf, opts, &models.SubmitOrderResponse{OrderID: "42"})

	assert.Contains(t, buf.String(), "42")
	assert.Contains(t, buf.String(), "MO")
}

func TestRenderAccountTables(t *testing.T) {
	var buf bytes.Buffer
	RenderAccountBalancesTable(&buf, []*models.AccountBalance{
		{Currency: "HKD", TotalCash: decimal.RequireFromString("1759070010.72"), RiskLevel: 1},
	})
	assert.Contains(t, buf.String(), "1,759,070,010.72")
	assert.Contains(t, buf.String(), "HKD")

	buf.Reset()
	RenderStockPositionsTable(&buf, []*models.StockPositionChannel{
		{
			AccountChannel: "lb",
			Positions: []*models.StockPosition{
				{Symbol: "700.HK", SymbolName: "TENCENT", Quantity: decimal.NewFromInt(650), CostPrice: decimal.RequireFromString("457.53"), Currency: "HKD"},
			},
		},
	})
	assert.Contains(t, buf.String(), "TENCENT")
	assert.Contains(t, buf.String(), "457.53")
}
