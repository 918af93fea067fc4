package run

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/longport-trade/src/models"
	"github.com/jiaming2012/longport-trade/src/trade"
)

func newMock() *trade.MockTradeContext {
	mock := trade.NewMockTradeContext()
	mock.Orders = []*models.Order{
		{
			OrderID:     "706388312699592704",
			Status:      models.OrderStatusFilled,
			Quantity:    decimal.NewFromInt(200),
			Price:       decimal.NewNullDecimal(decimal.RequireFromString("320.4")),
			Side:        models.OrderSideBuy,
			Symbol:      "700.HK",
			OrderType:   models.OrderTypeMO,
			TimeInForce: models.TimeInForceDay,
			SubmittedAt: time.Date(2026, 10, 19, 2, 30, 0, 0, time.UTC),
		},
		{
			OrderID:   "706388312699592705",
			Status:    models.OrderStatusNew,
			Quantity:  decimal.NewFromInt(10),
			Side:      models.OrderSideSell,
			Symbol:    "AAPL.US",
			OrderType: models.OrderTypeLO,
		},
	}

	return mock
}

func TestParseStatuses(t *testing.T) {
	assert.Equal(t, []models.OrderStatus{models.OrderStatusNew, models.OrderStatusFilled}, ParseStatuses([]string{" NewStatus", "", "FilledStatus"}))
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		result, err := Run(ctx, RunArgs{Output: OutputText}, newMock(), &out)
		require.NoError(t, err)
		assert.Len(t, result.Orders, 2)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "706388312699592704 Buy MO 700.HK x 200 [FilledStatus]", lines[0])
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Run(ctx, RunArgs{Output: OutputJSON}, newMock(), &out)
		require.NoError(t, err)

		var dtos []*models.OrderDTO
		require.NoError(t, json.Unmarshal(out.Bytes(), &dtos))
		require.Len(t, dtos, 2)
		assert.Equal(t, "320.4", dtos[0].Price)
	})

	t.Run("csv to stdout", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Run(ctx, RunArgs{Output: OutputCsv}, newMock(), &out)
		require.NoError(t, err)

		var rows []*OrderRow
		require.NoError(t, gocsv.UnmarshalString(out.String(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "706388312699592704", rows[0].OrderID)
		assert.Equal(t, "2026-10-19T02:30:00Z", rows[0].SubmittedAt)
		assert.Equal(t, "", rows[1].Price)
	})

	t.Run("csv to file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exports")
		var out bytes.Buffer

		result, err := Run(ctx, RunArgs{Output: OutputCsv, OutDir: dir}, newMock(), &out)
		require.NoError(t, err)
		require.NotEmpty(t, result.CsvPath)

		data, err := os.ReadFile(result.CsvPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "order_id,symbol"))
		assert.Contains(t, out.String(), result.CsvPath)
	})

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Run(ctx, RunArgs{Output: OutputTable}, newMock(), &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "AAPL.US")
	})

	t.Run("unknown output", func(t *testing.T) {
		_, err := Run(ctx, RunArgs{Output: "xml"}, newMock(), &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("error", func(t *testing.T) {
		mock := newMock()
		mock.Err = errors.New("unauthorized")

		_, err := Run(ctx, RunArgs{Output: OutputText}, mock, &bytes.Buffer{})
		assert.True(t, errors.Is(err, mock.Err))
	})
}

func TestNewHistoryOptions(t *testing.T) {
	t.Run("blank range", func(t *testing.T) {
		opts, err := NewHistoryOptions(nil, "", "")
		require.NoError(t, err)
		assert.Nil(t, opts)
	})

	t.Run("copies filters", func(t *testing.T) {
		today := &models.GetTodayOrdersOptions{Symbol: "700.HK", Side: models.OrderSideSell, Market: "HK"}

		opts, err := NewHistoryOptions(today, "2026-10-01T00:00:00+08:00", "")
		require.NoError(t, err)
		assert.Equal(t, "700.HK", opts.Symbol)
		assert.Equal(t, models.OrderSideSell, opts.Side)
		assert.Equal(t, "HK", opts.Market)
		assert.True(t, opts.StartAt.Equal(time.Date(2026, 9, 30, 16, 0, 0, 0, time.UTC)))
		assert.True(t, opts.EndAt.IsZero())
	})

	t.Run("invalid time", func(t *testing.T) {
		_, err := NewHistoryOptions(nil, "", "2026-10-01")
		assert.ErrorContains(t, err, "end-at")
	})
}

func TestRunHistory(t *testing.T) {
	mock := newMock()
	mock.History = []*models.Order{
		{
			OrderID:   "690000000000000001",
			Status:    models.OrderStatusCanceled,
			Quantity:  decimal.NewFromInt(300),
			Side:      models.OrderSideSell,
			Symbol:    "9988.HK",
			OrderType: models.OrderTypeLO,
		},
	}

	dir := t.TempDir()
	var out bytes.Buffer

	result, err := Run(context.Background(), RunArgs{
		History: &models.GetHistoryOrdersOptions{Symbol: "9988.HK"},
		Output:  OutputCsv,
		OutDir:  dir,
	}, mock, &out)
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, "690000000000000001", result.Orders[0].OrderID)
	assert.True(t, strings.HasPrefix(filepath.Base(result.CsvPath), "history_orders_"))
}

func TestExportToCsv(t *testing.T) {
	orders := newMock().Orders
	now := time.Date(2026, 10, 19, 9, 30, 5, 0, time.UTC)

	t.Run("writes every row", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "exports")

		path, err := ExportToCsv(dir, orders, "today_orders", now)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "today_orders_2026-10-19_09-30-05.csv"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var rows []*OrderRow
		require.NoError(t, gocsv.UnmarshalBytes(data, &rows))
		require.Len(t, rows, len(orders))
		assert.Equal(t, "AAPL.US", rows[1].Symbol)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(file, nil, 0o600))

		_, err := ExportToCsv(file, orders, "today_orders", now)
		assert.Error(t, err)
	})
}
