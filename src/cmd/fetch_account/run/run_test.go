package run

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/longport-trade/src/models"
	"github.com/jiaming2012/longport-trade/src/trade"
)

func newMock() *trade.MockTradeContext {
	mock := trade.NewMockTradeContext()
	mock.Balances = []*models.AccountBalance{
		{Currency: "HKD", TotalCash: decimal.RequireFromString("10000.5"), NetAssets: decimal.NewFromInt(12000), BuyPower: decimal.NewFromInt(20000)},
	}
	mock.Positions = []*models.StockPositionChannel{
		{
			AccountChannel: "lb",
			Positions: []*models.StockPosition{
				{Symbol: "700.HK", Quantity: decimal.NewFromInt(200), CostPrice: decimal.RequireFromString("320.4"), Currency: "HKD"},
			},
		},
	}

	return mock
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		result, err := Run(ctx, RunArgs{Output: OutputText}, newMock(), &out)
		require.NoError(t, err)
		assert.Len(t, result.Balances, 1)
		assert.Equal(t, "HKD cash 10000.5, net assets 12000, buy power 20000\nlb 700.HK x 200 @ 320.4 HKD\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Run(ctx, RunArgs{Output: OutputJSON}, newMock(), &out)
		require.NoError(t, err)

		var dto accountDTO
		require.NoError(t, json.Unmarshal(out.Bytes(), &dto))
		require.Len(t, dto.Balances, 1)
		assert.Equal(t, "10000.5", dto.Balances[0].TotalCash)
		require.Len(t, dto.Positions, 1)
		assert.Equal(t, "320.4", dto.Positions[0].StockInfo[0].CostPrice)
	})

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Run(ctx, RunArgs{Output: OutputTable}, newMock(), &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "10,000.5")
		assert.Contains(t, out.String(), "700.HK")
	})

	t.Run("unknown output", func(t *testing.T) {
		_, err := Run(ctx, RunArgs{Output: "xml"}, newMock(), &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("error", func(t *testing.T) {
		mock := newMock()
		mock.Err = errors.New("permission denied")

		_, err := Run(ctx, RunArgs{}, mock, &bytes.Buffer{})
		assert.ErrorIs(t, err, mock.Err)
	})
}
