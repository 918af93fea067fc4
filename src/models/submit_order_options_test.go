package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marketOrder() *SubmitOrderOptions {
	return NewSubmitOrderOptions("700.HK", OrderTypeMO, OrderSideBuy, decimal.NewFromInt(200), TimeInForceDay).
		WithOutsideRTH(OutsideRTHAnyTime).
		WithRemark("Hello from Go SDK")
}

func TestSubmitOrderOptionsValidate(t *testing.T) {
	t.Run("market order", func(t *testing.T) {
		assert.NoError(t, marketOrder().Validate())
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		for _, q := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
			opts := marketOrder()
			opts.SubmittedQuantity = q
			err := opts.Validate()
			assert.True(t, errors.Is(err, ErrInvalidQuantity), "quantity %s", q)
		}
	})

	t.Run("fractional quantity is allowed", func(t *testing.T) {
		opts := marketOrder()
		opts.SubmittedQuantity = decimal.RequireFromString("0.5")
		assert.NoError(t, opts.Validate())
	})

	t.Run("symbol must be exchange qualified", func(t *testing.T) {
		for _, symbol := range []string{"", "700", ".HK", "700."} {
			opts := marketOrder()
			opts.Symbol = symbol
			assert.True(t, errors.Is(opts.Validate(), ErrInvalidSymbol), "symbol %q", symbol)
		}
	})

	t.Run("invalid enums", func(t *testing.T) {
		opts := marketOrder()
		opts.Side = "Hold"
		assert.True(t, errors.Is(opts.Validate(), ErrInvalidEnum))

		opts = marketOrder()
		opts.OrderType = "XX"
		assert.True(t, errors.Is(opts.Validate(), ErrInvalidEnum))

		opts = marketOrder()
		opts.TimeInForce = "Week"
		assert.True(t, errors.Is(opts.Validate(), ErrInvalidEnum))

		opts = marketOrder()
		opts.OutsideRTH = "Sometimes"
		assert.True(t, errors.Is(opts.Validate(), ErrInvalidEnum))
	})

	t.Run("order type specific fields", func(t *testing.T) {
		price := decimal.RequireFromString("320.4")
		one := decimal.NewFromInt(1)

		cases := []struct {
			name  string
			opts  *SubmitOrderOptions
			valid bool
		}{
			{"LO without price", NewSubmitOrderOptions("700.HK", OrderTypeLO, OrderSideBuy, one, TimeInForceDay), false},
			{"LO with price", NewSubmitOrderOptions("700.HK", OrderTypeLO, OrderSideBuy, one, TimeInForceDay).WithPrice(price), true},
			{"MIT without trigger", NewSubmitOrderOptions("AAPL.US", OrderTypeMIT, OrderSideSell, one, TimeInForceDay), false},
			{"MIT with trigger", NewSubmitOrderOptions("AAPL.US", OrderTypeMIT, OrderSideSell, one, TimeInForceDay).WithTriggerPrice(price), true},
			{"LIT with trigger only", NewSubmitOrderOptions("AAPL.US", OrderTypeLIT, OrderSideSell, one, TimeInForceDay).WithTriggerPrice(price), false},
			{"TSLPAMT missing offset", NewSubmitOrderOptions("AAPL.US", OrderTypeTSLPAMT, OrderSideSell, one, TimeInForceDay).WithTrailingAmount(one), false},
			{"TSLPAMT complete", NewSubmitOrderOptions("AAPL.US", OrderTypeTSLPAMT, OrderSideSell, one, TimeInForceDay).WithTrailingAmount(one).WithLimitOffset(one), true},
			{"TSMPCT missing percent", NewSubmitOrderOptions("AAPL.US", OrderTypeTSMPCT, OrderSideSell, one, TimeInForceDay), false},
			{"TSMPCT complete", NewSubmitOrderOptions("AAPL.US", OrderTypeTSMPCT, OrderSideSell, one, TimeInForceDay).WithTrailingPercent(one), true},
			{"negative price", NewSubmitOrderOptions("700.HK", OrderTypeLO, OrderSideBuy, one, TimeInForceDay).WithPrice(price.Neg()), false},
			{"GTD without expire date", NewSubmitOrderOptions("700.HK", OrderTypeMO, OrderSideBuy, one, TimeInForceGoodTilDate), false},
			{"GTD with expire date", NewSubmitOrderOptions("700.HK", OrderTypeMO, OrderSideBuy, one, TimeInForceGoodTilDate).WithExpireDate(time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC)), true},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				err := tc.opts.Validate()
				if tc.valid {
					assert.NoError(t, err)
				} else {
					assert.Error(t, err)
				}
			})
		}
	})

	t.Run("remark length", func(t *testing.T) {
		opts := marketOrder().WithRemark(strings.Repeat("a", MaxRemarkLength))
		assert.NoError(t, opts.Validate())

		opts = marketOrder().WithRemark(strings.Repeat("好", MaxRemarkLength))
		assert.NoError(t, opts.Validate(), "limit counts characters, not bytes")

		opts = marketOrder().WithRemark(strings.Repeat("a", MaxRemarkLength+1))
		assert.True(t, errors.Is(opts.Validate(), ErrRemarkTooLong))
	})
}

func TestSubmitOrderOptionsMarshalJSON(t *testing.T) {
	t.Run("market order", func(t *testing.T) {
		data, err := json.Marshal(marketOrder())
		require.NoError(t, err)

		var body map[string]string
		require.NoError(t, json.Unmarshal(data, &body))

		assert.Equal(t, map[string]string{
			"symbol":             "700.HK",
			"order_type":         "MO",
			"side":               "Buy",
			"submitted_quantity": "200",
			"time_in_force":      "Day",
			"outside_rth":        "ANY_TIME",
			"remark":             "Hello from Go SDK",
		}, body)
	})

	t.Run("decimals keep their exact form", func(t *testing.T) {
		opts := NewSubmitOrderOptions("700.HK", OrderTypeLO, OrderSideSell, decimal.RequireFromString("100.10"), TimeInForceGoodTilDate).
			WithPrice(decimal.RequireFromString("0.1")).
			WithExpireDate(time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC))

		data, err := json.Marshal(opts)
		require.NoError(t, err)

		assert.Contains(t, string(data), `"submitted_quantity":"100.1"`)
		assert.Contains(t, string(data), `"submitted_price":"0.1"`)
		assert.Contains(t, string(data), `"expire_date":"2026-10-30"`)
		assert.NotContains(t, string(data), "remark")
	})

	t.Run("remark is NFC normalized", func(t *testing.T) {
		opts := marketOrder().WithRemark("Cafe\u0301")

		data, err := json.Marshal(opts)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Caf\u00e9")
		assert.NotContains(t, string(data), "\u0301")
	})
}

func TestParseEnums(t *testing.T) {
	side, err := ParseOrderSide("buy")
	require.NoError(t, err)
	assert.Equal(t, OrderSideBuy, side)

	orderType, err := ParseOrderType("mo")
	require.NoError(t, err)
	assert.Equal(t, OrderTypeMO, orderType)

	tif, err := ParseTimeInForceType("gtc")
	require.NoError(t, err)
	assert.Equal(t, TimeInForceGoodTilCanceled, tif)

	for _, s := range []string{"AnyTime", "ANY_TIME", "any_time"} {
		outsideRTH, err := ParseOutsideRTH(s)
		require.NoError(t, err)
		assert.Equal(t, OutsideRTHAnyTime, outsideRTH)
	}

	_, err = ParseOrderSide("short")
	assert.True(t, errors.Is(err, ErrInvalidEnum))
}
