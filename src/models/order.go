package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID          string
	Status           OrderStatus
	StockName        string
	Quantity         decimal.Decimal
	ExecutedQuantity decimal.Decimal
	Price            decimal.NullDecimal
	ExecutedPrice    decimal.NullDecimal
	SubmittedAt      time.Time
	Side             OrderSide
	Symbol           string
	OrderType        OrderType
	LastDone         decimal.NullDecimal
	TriggerPrice     decimal.NullDecimal
	LimitOffset      decimal.NullDecimal
	TrailingAmount   decimal.NullDecimal
	TrailingPercent  decimal.NullDecimal
	Msg              string
	TimeInForce      TimeInForceType
	ExpireDate       string
	UpdatedAt        time.Time
	Currency         string
	OutsideRTH       OutsideRTH
	Remark           string
}

// OrderDTO is the wire form of an order. Numbers and timestamps arrive as
// strings, empty when unset.
type OrderDTO struct {
	OrderID          string `json:"order_id"`
	Status           string `json:"status"`
	StockName        string `json:"stock_name"`
	Quantity         string `json:"quantity"`
	ExecutedQuantity string `json:"executed_quantity"`
	Price            string `json:"price"`
	ExecutedPrice    string `json:"executed_price"`
	SubmittedAt      string `json:"submitted_at"`
	Side             string `json:"side"`
	Symbol           string `json:"symbol"`
	OrderType        string `json:"order_type"`
	LastDone         string `json:"last_done"`
	TriggerPrice     string `json:"trigger_price"`
	LimitOffset      string `json:"limit_offset"`
	TrailingAmount   string `json:"trailing_amount"`
	TrailingPercent  string `json:"trailing_percent"`
	Msg              string `json:"msg"`
	TimeInForce      string `json:"time_in_force"`
	ExpireDate       string `json:"expire_date"`
	UpdatedAt        string `json:"updated_at"`
	Currency         string `json:"currency"`
	OutsideRTH       string `json:"outside_rth"`
	Remark           string `json:"remark"`
}

type TodayOrdersResponseDTO struct {
	Orders []*OrderDTO `json:"orders"`
}

func (dto *OrderDTO) ToOrder() (*Order, error) {
	quantity, err := decimal.NewFromString(dto.Quantity)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse quantity %q: %w", dto.Quantity, err)
	}

	executedQuantity := decimal.Zero
	if dto.ExecutedQuantity != "" {
		if executedQuantity, err = decimal.NewFromString(dto.ExecutedQuantity); err != nil {
			return nil, fmt.Errorf("ToOrder: failed to parse executed quantity %q: %w", dto.ExecutedQuantity, err)
		}
	}

	price, err := parseOptionalDecimal(dto.Price)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse price %q: %w", dto.Price, err)
	}

	executedPrice, err := parseOptionalDecimal(dto.ExecutedPrice)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse executed price %q: %w", dto.ExecutedPrice, err)
	}

	lastDone, err := parseOptionalDecimal(dto.LastDone)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse last done %q: %w", dto.LastDone, err)
	}

	triggerPrice, err := parseOptionalDecimal(dto.TriggerPrice)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse trigger price %q: %w", dto.TriggerPrice, err)
	}

	limitOffset, err := parseOptionalDecimal(dto.LimitOffset)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse limit offset %q: %w", dto.LimitOffset, err)
	}

	trailingAmount, err := parseOptionalDecimal(dto.TrailingAmount)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse trailing amount %q: %w", dto.TrailingAmount, err)
	}

	trailingPercent, err := parseOptionalDecimal(dto.TrailingPercent)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse trailing percent %q: %w", dto.TrailingPercent, err)
	}

	submittedAt, err := parseUnixSeconds(dto.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse submitted at %q: %w", dto.SubmittedAt, err)
	}

	updatedAt, err := parseUnixSeconds(dto.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ToOrder: failed to parse updated at %q: %w", dto.UpdatedAt, err)
	}

	return &Order{
		OrderID:          dto.OrderID,
		Status:           OrderStatus(dto.Status),
		StockName:        dto.StockName,
		Quantity:         quantity,
		ExecutedQuantity: executedQuantity,
		Price:            price,
		ExecutedPrice:    executedPrice,
		SubmittedAt:      submittedAt,
		Side:             OrderSide(dto.Side),
		Symbol:           dto.Symbol,
		OrderType:        OrderType(dto.OrderType),
		LastDone:         lastDone,
		TriggerPrice:     triggerPrice,
		LimitOffset:      limitOffset,
		TrailingAmount:   trailingAmount,
		TrailingPercent:  trailingPercent,
		Msg:              dto.Msg,
		TimeInForce:      TimeInForceType(dto.TimeInForce),
		ExpireDate:       dto.ExpireDate,
		UpdatedAt:        updatedAt,
		Currency:         dto.Currency,
		OutsideRTH:       OutsideRTH(dto.OutsideRTH),
		Remark:           dto.Remark,
	}, nil
}

// ToDTO is the inverse of ToOrder.
func (o *Order) ToDTO() *OrderDTO {
	return &OrderDTO{
		OrderID:          o.OrderID,
		Status:           string(o.Status),
		StockName:        o.StockName,
		Quantity:         o.Quantity.String(),
		ExecutedQuantity: o.ExecutedQuantity.String(),
		Price:            nullDecimalString(o.Price),
		ExecutedPrice:    nullDecimalString(o.ExecutedPrice),
		SubmittedAt:      formatUnixSeconds(o.SubmittedAt),
		Side:             string(o.Side),
		Symbol:           o.Symbol,
		OrderType:        string(o.OrderType),
		LastDone:         nullDecimalString(o.LastDone),
		TriggerPrice:     nullDecimalString(o.TriggerPrice),
		LimitOffset:      nullDecimalString(o.LimitOffset),
		TrailingAmount:   nullDecimalString(o.TrailingAmount),
		TrailingPercent:  nullDecimalString(o.TrailingPercent),
		Msg:              o.Msg,
		TimeInForce:      string(o.TimeInForce),
		ExpireDate:       o.ExpireDate,
		UpdatedAt:        formatUnixSeconds(o.UpdatedAt),
		Currency:         o.Currency,
		OutsideRTH:       string(o.OutsideRTH),
		Remark:           o.Remark,
	}
}

func parseUnixSeconds(s string) (time.Time, error) {
	if s == "" || s == "0" {
		return time.Time{}, nil
	}

	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(secs, 0).UTC(), nil
}

func formatUnixSeconds(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return strconv.FormatInt(t.Unix(), 10)
}

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}

	return d.Decimal.String()
}
