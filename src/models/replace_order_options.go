package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type ReplaceOrderOptions struct {
	OrderID         string
	Quantity        decimal.Decimal
	Price           *decimal.Decimal
	TriggerPrice    *decimal.Decimal
	LimitOffset     *decimal.Decimal
	TrailingAmount  *decimal.Decimal
	TrailingPercent *decimal.Decimal
	Remark          string
}

type replaceOrderBody struct {
	OrderID         string `json:"order_id"`
	Quantity        string `json:"quantity"`
	Price           string `json:"price,omitempty"`
	TriggerPrice    string `json:"trigger_price,omitempty"`
	LimitOffset     string `json:"limit_offset,omitempty"`
	TrailingAmount  string `json:"trailing_amount,omitempty"`
	TrailingPercent string `json:"trailing_percent,omitempty"`
	Remark          string `json:"remark,omitempty"`
}

func NewReplaceOrderOptions(orderID string, quantity decimal.Decimal) *ReplaceOrderOptions {
	return &ReplaceOrderOptions{
		OrderID:  orderID,
		Quantity: quantity,
	}
}

func (o *ReplaceOrderOptions) WithPrice(price decimal.Decimal) *ReplaceOrderOptions {
	o.Price = &price
	return o
}

func (o *ReplaceOrderOptions) WithTriggerPrice(price decimal.Decimal) *ReplaceOrderOptions {
	o.TriggerPrice = &price
	return o
}

func (o *ReplaceOrderOptions) WithLimitOffset(offset decimal.Decimal) *ReplaceOrderOptions {
	o.LimitOffset = &offset
	return o
}

func (o *ReplaceOrderOptions) WithTrailingAmount(amount decimal.Decimal) *ReplaceOrderOptions {
	o.TrailingAmount = &amount
	return o
}

func (o *ReplaceOrderOptions) WithTrailingPercent(percent decimal.Decimal) *ReplaceOrderOptions {
	o.TrailingPercent = &percent
	return o
}

func (o *ReplaceOrderOptions) WithRemark(remark string) *ReplaceOrderOptions {
	o.Remark = remark
	return o
}

func (o *ReplaceOrderOptions) Validate() error {
	if o.OrderID == "" {
		return fmt.Errorf("ReplaceOrderOptions: order id: %w", ErrMissingField)
	}

	if !o.Quantity.IsPositive() {
		return fmt.Errorf("ReplaceOrderOptions: quantity %s: %w", o.Quantity.String(), ErrInvalidQuantity)
	}

	for name, v := range map[string]*decimal.Decimal{
		"price":            o.Price,
		"trigger price":    o.TriggerPrice,
		"trailing amount":  o.TrailingAmount,
		"trailing percent": o.TrailingPercent,
	} {
		if err := validatePositive(name, v); err != nil {
			return fmt.Errorf("ReplaceOrderOptions: %w", err)
		}
	}

	if _, err := NormalizeRemark(o.Remark); err != nil {
		return fmt.Errorf("ReplaceOrderOptions: %w", err)
	}

	return nil
}

func (o ReplaceOrderOptions) MarshalJSON() ([]byte, error) {
	remark, err := NormalizeRemark(o.Remark)
	if err != nil {
		return nil, err
	}

	return json.Marshal(replaceOrderBody{
		OrderID:         o.OrderID,
		Quantity:        o.Quantity.String(),
		Price:           decimalString(o.Price),
		TriggerPrice:    decimalString(o.TriggerPrice),
		LimitOffset:     decimalString(o.LimitOffset),
		TrailingAmount:  decimalString(o.TrailingAmount),
		TrailingPercent: decimalString(o.TrailingPercent),
		Remark:          remark,
	})
}
