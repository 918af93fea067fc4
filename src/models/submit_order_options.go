package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const ExpireDateLayout = "2006-01-02"

// SubmitOrderOptions describes a new order. Quantities and prices are exact
// decimals and are sent to the API as strings.
type SubmitOrderOptions struct {
	Symbol            string
	OrderType         OrderType
	Side              OrderSide
	SubmittedQuantity decimal.Decimal
	TimeInForce       TimeInForceType
	SubmittedPrice    *decimal.Decimal
	TriggerPrice      *decimal.Decimal
	LimitOffset       *decimal.Decimal
	TrailingAmount    *decimal.Decimal
	TrailingPercent   *decimal.Decimal
	ExpireDate        *time.Time
	OutsideRTH        OutsideRTH
	Remark            string
}

type submitOrderBody struct {
	Symbol            string `json:"symbol"`
	OrderType         string `json:"order_type"`
	Side              string `json:"side"`
	SubmittedQuantity string `json:"submitted_quantity"`
	TimeInForce       string `json:"time_in_force"`
	SubmittedPrice    string `json:"submitted_price,omitempty"`
	TriggerPrice      string `json:"trigger_price,omitempty"`
	LimitOffset       string `json:"limit_offset,omitempty"`
	TrailingAmount    string `json:"trailing_amount,omitempty"`
	TrailingPercent   string `json:"trailing_percent,omitempty"`
	ExpireDate        string `json:"expire_date,omitempty"`
	OutsideRTH        string `json:"outside_rth,omitempty"`
	Remark            string `json:"remark,omitempty"`
}

func NewSubmitOrderOptions(symbol string, orderType OrderType, side OrderSide, quantity decimal.Decimal, timeInForce TimeInForceType) *SubmitOrderOptions {
	return &SubmitOrderOptions{
		Symbol:            symbol,
		OrderType:         orderType,
		Side:              side,
		SubmittedQuantity: quantity,
		TimeInForce:       timeInForce,
	}
}

func (o *SubmitOrderOptions) WithPrice(price decimal.Decimal) *SubmitOrderOptions {
	o.SubmittedPrice = &price
	return o
}

func (o *SubmitOrderOptions) WithTriggerPrice(price decimal.Decimal) *SubmitOrderOptions {
	o.TriggerPrice = &price
	return o
}

func (o *SubmitOrderOptions) WithLimitOffset(offset decimal.Decimal) *SubmitOrderOptions {
	o.LimitOffset = &offset
	return o
}

func (o *SubmitOrderOptions) WithTrailingAmount(amount decimal.Decimal) *SubmitOrderOptions {
	o.TrailingAmount = &amount
	return o
}

func (o *SubmitOrderOptions) WithTrailingPercent(percent decimal.Decimal) *SubmitOrderOptions {
	o.TrailingPercent = &percent
	return o
}

func (o *SubmitOrderOptions) WithExpireDate(date time.Time) *SubmitOrderOptions {
	o.ExpireDate = &date
	return o
}

func (o *SubmitOrderOptions) WithOutsideRTH(outsideRTH OutsideRTH) *SubmitOrderOptions {
	o.OutsideRTH = outsideRTH
	return o
}

func (o *SubmitOrderOptions) WithRemark(remark string) *SubmitOrderOptions {
	o.Remark = remark
	return o
}

func (o *SubmitOrderOptions) Validate() error {
	if err := ValidateSymbol(o.Symbol); err != nil {
		return fmt.Errorf("SubmitOrderOptions: %w", err)
	}

	if err := o.OrderType.Validate(); err != nil {
		return fmt.Errorf("SubmitOrderOptions: %w", err)
	}

	if err := o.Side.Validate(); err != nil {
		return fmt.Errorf("SubmitOrderOptions: %w", err)
	}

	if err := o.TimeInForce.Validate(); err != nil {
		return fmt.Errorf("SubmitOrderOptions: %w", err)
	}

	if o.OutsideRTH != "" {
		if err := o.OutsideRTH.Validate(); err != nil {
			return fmt.Errorf("SubmitOrderOptions: %w", err)
		}
	}

	if !o.SubmittedQuantity.IsPositive() {
		return fmt.Errorf("SubmitOrderOptions: submitted quantity %s: %w", o.SubmittedQuantity.String(), ErrInvalidQuantity)
	}

	if err := validatePriceFields(o.OrderType, o.SubmittedPrice, o.TriggerPrice, o.LimitOffset, o.TrailingAmount, o.TrailingPercent); err != nil {
		return fmt.Errorf("SubmitOrderOptions: %w", err)
	}

	if o.TimeInForce == TimeInForceGoodTilDate && o.ExpireDate == nil {
		return fmt.Errorf("SubmitOrderOptions: expire date is required for %s orders: %w", o.TimeInForce, ErrMissingField)
	}

	if _, err := NormalizeRemark(o.Remark); err != nil {
		return fmt.Errorf("SubmitOrderOptions: %w", err)
	}

	return nil
}

func (o SubmitOrderOptions) MarshalJSON() ([]byte, error) {
	remark, err := NormalizeRemark(o.Remark)
	if err != nil {
		return nil, err
	}

	body := submitOrderBody{
		Symbol:            o.Symbol,
		OrderType:         string(o.OrderType),
		Side:              string(o.Side),
		SubmittedQuantity: o.SubmittedQuantity.String(),
		TimeInForce:       string(o.TimeInForce),
		SubmittedPrice:    decimalString(o.SubmittedPrice),
		TriggerPrice:      decimalString(o.TriggerPrice),
		LimitOffset:       decimalString(o.LimitOffset),
		TrailingAmount:    decimalString(o.TrailingAmount),
		TrailingPercent:   decimalString(o.TrailingPercent),
		OutsideRTH:        string(o.OutsideRTH),
		Remark:            remark,
	}

	if o.ExpireDate != nil {
		body.ExpireDate = o.ExpireDate.Format(ExpireDateLayout)
	}

	return json.Marshal(body)
}

func (o SubmitOrderOptions) String() string {
	return fmt.Sprintf("%s %s %s x %s (%s, outside_rth=%s)", o.Side, o.OrderType, o.Symbol, o.SubmittedQuantity.String(), o.TimeInForce, o.OutsideRTH)
}

func validatePriceFields(orderType OrderType, price, triggerPrice, limitOffset, trailingAmount, trailingPercent *decimal.Decimal) error {
	if orderType.RequiresPrice() && price == nil {
		return fmt.Errorf("submitted price is required for %s orders: %w", orderType, ErrMissingField)
	}

	if orderType.RequiresTriggerPrice() && triggerPrice == nil {
		return fmt.Errorf("trigger price is required for %s orders: %w", orderType, ErrMissingField)
	}

	if orderType.RequiresLimitOffset() && limitOffset == nil {
		return fmt.Errorf("limit offset is required for %s orders: %w", orderType, ErrMissingField)
	}

	if orderType.RequiresTrailingAmount() && trailingAmount == nil {
		return fmt.Errorf("trailing amount is required for %s orders: %w", orderType, ErrMissingField)
	}

	if orderType.RequiresTrailingPercent() && trailingPercent == nil {
		return fmt.Errorf("trailing percent is required for %s orders: %w", orderType, ErrMissingField)
	}

	if err := validatePositive("submitted price", price); err != nil {
		return err
	}

	if err := validatePositive("trigger price", triggerPrice); err != nil {
		return err
	}

	if err := validatePositive("trailing amount", trailingAmount); err != nil {
		return err
	}

	return validatePositive("trailing percent", trailingPercent)
}
