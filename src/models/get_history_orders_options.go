package models

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// GetHistoryOrdersOptions filters orders placed before today. Zero times are
// left to the server's default window.
type GetHistoryOrdersOptions struct {
	Symbol  string
	Status  []OrderStatus
	Side    OrderSide
	Market  string
	StartAt time.Time
	EndAt   time.Time
}

type historyOrdersQuery struct {
	Symbol  string        `schema:"symbol,omitempty"`
	Status  []OrderStatus `schema:"status,omitempty"`
	Side    OrderSide     `schema:"side,omitempty"`
	Market  string        `schema:"market,omitempty"`
	StartAt string        `schema:"start_at,omitempty"`
	EndAt   string        `schema:"end_at,omitempty"`
}

type HistoryOrdersResponseDTO struct {
	HasMore bool        `json:"has_more"`
	Orders  []*OrderDTO `json:"orders"`
}

func (o *GetHistoryOrdersOptions) Validate() error {
	if o.Side != "" {
		if err := o.Side.Validate(); err != nil {
			return fmt.Errorf("GetHistoryOrdersOptions: %w", err)
		}
	}

	if err := validateMarket(o.Market); err != nil {
		return fmt.Errorf("GetHistoryOrdersOptions: %w", err)
	}

	if !o.StartAt.IsZero() && !o.EndAt.IsZero() && o.EndAt.Before(o.StartAt) {
		return fmt.Errorf("GetHistoryOrdersOptions: %s < %s: %w", o.EndAt.Format(time.RFC3339), o.StartAt.Format(time.RFC3339), ErrInvalidRange)
	}

	return nil
}

// Query encodes the filters, with times as unix seconds.
func (o *GetHistoryOrdersOptions) Query() (url.Values, error) {
	values := url.Values{}
	if o == nil {
		return values, nil
	}

	q := historyOrdersQuery{
		Symbol: o.Symbol,
		Status: o.Status,
		Side:   o.Side,
		Market: o.Market,
	}

	if !o.StartAt.IsZero() {
		q.StartAt = strconv.FormatInt(o.StartAt.Unix(), 10)
	}

	if !o.EndAt.IsZero() {
		q.EndAt = strconv.FormatInt(o.EndAt.Unix(), 10)
	}

	if err := queryEncoder.Encode(&q, values); err != nil {
		return nil, fmt.Errorf("GetHistoryOrdersOptions: failed to encode query: %w", err)
	}

	return values, nil
}
