package models

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
)

var queryEncoder = schema.NewEncoder()

type GetTodayOrdersOptions struct {
	Symbol  string        `schema:"symbol,omitempty"`
	Status  []OrderStatus `schema:"status,omitempty"`
	Side    OrderSide     `schema:"side,omitempty"`
	Market  string        `schema:"market,omitempty"`
	OrderID string        `schema:"order_id,omitempty"`
}

func (o *GetTodayOrdersOptions) Validate() error {
	if o.Side != "" {
		if err := o.Side.Validate(); err != nil {
			return fmt.Errorf("GetTodayOrdersOptions: %w", err)
		}
	}

	if err := validateMarket(o.Market); err != nil {
		return fmt.Errorf("GetTodayOrdersOptions: %w", err)
	}

	return nil
}

func validateMarket(market string) error {
	switch market {
	case "", "US", "HK", "CN", "SG":
		return nil
	}

	return fmt.Errorf("market %q: %w", market, ErrInvalidEnum)
}

func (o *GetTodayOrdersOptions) Query() (url.Values, error) {
	values := url.Values{}
	if o == nil {
		return values, nil
	}

	if err := queryEncoder.Encode(o, values); err != nil {
		return nil, fmt.Errorf("GetTodayOrdersOptions: failed to encode query: %w", err)
	}

	return values, nil
}
