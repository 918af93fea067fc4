package models

import "fmt"

type OrderSide string

const (
	OrderSideBuy  OrderSide = "Buy"
	OrderSideSell OrderSide = "Sell"
)

func (s OrderSide) Validate() error {
	switch s {
	case OrderSideBuy, OrderSideSell:
		return nil
	default:
		return fmt.Errorf("order side %q: %w", string(s), ErrInvalidEnum)
	}
}

func ParseOrderSide(s string) (OrderSide, error) {
	for _, side := range []OrderSide{OrderSideBuy, OrderSideSell} {
		if equalFold(s, string(side)) {
			return side, nil
		}
	}

	return "", fmt.Errorf("order side %q: %w", s, ErrInvalidEnum)
}
