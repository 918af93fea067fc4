package models

import "fmt"

type TimeInForceType string

const (
	TimeInForceDay             TimeInForceType = "Day"
	TimeInForceGoodTilCanceled TimeInForceType = "GTC"
	TimeInForceGoodTilDate     TimeInForceType = "GTD"
)

func (t TimeInForceType) Validate() error {
	switch t {
	case TimeInForceDay, TimeInForceGoodTilCanceled, TimeInForceGoodTilDate:
		return nil
	default:
		return fmt.Errorf("time in force %q: %w", string(t), ErrInvalidEnum)
	}
}

func ParseTimeInForceType(s string) (TimeInForceType, error) {
	for _, v := range []TimeInForceType{TimeInForceDay, TimeInForceGoodTilCanceled, TimeInForceGoodTilDate} {
		if equalFold(s, string(v)) {
			return v, nil
		}
	}

	return "", fmt.Errorf("time in force %q: %w", s, ErrInvalidEnum)
}
