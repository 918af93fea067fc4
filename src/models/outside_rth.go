package models

import (
	"fmt"
	"strings"
)

// OutsideRTH controls whether an order may execute outside regular trading hours.
type OutsideRTH string

const (
	OutsideRTHOnly      OutsideRTH = "RTH_ONLY"
	OutsideRTHAnyTime   OutsideRTH = "ANY_TIME"
	OutsideRTHOvernight OutsideRTH = "OVERNIGHT"
)

func (o OutsideRTH) Validate() error {
	switch o {
	case OutsideRTHOnly, OutsideRTHAnyTime, OutsideRTHOvernight:
		return nil
	default:
		return fmt.Errorf("outside rth %q: %w", string(o), ErrInvalidEnum)
	}
}

// ParseOutsideRTH accepts both the wire form (ANY_TIME) and the camel case
// form (AnyTime).
func ParseOutsideRTH(s string) (OutsideRTH, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(s), "_", "")
	switch normalized {
	case "RTHONLY":
		return OutsideRTHOnly, nil
	case "ANYTIME":
		return OutsideRTHAnyTime, nil
	case "OVERNIGHT":
		return OutsideRTHOvernight, nil
	}

	return "", fmt.Errorf("outside rth %q: %w", s, ErrInvalidEnum)
}
