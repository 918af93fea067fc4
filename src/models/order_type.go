package models

import "fmt"

type OrderType string

const (
	OrderTypeLO      OrderType = "LO"      // limit
	OrderTypeELO     OrderType = "ELO"     // enhanced limit
	OrderTypeMO      OrderType = "MO"      // market
	OrderTypeAO      OrderType = "AO"      // at-auction
	OrderTypeALO     OrderType = "ALO"     // at-auction limit
	OrderTypeODD     OrderType = "ODD"     // odd lots
	OrderTypeLIT     OrderType = "LIT"     // limit if touched
	OrderTypeMIT     OrderType = "MIT"     // market if touched
	OrderTypeTSLPAMT OrderType = "TSLPAMT" // trailing limit if touched, by amount
	OrderTypeTSLPPCT OrderType = "TSLPPCT" // trailing limit if touched, by percent
	OrderTypeTSMAMT  OrderType = "TSMAMT"  // trailing market if touched, by amount
	OrderTypeTSMPCT  OrderType = "TSMPCT"  // trailing market if touched, by percent
	OrderTypeSLO     OrderType = "SLO"     // special limit
)

var orderTypes = []OrderType{
	OrderTypeLO, OrderTypeELO, OrderTypeMO, OrderTypeAO, OrderTypeALO, OrderTypeODD,
	OrderTypeLIT, OrderTypeMIT, OrderTypeTSLPAMT, OrderTypeTSLPPCT, OrderTypeTSMAMT,
	OrderTypeTSMPCT, OrderTypeSLO,
}

func (t OrderType) Validate() error {
	for _, v := range orderTypes {
		if t == v {
			return nil
		}
	}

	return fmt.Errorf("order type %q: %w", string(t), ErrInvalidEnum)
}

func ParseOrderType(s string) (OrderType, error) {
	for _, v := range orderTypes {
		if equalFold(s, string(v)) {
			return v, nil
		}
	}

	return "", fmt.Errorf("order type %q: %w", s, ErrInvalidEnum)
}

// RequiresPrice reports whether the submitted price must be set.
func (t OrderType) RequiresPrice() bool {
	switch t {
	case OrderTypeLO, OrderTypeELO, OrderTypeALO, OrderTypeODD, OrderTypeSLO, OrderTypeLIT:
		return true
	default:
		return false
	}
}

func (t OrderType) RequiresTriggerPrice() bool {
	return t == OrderTypeLIT || t == OrderTypeMIT
}

func (t OrderType) RequiresLimitOffset() bool {
	return t == OrderTypeTSLPAMT || t == OrderTypeTSLPPCT
}

func (t OrderType) RequiresTrailingAmount() bool {
	return t == OrderTypeTSLPAMT || t == OrderTypeTSMAMT
}

func (t OrderType) RequiresTrailingPercent() bool {
	return t == OrderTypeTSLPPCT || t == OrderTypeTSMPCT
}
