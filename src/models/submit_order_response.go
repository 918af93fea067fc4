package models

import "fmt"

type SubmitOrderResponse struct {
	OrderID string `json:"order_id"`
}

func (r SubmitOrderResponse) String() string {
	return fmt.Sprintf("SubmitOrderResponse { order_id: %q }", r.OrderID)
}
