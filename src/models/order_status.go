package models

type OrderStatus string

const (
	OrderStatusNotReported          OrderStatus = "NotReported"
	OrderStatusReplacedNotReported  OrderStatus = "ReplacedNotReported"
	OrderStatusProtectedNotReported OrderStatus = "ProtectedNotReported"
	OrderStatusVarietiesNotReported OrderStatus = "VarietiesNotReported"
	OrderStatusFilled               OrderStatus = "FilledStatus"
	OrderStatusWaitToNew            OrderStatus = "WaitToNew"
	OrderStatusNew                  OrderStatus = "NewStatus"
	OrderStatusWaitToReplace        OrderStatus = "WaitToReplace"
	OrderStatusPendingReplace       OrderStatus = "PendingReplaceStatus"
	OrderStatusReplaced             OrderStatus = "ReplacedStatus"
	OrderStatusPartialFilled        OrderStatus = "PartialFilledStatus"
	OrderStatusWaitToCancel         OrderStatus = "WaitToCancel"
	OrderStatusPendingCancel        OrderStatus = "PendingCancelStatus"
	OrderStatusRejected             OrderStatus = "RejectedStatus"
	OrderStatusCanceled             OrderStatus = "CanceledStatus"
	OrderStatusExpired              OrderStatus = "ExpiredStatus"
	OrderStatusPartialWithdrawal    OrderStatus = "PartialWithdrawal"
)

// IsTerminal reports whether no further fills or state changes can occur.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusFilled, OrderStatusRejected, OrderStatusCanceled, OrderStatusExpired, OrderStatusPartialWithdrawal:
		return true
	default:
		return false
	}
}
