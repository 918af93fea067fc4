package trade

import (
	"context"

	"github.com/jiaming2012/longport-trade/src/models"
)

type ITradeContext interface {
	SubmitOrder(ctx context.Context, opts *models.SubmitOrderOptions) (*models.SubmitOrderResponse, error)
	ReplaceOrder(ctx context.Context, opts *models.ReplaceOrderOptions) error
	CancelOrder(ctx context.Context, orderID string) error
	TodayOrders(ctx context.Context, opts *models.GetTodayOrdersOptions) ([]*models.Order, error)
	OrderDetail(ctx context.Context, orderID string) (*models.Order, error)
	HistoryOrders(ctx context.Context, opts *models.GetHistoryOrdersOptions) ([]*models.Order, error)
	AccountBalance(ctx context.Context, currency string) ([]*models.AccountBalance, error)
	StockPositions(ctx context.Context, opts *models.GetStockPositionsOptions) ([]*models.StockPositionChannel, error)
}
