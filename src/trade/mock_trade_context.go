package trade

import (
	"context"
	"fmt"
	"sync"

	"github.com/jiaming2012/longport-trade/src/models"
)

// MockTradeContext records every request it receives. Err, when set, is
// returned from every call.
type MockTradeContext struct {
	mu              sync.Mutex
	submitRequests  []models.SubmitOrderOptions
	replaceRequests []models.ReplaceOrderOptions
	cancelRequests  []string
	SubmitResponse  *models.SubmitOrderResponse
	Orders          []*models.Order
	History         []*models.Order
	Balances        []*models.AccountBalance
	Positions       []*models.StockPositionChannel
	Err             error
}

func NewMockTradeContext() *MockTradeContext {
	return &MockTradeContext{
		SubmitResponse: &models.SubmitOrderResponse{OrderID: "123"},
		Orders:         make([]*models.Order, 0),
		History:        make([]*models.Order, 0),
	}
}

func (m *MockTradeContext) SubmitOrder(ctx context.Context, opts *models.SubmitOrderOptions) (*models.SubmitOrderResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if opts == nil {
		return nil, fmt.Errorf("SubmitOrder: options: %w", models.ErrMissingField)
	}

	m.submitRequests = append(m.submitRequests, *opts)
	if m.Err != nil {
		return nil, m.Err
	}

	resp := *m.SubmitResponse
	return &resp, nil
}

func (m *MockTradeContext) ReplaceOrder(ctx context.Context, opts *models.ReplaceOrderOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if opts == nil {
		return fmt.Errorf("ReplaceOrder: options: %w", models.ErrMissingField)
	}

	m.replaceRequests = append(m.replaceRequests, *opts)
	return m.Err
}

func (m *MockTradeContext) CancelOrder(ctx context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelRequests = append(m.cancelRequests, orderID)
	return m.Err
}

func (m *MockTradeContext) TodayOrders(ctx context.Context, opts *models.GetTodayOrdersOptions) ([]*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	return m.Orders, nil
}

func (m *MockTradeContext) OrderDetail(ctx context.Context, orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	for _, order := range m.Orders {
		if order.OrderID == orderID {
			return order, nil
		}
	}

	return nil, fmt.Errorf("OrderDetail: order %s not found", orderID)
}

func (m *MockTradeContext) HistoryOrders(ctx context.Context, opts *models.GetHistoryOrdersOptions) ([]*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	return m.History, nil
}

func (m *MockTradeContext) AccountBalance(ctx context.Context, currency string) ([]*models.AccountBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	return m.Balances, nil
}

func (m *MockTradeContext) StockPositions(ctx context.Context, opts *models.GetStockPositionsOptions) ([]*models.StockPositionChannel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	return m.Positions, nil
}

func (m *MockTradeContext) SubmitRequests() []models.SubmitOrderOptions {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.SubmitOrderOptions(nil), m.submitRequests...)
}

func (m *MockTradeContext) ReplaceRequests() []models.ReplaceOrderOptions {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.ReplaceOrderOptions(nil), m.replaceRequests...)
}

func (m *MockTradeContext) CancelRequests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.cancelRequests...)
}
