package trade

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/longport-trade/src/config"
	"github.com/jiaming2012/longport-trade/src/httpclient"
	"github.com/jiaming2012/longport-trade/src/models"
)

const tracerName = "github.com/jiaming2012/longport-trade/src/trade"

const orderPath = "/v1/trade/order"

// ErrReadOnly is returned by SubmitOrder, ReplaceOrder and CancelOrder when the
// context was opened with read-only configuration. Reads are still allowed.
var ErrReadOnly = errors.New("trade context is read-only")

// TradeContext is an authenticated session against the trade endpoints.
type TradeContext struct {
	client   *httpclient.Client
	readOnly bool
	tracer   trace.Tracer
}

func NewTradeContext(cfg *config.Config, opts ...httpclient.Option) (*TradeContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("NewTradeContext: config is nil")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("NewTradeContext: %w", err)
	}

	return &TradeContext{
		client:   httpclient.New(cfg, opts...),
		readOnly: cfg.ReadOnly,
		tracer:   otel.Tracer(tracerName),
	}, nil
}

func (c *TradeContext) SubmitOrder(ctx context.Context, opts *models.SubmitOrderOptions) (resp *models.SubmitOrderResponse, err error) {
	if opts == nil {
		return nil, fmt.Errorf("SubmitOrder: options: %w", models.ErrMissingField)
	}

	ctx, span := c.tracer.Start(ctx, "TradeContext.SubmitOrder", trace.WithAttributes(
		attribute.String("symbol", opts.Symbol),
		attribute.String("side", string(opts.Side)),
		attribute.String("order_type", string(opts.OrderType)),
		attribute.String("quantity", opts.SubmittedQuantity.String()),
	))
	defer func() { endSpan(span, err) }()

	if c.readOnly {
		return nil, fmt.Errorf("SubmitOrder: %w", ErrReadOnly)
	}

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("SubmitOrder: %w", err)
	}

	log.Infof("SubmitOrder: placing order: %v", opts)

	var out models.SubmitOrderResponse
	if err := c.client.Do(ctx, http.MethodPost, orderPath, nil, opts, &out); err != nil {
		return nil, fmt.Errorf("SubmitOrder: %w", err)
	}

	span.SetAttributes(attribute.String("order_id", out.OrderID))
	log.Infof("SubmitOrder: placed order %s", out.OrderID)

	return &out, nil
}

func (c *TradeContext) ReplaceOrder(ctx context.Context, opts *models.ReplaceOrderOptions) (err error) {
	if opts == nil {
		return fmt.Errorf("ReplaceOrder: options: %w", models.ErrMissingField)
	}

	ctx, span := c.tracer.Start(ctx, "TradeContext.ReplaceOrder", trace.WithAttributes(
		attribute.String("order_id", opts.OrderID),
	))
	defer func() { endSpan(span, err) }()

	if c.readOnly {
		return fmt.Errorf("ReplaceOrder: %w", ErrReadOnly)
	}

	if err := opts.Validate(); err != nil {
		return fmt.Errorf("ReplaceOrder: %w", err)
	}

	if err := c.client.Do(ctx, http.MethodPut, orderPath, nil, opts, nil); err != nil {
		return fmt.Errorf("ReplaceOrder: %w", err)
	}

	log.Infof("ReplaceOrder: replaced order %s", opts.OrderID)

	return nil
}

func (c *TradeContext) CancelOrder(ctx context.Context, orderID string) (err error) {
	ctx, span := c.tracer.Start(ctx, "TradeContext.CancelOrder", trace.WithAttributes(
		attribute.String("order_id", orderID),
	))
	defer func() { endSpan(span, err) }()

	if c.readOnly {
		return fmt.Errorf("CancelOrder: %w", ErrReadOnly)
	}

	if orderID == "" {
		return fmt.Errorf("CancelOrder: order id: %w", models.ErrMissingField)
	}

	query := url.Values{}
	query.Set("order_id", orderID)

	if err := c.client.Do(ctx, http.MethodDelete, orderPath, query, nil, nil); err != nil {
		return fmt.Errorf("CancelOrder: %w", err)
	}

	log.Infof("CancelOrder: canceled order %s", orderID)

	return nil
}

func (c *TradeContext) TodayOrders(ctx context.Context, opts *models.GetTodayOrdersOptions) (orders []*models.Order, err error) {
	ctx, span := c.tracer.Start(ctx, "TradeContext.TodayOrders")
	defer func() { endSpan(span, err) }()

	query := url.Values{}
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("TodayOrders: %w", err)
		}

		if query, err = opts.Query(); err != nil {
			return nil, fmt.Errorf("TodayOrders: %w", err)
		}
	}

	var resp models.TodayOrdersResponseDTO
	if err := c.client.Do(ctx, http.MethodGet, orderPath+"/today", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("TodayOrders: %w", err)
	}

	orders = make([]*models.Order, 0, len(resp.Orders))
	for _, dto := range resp.Orders {
		order, err := dto.ToOrder()
		if err != nil {
			return nil, fmt.Errorf("TodayOrders: failed to convert order dto to order: %w", err)
		}

		orders = append(orders, order)
	}

	span.SetAttributes(attribute.Int("orders", len(orders)))

	return orders, nil
}

func (c *TradeContext) OrderDetail(ctx context.Context, orderID string) (order *models.Order, err error) {
	ctx, span := c.tracer.Start(ctx, "TradeContext.OrderDetail", trace.WithAttributes(
		attribute.String("order_id", orderID),
	))
	defer func() { endSpan(span, err) }()

	if orderID == "" {
		return nil, fmt.Errorf("OrderDetail: order id: %w", models.ErrMissingField)
	}

	query := url.Values{}
	query.Set("order_id", orderID)

	var dto models.OrderDTO
	if err := c.client.Do(ctx, http.MethodGet, orderPath, query, nil, &dto); err != nil {
		return nil, fmt.Errorf("OrderDetail: %w", err)
	}

	if order, err = dto.ToOrder(); err != nil {
		return nil, fmt.Errorf("OrderDetail: %w", err)
	}

	return order, nil
}

// HistoryOrders returns orders placed before today.
func (c *TradeContext) HistoryOrders(ctx context.Context, opts *models.GetHistoryOrdersOptions) (orders []*models.Order, err error) {
	ctx, span := c.tracer.Start(ctx, "TradeContext.HistoryOrders")
	defer func() { endSpan(span, err) }()

	query := url.Values{}
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("HistoryOrders: %w", err)
		}

		if query, err = opts.Query(); err != nil {
			return nil, fmt.Errorf("HistoryOrders: %w", err)
		}
	}

	var resp models.HistoryOrdersResponseDTO
	if err := c.client.Do(ctx, http.MethodGet, orderPath+"/history", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("HistoryOrders: %w", err)
	}

	orders = make([]*models.Order, 0, len(resp.Orders))
	for _, dto := range resp.Orders {
		order, err := dto.ToOrder()
		if err != nil {
			return nil, fmt.Errorf("HistoryOrders: failed to convert order dto to order: %w", err)
		}

		orders = append(orders, order)
	}

	if resp.HasMore {
		log.Warnf("HistoryOrders: returned %d orders, more are available for a narrower time range", len(orders))
	}

	span.SetAttributes(attribute.Int("orders", len(orders)), attribute.Bool("has_more", resp.HasMore))

	return orders, nil
}

// AccountBalance returns one balance per currency, or only the given one.
func (c *TradeContext) AccountBalance(ctx context.Context, currency string) (balances []*models.AccountBalance, err error) {
	ctx, span := c.tracer.Start(ctx, "TradeContext.AccountBalance", trace.WithAttributes(
		attribute.String("currency", currency),
	))
	defer func() { endSpan(span, err) }()

	query := url.Values{}
	if currency != "" {
		query.Set("currency", currency)
	}

	var resp models.AccountBalanceResponseDTO
	if err := c.client.Do(ctx, http.MethodGet, "/v1/asset/account", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("AccountBalance: %w", err)
	}

	balances = make([]*models.AccountBalance, 0, len(resp.List))
	for _, dto := range resp.List {
		balance, err := dto.ToAccountBalance()
		if err != nil {
			return nil, fmt.Errorf("AccountBalance: %w", err)
		}

		balances = append(balances, balance)
	}

	return balances, nil
}

func (c *TradeContext) StockPositions(ctx context.Context, opts *models.GetStockPositionsOptions) (channels []*models.StockPositionChannel, err error) {
	ctx, span := c.tracer.Start(ctx, "TradeContext.StockPositions")
	defer func() { endSpan(span, err) }()

	query, err := opts.Query()
	if err != nil {
		return nil, fmt.Errorf("StockPositions: %w", err)
	}

	var resp models.StockPositionsResponseDTO
	if err := c.client.Do(ctx, http.MethodGet, "/v1/asset/stock", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("StockPositions: %w", err)
	}

	channels = make([]*models.StockPositionChannel, 0, len(resp.List))
	for _, dto := range resp.List {
		channel, err := dto.ToStockPositionChannel()
		if err != nil {
			return nil, fmt.Errorf("StockPositions: %w", err)
		}

		channels = append(channels, channel)
	}

	return channels, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
