// Package longportmock is an in-memory stand-in for the trade endpoints of the
// OpenAPI. It verifies request signatures the same way the real gateway does.
package longportmock

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/longport-trade/src/httpclient"
	"github.com/jiaming2012/longport-trade/src/models"
)

const (
	CodeSignatureInvalid = 401003
	CodeInvalidParameter = 602001
	CodeOrderNotFound    = 602023
	CodeOrderNotAllowed  = 603001
)

type SubmitOrderRequestDTO struct {
	Symbol            string `json:"symbol"`
	OrderType         string `json:"order_type"`
	Side              string `json:"side"`
	SubmittedQuantity string `json:"submitted_quantity"`
	TimeInForce       string `json:"time_in_force"`
	SubmittedPrice    string `json:"submitted_price"`
	TriggerPrice      string `json:"trigger_price"`
	LimitOffset       string `json:"limit_offset"`
	TrailingAmount    string `json:"trailing_amount"`
	TrailingPercent   string `json:"trailing_percent"`
	ExpireDate        string `json:"expire_date"`
	OutsideRTH        string `json:"outside_rth"`
	Remark            string `json:"remark"`
}

type replaceOrderRequestDTO struct {
	OrderID         string `json:"order_id"`
	Quantity        string `json:"quantity"`
	Price           string `json:"price"`
	TriggerPrice    string `json:"trigger_price"`
	LimitOffset     string `json:"limit_offset"`
	TrailingAmount  string `json:"trailing_amount"`
	TrailingPercent string `json:"trailing_percent"`
	Remark          string `json:"remark"`
}

type rejection struct {
	status  int
	code    int
	message string
}

type Server struct {
	AppKey      string
	AppSecret   string
	AccessToken string
	OTPLimit    int
	OTPOnline   int
	Now         func() time.Time
	Balances    []*models.AccountBalance
	Positions   []*models.StockPositionChannel

	router      *mux.Router
	mu          sync.Mutex
	nextOrderID int64
	orders      []*models.Order
	history     []*models.Order
	submissions []SubmitOrderRequestDTO
	rejectNext  *rejection
}

func NewServer(appKey, appSecret, accessToken string) *Server {
	s := &Server{
		AppKey:      appKey,
		AppSecret:   appSecret,
		AccessToken: accessToken,
		OTPLimit:    10,
		Now:         time.Now,
		nextOrderID: 706388312699592704,
	}

	r := mux.NewRouter()
	r.Use(s.verifySignature)
	r.HandleFunc("/v1/trade/order", s.submitOrder).Methods(http.MethodPost)
	r.HandleFunc("/v1/trade/order", s.replaceOrder).Methods(http.MethodPut)
	r.HandleFunc("/v1/trade/order", s.cancelOrder).Methods(http.MethodDelete)
	r.HandleFunc("/v1/trade/order", s.orderDetail).Methods(http.MethodGet)
	r.HandleFunc("/v1/trade/order/today", s.todayOrders).Methods(http.MethodGet)
	r.HandleFunc("/v1/trade/order/history", s.historyOrders).Methods(http.MethodGet)
	r.HandleFunc("/v1/asset/account", s.accountBalance).Methods(http.MethodGet)
	r.HandleFunc("/v1/asset/stock", s.stockPositions).Methods(http.MethodGet)
	r.HandleFunc("/v1/socket/token", s.socketToken).Methods(http.MethodGet)
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Submissions returns the raw bodies of every accepted submit request.
func (s *Server) Submissions() []SubmitOrderRequestDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SubmitOrderRequestDTO, len(s.submissions))
	copy(out, s.submissions)
	return out
}

func (s *Server) Orders() []*models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// AddOrder seeds the order book.
func (s *Server) AddOrder(order *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append(s.orders, order)
}

// AddHistoryOrder seeds the orders returned by the history route.
func (s *Server) AddHistoryOrder(order *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, order)
}

// RejectNext makes the next signed request fail with the given status and code.
func (s *Server) RejectNext(status, code int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rejectNext = &rejection{status: status, code: code, message: message}
}

func (s *Server) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, CodeInvalidParameter, "failed to read body", nil)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))

		if r.Header.Get(httpclient.HeaderApiKey) != s.AppKey || r.Header.Get(httpclient.HeaderAuthorize) != s.AccessToken {
			writeEnvelope(w, http.StatusUnauthorized, CodeSignatureInvalid, "unauthorized", nil)
			return
		}

		expected := httpclient.Sign(r.Method, r.URL.Path, r.URL.RawQuery, s.AccessToken, s.AppKey, r.Header.Get(httpclient.HeaderTimestamp), body, s.AppSecret)
		if r.Header.Get(httpclient.HeaderSignature) != expected {
			log.Warnf("longportmock: signature mismatch for %s %s", r.Method, r.URL.Path)
			writeEnvelope(w, http.StatusUnauthorized, CodeSignatureInvalid, "signature invalid", nil)
			return
		}

		s.mu.Lock()
		rejection := s.rejectNext
		s.rejectNext = nil
		s.mu.Unlock()

		if rejection != nil {
			writeEnvelope(w, rejection.status, rejection.code, rejection.message, nil)
			return
		}

		w.Header().Set(httpclient.HeaderTraceID, uuid.New().String())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) submitOrder(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusOK, CodeInvalidParameter, "invalid json body", nil)
		return
	}

	quantity, err := decimal.NewFromString(req.SubmittedQuantity)
	if err != nil || !quantity.IsPositive() {
		writeEnvelope(w, http.StatusOK, CodeInvalidParameter, "invalid submitted_quantity", nil)
		return
	}

	if err := models.ValidateSymbol(req.Symbol); err != nil {
		writeEnvelope(w, http.StatusOK, CodeInvalidParameter, "invalid symbol", nil)
		return
	}

	prices, field, ok := parsePrices(map[string]string{
		"submitted_price":  req.SubmittedPrice,
		"trigger_price":    req.TriggerPrice,
		"limit_offset":     req.LimitOffset,
		"trailing_amount":  req.TrailingAmount,
		"trailing_percent": req.TrailingPercent,
	})
	if !ok {
		writeEnvelope(w, http.StatusOK, CodeInvalidParameter, "invalid "+field, nil)
		return
	}

	s.mu.Lock()
	orderID := strconv.FormatInt(s.nextOrderID, 10)
	s.nextOrderID++
	now := s.Now().UTC().Truncate(time.Second)
	s.orders = append(s.orders, &models.Order{
		OrderID:         orderID,
		Status:          models.OrderStatusNew,
		Quantity:        quantity,
		Price:           prices["submitted_price"],
		TriggerPrice:    prices["trigger_price"],
		LimitOffset:     prices["limit_offset"],
		TrailingAmount:  prices["trailing_amount"],
		TrailingPercent: prices["trailing_percent"],
		SubmittedAt:     now,
		UpdatedAt:       now,
		Side:            models.OrderSide(req.Side),
		Symbol:          req.Symbol,
		OrderType:       models.OrderType(req.OrderType),
		TimeInForce:     models.TimeInForceType(req.TimeInForce),
		ExpireDate:      req.ExpireDate,
		OutsideRTH:      models.OutsideRTH(req.OutsideRTH),
		Remark:          req.Remark,
	})
	s.submissions = append(s.submissions, req)
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, 0, "success", models.SubmitOrderResponse{OrderID: orderID})
}

func (s *Server) replaceOrder(w http.ResponseWriter, r *http.Request) {
	var req replaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusOK, CodeInvalidParameter, "invalid json body", nil)
		return
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil || !quantity.IsPositive() {
		writeEnvelope(w, http.StatusOK, CodeInvalidParameter, "invalid quantity", nil)
		return
	}

	prices, field, ok := parsePrices(map[string]string{
		"price":            req.Price,
		"trigger_price":    req.TriggerPrice,
		"limit_offset":     req.LimitOffset,
		"trailing_amount":  req.TrailingAmount,
		"trailing_percent": req.TrailingPercent,
	})
	if !ok {
		writeEnvelope(w, http.StatusOK, CodeInvalidParameter, "invalid "+field, nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findLocked(req.OrderID)
	if order == nil {
		writeEnvelope(w, http.StatusOK, CodeOrderNotFound, "order not found", nil)
		return
	}

	if order.Status.IsTerminal() {
		writeEnvelope(w, http.StatusOK, CodeOrderNotAllowed, "order can not be replaced", nil)
		return
	}

	order.Quantity = quantity
	for field, dst := range map[string]*decimal.NullDecimal{
		"price":            &order.Price,
		"trigger_price":    &order.TriggerPrice,
		"limit_offset":     &order.LimitOffset,
		"trailing_amount":  &order.TrailingAmount,
		"trailing_percent": &order.TrailingPercent,
	} {
		if prices[field].Valid {
			*dst = prices[field]
		}
	}

	if req.Remark != "" {
		order.Remark = req.Remark
	}

	order.Status = models.OrderStatusReplaced
	order.UpdatedAt = s.Now().UTC().Truncate(time.Second)

	writeEnvelope(w, http.StatusOK, 0, "success", nil)
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findLocked(orderID)
	if order == nil {
		writeEnvelope(w, http.StatusOK, CodeOrderNotFound, "order not found", nil)
		return
	}

	if order.Status.IsTerminal() {
		writeEnvelope(w, http.StatusOK, CodeOrderNotAllowed, "order can not be canceled", nil)
		return
	}

	order.Status = models.OrderStatusCanceled
	order.UpdatedAt = s.Now().UTC().Truncate(time.Second)

	writeEnvelope(w, http.StatusOK, 0, "success", nil)
}

func (s *Server) orderDetail(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findLocked(orderID)
	if order == nil {
		writeEnvelope(w, http.StatusOK, CodeOrderNotFound, "order not found", nil)
		return
	}

	writeEnvelope(w, http.StatusOK, 0, "success", order.ToDTO())
}

func matchOrder(order *models.Order, q url.Values, statuses map[string]bool) bool {
	if symbol := q.Get("symbol"); symbol != "" && order.Symbol != symbol {
		return false
	}

	if side := q.Get("side"); side != "" && string(order.Side) != side {
		return false
	}

	if market := q.Get("market"); market != "" && !strings.HasSuffix(order.Symbol, "."+market) {
		return false
	}

	if orderID := q.Get("order_id"); orderID != "" && order.OrderID != orderID {
		return false
	}

	if len(statuses) > 0 && !statuses[string(order.Status)] {
		return false
	}

	return true
}

func statusSet(q url.Values) map[string]bool {
	statuses := map[string]bool{}
	for _, status := range q["status"] {
		statuses[status] = true
	}

	return statuses
}

func (s *Server) todayOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	statuses := statusSet(q)

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.TodayOrdersResponseDTO{Orders: []*models.OrderDTO{}}
	for _, order := range s.orders {
		if matchOrder(order, q, statuses) {
			resp.Orders = append(resp.Orders, order.ToDTO())
		}
	}

	writeEnvelope(w, http.StatusOK, 0, "success", resp)
}

func parseUnixParam(q url.Values, name string) (time.Time, bool) {
	v := q.Get(name)
	if v == "" {
		return time.Time{}, true
	}

	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(secs, 0).UTC(), true
}

func (s *Server) historyOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	statuses := statusSet(q)

	startAt, ok := parseUnixParam(q, "start_at")
	if !ok {
		writeEnvelope(w, http.StatusOK, CodeInvalidParameter, "invalid start_at", nil)
		return
	}

	endAt, ok := parseUnixParam(q, "end_at")
	if !ok {
		writeEnvelope(w, http.StatusOK, CodeInvalidParameter, "invalid end_at", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.HistoryOrdersResponseDTO{Orders: []*models.OrderDTO{}}
	for _, order := range s.history {
		if !matchOrder(order, q, statuses) {
			continue
		}

		if !startAt.IsZero() && order.SubmittedAt.Before(startAt) {
			continue
		}

		if !endAt.IsZero() && order.SubmittedAt.After(endAt) {
			continue
		}

		resp.Orders = append(resp.Orders, order.ToDTO())
	}

	writeEnvelope(w, http.StatusOK, 0, "success", resp)
}

func (s *Server) accountBalance(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.AccountBalanceResponseDTO{List: []*models.AccountBalanceDTO{}}
	for _, balance := range s.Balances {
		if currency == "" || balance.Currency == currency {
			resp.List = append(resp.List, balance.ToDTO())
		}
	}

	writeEnvelope(w, http.StatusOK, 0, "success", resp)
}

func (s *Server) stockPositions(w http.ResponseWriter, r *http.Request) {
	symbols := map[string]bool{}
	for _, symbol := range r.URL.Query()["symbol"] {
		symbols[symbol] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.StockPositionsResponseDTO{List: []*models.StockPositionChannelDTO{}}
	for _, channel := range s.Positions {
		filtered := &models.StockPositionChannel{AccountChannel: channel.AccountChannel}
		for _, p := range channel.Positions {
			if len(symbols) == 0 || symbols[p.Symbol] {
				filtered.Positions = append(filtered.Positions, p)
			}
		}

		resp.List = append(resp.List, filtered.ToDTO())
	}

	writeEnvelope(w, http.StatusOK, 0, "success", resp)
}

func (s *Server) socketToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	limit, online := s.OTPLimit, s.OTPOnline
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, 0, "success", map[string]interface{}{
		"otp":    uuid.New().String(),
		"limit":  limit,
		"online": online,
	})
}

func (s *Server) findLocked(orderID string) *models.Order {
	for _, order := range s.orders {
		if order.OrderID == orderID {
			return order
		}
	}

	return nil
}

// parsePrices parses optional decimal fields. Blank values stay invalid; the
// name of the first malformed field is returned with ok false.
func parsePrices(fields map[string]string) (map[string]decimal.NullDecimal, string, bool) {
	out := make(map[string]decimal.NullDecimal, len(fields))
	for name, value := range fields {
		if value == "" {
			continue
		}

		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, name, false
		}

		out[name] = decimal.NewNullDecimal(d)
	}

	return out, "", true
}

func writeEnvelope(w http.ResponseWriter, status, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"message": message,
		"data":    data,
	}); err != nil {
		log.Errorf("longportmock: failed to write response: %v", err)
	}
}
