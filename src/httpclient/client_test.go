package httpclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/longport-trade/src/config"
	"github.com/jiaming2012/longport-trade/src/httpclient"
	"github.com/jiaming2012/longport-trade/src/logger"
	"github.com/jiaming2012/longport-trade/src/longportmock"
	"github.com/jiaming2012/longport-trade/src/models"
)

func newTestClient(t *testing.T, handler http.Handler) *httpclient.Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.New("key", "secret", "token")
	cfg.HttpURL = srv.URL

	return httpclient.New(cfg)
}

func TestDo(t *testing.T) {
	t.Run("signed request is accepted", func(t *testing.T) {
		mock := longportmock.NewServer("key", "secret", "token")
		client := newTestClient(t, mock)

		opts := models.NewSubmitOrderOptions("700.HK", models.OrderTypeMO, models.OrderSideBuy, decimal.NewFromInt(200), models.TimeInForceDay)

		var resp models.SubmitOrderResponse
		err := client.Do(context.Background(), http.MethodPost, "/v1/trade/order", nil, opts, &resp)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.OrderID)
	})

	t.Run("query strings are signed", func(t *testing.T) {
		mock := longportmock.NewServer("key", "secret", "token")
		client := newTestClient(t, mock)

		query := url.Values{}
		query.Add("status", string(models.OrderStatusNew))
		query.Add("symbol", "700.HK")

		var resp models.TodayOrdersResponseDTO
		err := client.Do(context.Background(), http.MethodGet, "/v1/trade/order/today", query, nil, &resp)
		require.NoError(t, err)
		assert.Empty(t, resp.Orders)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		mock := longportmock.NewServer("key", "another-secret", "token")
		client := newTestClient(t, mock)

		err := client.Do(context.Background(), http.MethodGet, "/v1/trade/order/today", nil, nil, nil)
		require.Error(t, err)

		var apiErr *httpclient.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, longportmock.CodeSignatureInvalid, apiErr.Code)
	})

	t.Run("non zero code is an error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(httpclient.HeaderTraceID, "trace-1")
			w.Write([]byte(`{"code":602001,"message":"invalid symbol","data":null}`))
		}))

		err := client.Do(context.Background(), http.MethodGet, "/v1/trade/order", nil, nil, nil)

		var apiErr *httpclient.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusOK, apiErr.StatusCode)
		assert.Equal(t, 602001, apiErr.Code)
		assert.Equal(t, "invalid symbol", apiErr.Message)
		assert.Equal(t, "trace-1", apiErr.TraceID)
	})

	t.Run("non json error body", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))

		err := client.Do(context.Background(), http.MethodGet, "/v1/trade/order", nil, nil, nil)

		var apiErr *httpclient.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "bad gateway", apiErr.Message)
	})

	t.Run("headers", func(t *testing.T) {
		var got http.Header
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			w.Write([]byte(`{"code":0,"message":"success","data":{}}`))
		}))

		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/v1/trade/order", nil, nil, nil))
		assert.Equal(t, "key", got.Get(httpclient.HeaderApiKey))
		assert.Equal(t, "token", got.Get(httpclient.HeaderAuthorize))
		assert.Equal(t, "en", got.Get("Accept-Language"))
		assert.NotEmpty(t, got.Get(httpclient.HeaderTimestamp))
		assert.NotEmpty(t, got.Get(httpclient.HeaderRequestID))
		assert.Contains(t, got.Get(httpclient.HeaderSignature), "HMAC-SHA256")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		t.Cleanup(srv.Close)

		cfg := config.New("key", "secret", "token")
		cfg.HttpURL = srv.URL
		cfg.Timeout = 20 * time.Millisecond

		err := httpclient.New(cfg).Do(context.Background(), http.MethodGet, "/v1/trade/order", nil, nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestOptions(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"code":0,"message":"success","data":{}}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.New("key", "secret", "token")
	cfg.HttpURL = srv.URL

	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	callLogger := logger.NewLogrusLoggerFrom(base)
	callLogger.SlowThreshold = time.Minute
	now := time.Unix(1650000000, 123*int64(time.Millisecond))

	client := httpclient.New(cfg,
		httpclient.WithHTTPClient(srv.Client()),
		httpclient.WithLogger(callLogger),
		httpclient.WithClock(func() time.Time { return now }),
	)

	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/v1/trade/order", nil, nil, nil))

	t.Run("clock pins the timestamp", func(t *testing.T) {
		assert.Equal(t, "1650000000.123", got.Get(httpclient.HeaderTimestamp))
		assert.Equal(t, httpclient.Sign(http.MethodGet, "/v1/trade/order", "", "token", "key", "1650000000.123", nil, "secret"), got.Get(httpclient.HeaderSignature))
	})

	t.Run("logger records the call", func(t *testing.T) {
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		assert.Equal(t, http.MethodGet, entry.Data["method"])
		assert.Equal(t, "/v1/trade/order", entry.Data["path"])
		assert.Equal(t, http.StatusOK, entry.Data["status"])
	})
}

func TestGetOTP(t *testing.T) {
	mock := longportmock.NewServer("key", "secret", "token")
	client := newTestClient(t, mock)

	otp, err := client.GetOTP(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, otp)

	mock.OTPLimit = 2
	mock.OTPOnline = 2

	_, err = client.GetOTP(context.Background())
	assert.True(t, errors.Is(err, httpclient.ErrConnectionLimitExceeded))
}
