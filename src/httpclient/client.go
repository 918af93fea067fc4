package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/longport-trade/src/config"
	"github.com/jiaming2012/longport-trade/src/logger"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client is a signed HTTP client for the OpenAPI. It is safe for concurrent use.
type Client struct {
	cfg          *config.Config
	httpClient   *http.Client
	logger       *logger.LogrusLogger
	now          func() time.Time
	newRequestID func() string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func WithLogger(l *logger.LogrusLogger) Option {
	return func(client *Client) {
		client.logger = l
	}
}

func WithClock(now func() time.Time) Option {
	return func(client *Client) {
		client.now = now
	}
}

func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:       logger.NewLogrusLogger(),
		now:          time.Now,
		newRequestID: func() string { return uuid.New().String() },
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Config() *config.Config {
	return c.cfg
}

// Do sends a signed request and decodes the envelope's data into out, which
// may be nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (err error) {
	var payload []byte
	if body != nil {
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("Do: failed to encode request body: %w", err)
		}
	}

	fullUrl, err := url.Parse(strings.TrimRight(c.cfg.HttpURL, "/") + path)
	if err != nil {
		return fmt.Errorf("Do: invalid url: %w", err)
	}

	if len(query) > 0 {
		fullUrl.RawQuery = query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, fullUrl.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("Do: failed to create request: %w", err)
	}

	timestamp := FormatTimestamp(c.now())
	req.Header.Set(HeaderApiKey, c.cfg.AppKey)
	req.Header.Set(HeaderAuthorize, c.cfg.AccessToken)
	req.Header.Set(HeaderTimestamp, timestamp)
	req.Header.Set(HeaderRequestID, c.newRequestID())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", c.cfg.LanguageHeader())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	req.Header.Set(HeaderSignature, Sign(method, fullUrl.Path, fullUrl.RawQuery, c.cfg.AccessToken, c.cfg.AppKey, timestamp, payload, c.cfg.AppSecret))

	begin := time.Now()
	statusCode := 0
	defer func() {
		c.logger.Trace(ctx, begin, func() (string, string, int) {
			return method, path, statusCode
		}, err)
	}()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Do: %s %s failed: %w", method, path, err)
	}

	defer res.Body.Close()
	statusCode = res.StatusCode

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("Do: failed to read response body: %w", err)
	}

	traceID := res.Header.Get(HeaderTraceID)

	var env envelope
	decodeErr := json.Unmarshal(data, &env)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode, Code: env.Code, Message: env.Message, TraceID: traceID}
		if decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}

		return fmt.Errorf("Do: %s %s: %w", method, path, apiErr)
	}

	if decodeErr != nil {
		return fmt.Errorf("Do: failed to decode response: %w", decodeErr)
	}

	if env.Code != 0 {
		return fmt.Errorf("Do: %s %s: %w", method, path, &APIError{StatusCode: res.StatusCode, Code: env.Code, Message: env.Message, TraceID: traceID})
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("Do: failed to decode response data: %w", err)
	}

	return nil
}
