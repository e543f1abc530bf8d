// Package transport is the authenticated HTTP channel to one eFaktura base URL.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	DefaultRetryAttempts  = 3
	DefaultRetrySleep     = 100 * time.Millisecond

	// APIKeyHeader carries the API key on every request.
	APIKeyHeader = "ApiKey"

	acceptJSON = "application/json"
	acceptAny  = "*/*"

	maxLoggedBody = 2048
)

// Client sends requests to the eFaktura API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	attempts   int
	sleep      time.Duration
	log        zerolog.Logger
}

// Option configures the client
type Option func(*clientConfig)

type clientConfig struct {
	httpClient     *http.Client
	timeout        time.Duration
	connectTimeout time.Duration
	attempts       int
	sleep          time.Duration
	logger         *zerolog.Logger
}

// WithHTTPClient replaces the underlying HTTP client. Timeouts set through
// WithTimeout and WithConnectTimeout are then ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) {
		cfg.httpClient = c
	}
}

// WithTimeout sets the overall request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithConnectTimeout sets the dial timeout
func WithConnectTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.connectTimeout = timeout
	}
}

// WithRetry sets the total number of attempts and the fixed delay between them.
func WithRetry(attempts int, sleep time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.attempts = attempts
		cfg.sleep = sleep
	}
}

// WithLogger enables request and response logging at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *clientConfig) {
		cfg.logger = &logger
	}
}

// New creates a client for baseURL authenticated with apiKey.
func New(apiKey, baseURL string, opts ...Option) *Client {
	cfg := clientConfig{
		timeout:        DefaultTimeout,
		connectTimeout: DefaultConnectTimeout,
		attempts:       DefaultRetryAttempts,
		sleep:          DefaultRetrySleep,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		base := http.DefaultTransport.(*http.Transport).Clone()
		base.DialContext = (&net.Dialer{
			Timeout:   cfg.connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
		httpClient = &http.Client{
			Timeout:   cfg.timeout,
			Transport: base,
		}
	}

	if cfg.attempts < 1 {
		cfg.attempts = 1
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		attempts:   cfg.attempts,
		sleep:      cfg.sleep,
		log:        zerolog.Nop(),
	}
	if cfg.logger != nil {
		c.log = *cfg.logger
	}
	return c
}

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIKey returns the configured API key.
func (c *Client) APIKey() string {
	return c.apiKey
}

// RequestOption adjusts a single call.
type RequestOption func(*requestConfig)

type requestConfig struct {
	query  url.Values
	header http.Header
}

// WithQuery adds query parameters to the call.
func WithQuery(query url.Values) RequestOption {
	return func(rc *requestConfig) {
		for k, vs := range query {
			for _, v := range vs {
				rc.query.Add(k, v)
			}
		}
	}
}

// WithHeader sets an extra header on the call.
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.header.Set(key, value)
	}
}

// Part is one multipart form part. Parts with a Filename are sent as files.
type Part struct {
	Name     string
	Filename string
	Content  io.Reader
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, opts ...RequestOption) (*Payload, error) {
	return c.sendJSON(ctx, http.MethodGet, endpoint, nil, opts)
}

// Post sends data as a JSON body. A nil data sends no body.
func (c *Client) Post(ctx context.Context, endpoint string, data any, opts ...RequestOption) (*Payload, error) {
	return c.sendJSON(ctx, http.MethodPost, endpoint, data, opts)
}

// Put sends data as a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, data any, opts ...RequestOption) (*Payload, error) {
	return c.sendJSON(ctx, http.MethodPut, endpoint, data, opts)
}

// Delete sends a DELETE request, with data as an optional JSON body.
func (c *Client) Delete(ctx context.Context, endpoint string, data any, opts ...RequestOption) (*Payload, error) {
	return c.sendJSON(ctx, http.MethodDelete, endpoint, data, opts)
}

// PostRaw sends body verbatim with the given content type.
func (c *Client) PostRaw(ctx context.Context, endpoint, contentType string, body []byte, opts ...RequestOption) (*Payload, error) {
	raw, err := c.do(ctx, http.MethodPost, endpoint, body, contentType, acceptJSON, opts)
	if err != nil {
		return nil, err
	}
	return Decode(raw), nil
}

// PostMultipart sends parts as multipart/form-data. The body is buffered
// so it can be resent on retry.
func (c *Client) PostMultipart(ctx context.Context, endpoint string, parts []Part, opts ...RequestOption) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, part := range parts {
		var (
			dst io.Writer
			err error
		)
		if part.Filename != "" {
			dst, err = w.CreateFormFile(part.Name, part.Filename)
		} else {
			dst, err = w.CreateFormField(part.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("create multipart part %q: %w", part.Name, err)
		}
		if part.Content == nil {
			continue
		}
		if _, err := io.Copy(dst, part.Content); err != nil {
			return nil, fmt.Errorf("read multipart part %q: %w", part.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, endpoint, buf.Bytes(), w.FormDataContentType(), acceptJSON, opts)
	if err != nil {
		return nil, err
	}
	return Decode(raw), nil
}

// GetFile downloads a raw body, such as a PDF, XML document or signature.
func (c *Client) GetFile(ctx context.Context, endpoint string, opts ...RequestOption) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, "", acceptAny, opts)
}

func (c *Client) sendJSON(ctx context.Context, method, endpoint string, data any, opts []RequestOption) (*Payload, error) {
	var (
		body        []byte
		contentType string
	)
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		body = encoded
		contentType = acceptJSON
	}

	raw, err := c.do(ctx, method, endpoint, body, contentType, acceptJSON, opts)
	if err != nil {
		return nil, err
	}
	return Decode(raw), nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, contentType, accept string, opts []RequestOption) ([]byte, error) {
	rc := requestConfig{query: url.Values{}, header: http.Header{}}
	for _, opt := range opts {
		opt(&rc)
	}
	target := c.buildURL(endpoint, rc.query)

	c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Str("query", rc.query.Encode()).
		Int("body_bytes", len(body)).
		Msg("eFaktura API Request")

	start := time.Now()
	var (
		resp     *http.Response
		err      error
		attempts int
	)
	for {
		attempts++

		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, method, target, bodyReader(body))
		if err != nil {
			return nil, fmt.Errorf("build %s %s request: %w", method, endpoint, err)
		}
		req.Header.Set(APIKeyHeader, c.apiKey)
		req.Header.Set("Accept", accept)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		for k, vs := range rc.header {
			req.Header[k] = vs
		}

		resp, err = c.httpClient.Do(req)
		if err == nil || attempts >= c.attempts || ctx.Err() != nil {
			break
		}

		c.log.Debug().Err(err).
			Str("method", method).
			Str("endpoint", endpoint).
			Int("attempt", attempts).
			Msg("eFaktura API request failed, retrying")

		if sleepErr := sleepContext(ctx, c.sleep); sleepErr != nil {
			break
		}
	}
	if err != nil {
		return nil, &RequestError{Method: method, Endpoint: endpoint, Attempts: attempts, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{
			Method:   method,
			Endpoint: endpoint,
			Attempts: attempts,
			Err:      fmt.Errorf("read response body: %w", err),
		}
	}

	ev := c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("body_bytes", len(raw)).
		Dur("duration", time.Since(start))
	if accept == acceptJSON {
		ev = ev.Bytes("body", truncate(raw, maxLoggedBody))
	}
	ev.Msg("eFaktura API Response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewError(method, endpoint, resp, raw)
	}
	return raw, nil
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func bodyReader(body []byte) io.Reader {
	if body == nil {
		return nil
	}
	return bytes.NewReader(body)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
