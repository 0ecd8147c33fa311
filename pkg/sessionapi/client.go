package sessionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/harun/articuno/internal/observability"
	"github.com/harun/articuno/internal/tracing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
)

const (
	opCreate  = "create"
	opHistory = "history"
	opList    = "list"
	opStats   = "stats"
	opDelete  = "delete"
	opSearch  = "search"
)

// RequestIDHeader carries the per-request ID to the server.
const RequestIDHeader = "X-Request-ID"

// Client talks to the session endpoints of one chat server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
	validate   bool
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// WithSchemaValidation toggles JSON schema validation of response bodies.
func WithSchemaValidation(enabled bool) Option {
	return func(c *Client) {
		c.validate = enabled
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{},
		headers:    make(http.Header),
		validate:   true,
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateSession asks the server for a new session with bot and returns its ID.
func (c *Client) CreateSession(ctx context.Context, bot string) (string, error) {
	var resp createResponse
	if err := c.do(ctx, opCreate, http.MethodPost, "/api/session/new", nil, createRequest{Bot: bot}, &resp); err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", &DecodeError{Op: opCreate, Status: http.StatusOK, Err: fmt.Errorf("missing session_id")}
	}
	return resp.SessionID, nil
}

// History returns up to limit messages of a session, oldest first.
func (c *Client) History(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var resp historyResponse
	path := "/api/session/history/" + url.PathEscape(sessionID)
	if err := c.do(ctx, opHistory, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.History == nil {
		return []Message{}, nil
	}
	return resp.History, nil
}

// ListSessions returns up to limit sessions, most recently active first.
func (c *Client) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var resp listResponse
	if err := c.do(ctx, opList, http.MethodGet, "/api/session/list", query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Sessions == nil {
		return []SessionSummary{}, nil
	}
	return resp.Sessions, nil
}

// Stats returns aggregate statistics of a session.
func (c *Client) Stats(ctx context.Context, sessionID string) (Stats, error) {
	var stats Stats
	path := "/api/session/" + url.PathEscape(sessionID) + "/stats"
	if err := c.do(ctx, opStats, http.MethodGet, path, nil, nil, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// DeleteSession deletes a session and its messages.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	path := "/api/session/" + url.PathEscape(sessionID) + "/delete"
	return c.do(ctx, opDelete, http.MethodDelete, path, nil, nil, nil)
}

// SearchQuery describes a message search. An empty SessionID searches all
// sessions.
type SearchQuery struct {
	Query     string
	SessionID string
	Limit     int
}

// Search returns messages matching q, newest first.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]Message, error) {
	query := url.Values{}
	query.Set("q", q.Query)
	query.Set("limit", strconv.Itoa(q.Limit))
	if q.SessionID != "" {
		query.Set("session_id", q.SessionID)
	}

	var resp searchResponse
	if err := c.do(ctx, opSearch, http.MethodGet, "/api/search", query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []Message{}, nil
	}
	return resp.Results, nil
}

// do performs one request and decodes the reply into out (nil to discard).
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, out any) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := tracing.NewRequestID()
	ctx = tracing.WithRequestID(ctx, requestID)
	ctx, span := tracing.StartSpan(
		ctx,
		"articuno.sessionapi",
		"sessionapi."+op,
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("request_id", requestID),
	)
	defer span.End()
	logger := tracing.LoggerFromContext(ctx, c.logger)

	start := time.Now()
	outcome := observability.OutcomeSuccess
	defer func() {
		observability.RecordAPIRequest(op, outcome, time.Since(start))
		if err != nil {
			tracing.FailSpan(span, err)
		}
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, mErr := json.Marshal(body)
		if mErr != nil {
			outcome = observability.OutcomeDecode
			return &DecodeError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", mErr)}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		outcome = observability.OutcomeTransport
		return &TransportError{Op: op, Err: err}
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug().Str("op", op).Str("method", method).Str("url", target).Msg("Session API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = observability.OutcomeTransport
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome = observability.OutcomeTransport
		return &TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if !gjson.ValidBytes(data) {
		if resp.StatusCode >= http.StatusBadRequest {
			outcome = observability.OutcomeAPI
			return &APIError{Op: op, Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		outcome = observability.OutcomeDecode
		return &DecodeError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("response is not JSON")}
	}

	if msg, ok := bodyError(data); ok {
		outcome = observability.OutcomeAPI
		return &APIError{Op: op, Status: resp.StatusCode, Message: msg}
	}
	// Error statuses fail even when the body carries no error field.
	if resp.StatusCode >= http.StatusBadRequest {
		outcome = observability.OutcomeAPI
		return &APIError{Op: op, Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if c.validate {
		if vErr := validateEnvelope(op, data); vErr != nil {
			outcome = observability.OutcomeDecode
			return &DecodeError{Op: op, Status: resp.StatusCode, Err: vErr}
		}
	}

	if out != nil {
		if uErr := json.Unmarshal(data, out); uErr != nil {
			outcome = observability.OutcomeDecode
			return &DecodeError{Op: op, Status: resp.StatusCode, Err: uErr}
		}
	}

	logger.Debug().Str("op", op).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Session API response")
	return nil
}

// bodyError extracts a truthy "error" member from a JSON object body.
func bodyError(data []byte) (string, bool) {
	field := gjson.GetBytes(data, "error")
	if !field.Exists() {
		return "", false
	}
	switch field.Type {
	case gjson.Null, gjson.False:
		return "", false
	case gjson.String:
		if field.Str == "" {
			return "", false
		}
		return field.Str, true
	case gjson.Number:
		if field.Num == 0 {
			return "", false
		}
	}
	return field.Raw, true
}
