package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"busbilet-cli/model"
)

const (
	DefaultBaseURL     = "http://localhost:5112/api"
	DefaultTimeout     = 15 * time.Second
	defaultUserAgent   = "busbilet-cli"
	defaultMaxAttempts = 1
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
	requestIDHeader    = "X-Request-ID"
)

// Client wraps HTTP access to the booking API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
	logger      *slog.Logger
}

// Options tunes a Client. Zero values select the defaults.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	UserAgent   string
	Logger      *slog.Logger
}

// ErrEmptyCheckout reports a checkout answer that is neither a purchase nor
// a refusal with a message.
var ErrEmptyCheckout = errors.New("empty checkout response")

// APIError is returned when the booking API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
	// Message is the "message" field of a JSON error body, if any.
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e == nil {
		return "booking api error"
	}
	if e.Message != "" {
		return fmt.Sprintf("booking api error: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("booking api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// ServiceMessage returns the message the booking service attached to a
// failed response, or "" when the failure carried none.
func ServiceMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// NewClient creates a new API client. If httpClient is nil, a default client is used.
func NewClient(httpClient *http.Client, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		userAgent:   userAgent,
		maxAttempts: maxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
		logger:      logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetStations returns every station journeys can start or end at.
func (c *Client) GetStations(ctx context.Context) ([]model.Station, error) {
	endpoint := c.baseURL + "/journeys/stations"

	var stations []model.Station
	if err := c.getJSON(ctx, endpoint, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// SearchJourneys lists journeys between two stations on a date.
func (c *Client) SearchJourneys(ctx context.Context, fromID int, toID int, date time.Time) ([]model.Journey, error) {
	if fromID <= 0 || toID <= 0 {
		return nil, errors.New("origin and destination station ids are required")
	}
	if date.IsZero() {
		return nil, errors.New("date is required")
	}
	query := url.Values{}
	query.Set("fromId", strconv.Itoa(fromID))
	query.Set("toId", strconv.Itoa(toID))
	query.Set("date", date.Format(time.DateOnly))
	endpoint := fmt.Sprintf("%s/journeys?%s", c.baseURL, query.Encode())

	var journeys []model.Journey
	if err := c.getJSON(ctx, endpoint, &journeys); err != nil {
		return nil, err
	}
	return journeys, nil
}

// GetSeats fetches the seat layout of a journey.
func (c *Client) GetSeats(ctx context.Context, journeyID int) ([]model.Seat, error) {
	if journeyID <= 0 {
		return nil, errors.New("journey id is required")
	}
	endpoint := fmt.Sprintf("%s/journeys/%d/seats", c.baseURL, journeyID)

	var layout model.SeatLayout
	if err := c.getJSON(ctx, endpoint, &layout); err != nil {
		return nil, err
	}
	return layout.Seats, nil
}

// Checkout submits a purchase. A refused purchase is a normal result with
// IsSuccess false; an error means the service could not be reached or
// answered without a usable body.
func (c *Client) Checkout(ctx context.Context, req model.CheckoutRequest) (model.TicketResult, error) {
	if req.JourneyId <= 0 {
		return model.TicketResult{}, errors.New("journey id is required")
	}
	if len(req.SeatIds) == 0 {
		return model.TicketResult{}, errors.New("at least one seat is required")
	}
	endpoint := c.baseURL + "/tickets/checkout"

	var result model.TicketResult
	err := c.postJSON(ctx, endpoint, req, &result)
	if err == nil {
		if !result.IsSuccess && strings.TrimSpace(result.Message) == "" {
			return model.TicketResult{}, fmt.Errorf("checkout %s: %w", endpoint, ErrEmptyCheckout)
		}
		return result, nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		var refused model.TicketResult
		if json.Unmarshal([]byte(apiErr.Body), &refused) == nil && refused.Message != "" {
			refused.IsSuccess = false
			return refused, nil
		}
	}
	return model.TicketResult{}, err
}

// GetTicket looks up a purchased ticket by its PNR code.
func (c *Client) GetTicket(ctx context.Context, pnr string) (model.TicketRecord, error) {
	code := strings.TrimSpace(pnr)
	if code == "" {
		return nil, errors.New("pnr code is required")
	}
	endpoint := fmt.Sprintf("%s/tickets/%s", c.baseURL, url.PathEscape(code))

	var record model.TicketRecord
	if err := c.getJSON(ctx, endpoint, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := c.do(ctx, http.MethodGet, endpoint, nil, out)
		if err == nil {
			return nil
		}
		if attempt < maxAttempts && c.shouldRetry(err) {
			if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
				return waitErr
			}
			continue
		}
		return err
	}

	return errors.New("request failed after retries")
}

// postJSON sends a single request; purchases are never retried.
func (c *Client) postJSON(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, payload, out)
}

func (c *Client) do(ctx context.Context, method string, endpoint string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("booking api request failed", "method", method, "endpoint", endpoint, "request_id", requestID, "error", err)
		return &transportError{err: fmt.Errorf("request failed: %w", err)}
	}
	defer res.Body.Close()
	c.logger.Debug("booking api request", "method", method, "endpoint", endpoint, "status", res.StatusCode, "request_id", requestID, "elapsed", time.Since(started))

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
		text := strings.TrimSpace(string(snippet))
		return &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   endpoint,
			Body:       text,
			Message:    errorBodyMessage(text),
			RequestID:  requestID,
		}
	}

	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func errorBodyMessage(body string) string {
	if body == "" {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }

func (e *transportError) Unwrap() error { return e.err }

func (c *Client) shouldRetry(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	var netErr *transportError
	if errors.As(err, &netErr) {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return false
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	ceiling := c.retryCap
	if ceiling <= 0 {
		ceiling = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= ceiling/2 {
			return ceiling
		}
		delay *= 2
	}
	return min(delay, ceiling)
}
