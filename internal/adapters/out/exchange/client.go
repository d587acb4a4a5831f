// Package exchange delivers finished transport orders to the exchange
// platform's OpenAPI endpoint.
//
// The endpoint is derived from the document itself: a transport_orders root
// (or any transport_order descendant) goes to /v2/transport_orders. The
// platform answers an accepted document with 202; every other answer is a
// rejection. 429 and 5xx rejections, timeouts and connection failures unwrap
// to ErrTransient so the dispatcher can try again later:
//
//	submission, err := client.Submit(ctx, xml)
//	switch {
//	case errors.Is(err, exchange.ErrTransient):
//	    // keep the document queued
//	case err != nil:
//	    // give up
//	}
package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/ports"
	"transportorder/internal/pkg/errs"
	"transportorder/internal/pkg/metrics"

	"github.com/beevik/etree"
	"golang.org/x/time/rate"
)

const (
	// TransportOrdersPath is the endpoint for transport order batches.
	TransportOrdersPath = "/v2/transport_orders"
	// DefaultTimeout bounds one request when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	maxResponseBody = 1 << 20
)

var (
	// ErrTransient marks a failure that may succeed later: 429, 5xx, timeouts
	// and connection errors. It is ports.ErrDeliveryUnavailable so the use cases
	// can test for it without importing this package.
	ErrTransient = ports.ErrDeliveryUnavailable
	// ErrRejected marks a rejection that will not change on retry.
	ErrRejected = errors.New("exchange rejected the document")
	// ErrUnknownMessageType is returned for documents without a transport order.
	ErrUnknownMessageType = errors.New("unable to determine API endpoint for XML content, supported types: transport_orders")
)

// Environment selects the exchange installation.
type Environment string

const (
	// EnvironmentTest is the platform's sandbox installation.
	EnvironmentTest Environment = "test"
	// EnvironmentProduction is the live platform.
	EnvironmentProduction Environment = "production"
)

// ParseEnvironment accepts "test" or "production", ignoring case and
// surrounding whitespace.
func ParseEnvironment(value string) (Environment, error) {
	switch env := Environment(strings.ToLower(strings.TrimSpace(value))); env {
	case EnvironmentTest, EnvironmentProduction:
		return env, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("environment",
			fmt.Errorf("environment must be 'test' or 'production', got: %s", value))
	}
}

// BaseURL returns the OpenAPI root of the installation. Anything but
// production maps to the test installation.
func (e Environment) BaseURL() string {
	if e == EnvironmentProduction {
		return "https://xch.transporeon.com/openapi"
	}
	return "https://xch.test.transporeon.com/openapi"
}

// RejectedError is a delivery the exchange answered with anything but 202.
type RejectedError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error includes a hint for the status codes that usually point at a
// configuration problem (401 and 413).
func (e *RejectedError) Error() string {
	msg := fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Status)
	switch e.StatusCode {
	case http.StatusUnauthorized:
		msg += " - Check your credentials format (username@company_id:password)"
	case http.StatusRequestEntityTooLarge:
		msg += " - Batch size limit exceeded (max 1000)"
	}
	return msg
}

// Retryable reports whether the platform may accept the same document later.
func (e *RejectedError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Unwrap yields ErrTransient for retryable statuses and ErrRejected otherwise,
// so callers can use errors.Is without inspecting the code.
func (e *RejectedError) Unwrap() error {
	if e.Retryable() {
		return ErrTransient
	}
	return ErrRejected
}

// Config describes how to reach the exchange. Credentials are required.
type Config struct {
	Environment Environment
	// BaseURL overrides the URL of Environment.
	BaseURL     string
	Credentials kernel.Credentials
	// Timeout bounds one request; DefaultTimeout when zero.
	Timeout time.Duration
	// RatePerSecond caps outgoing requests; unlimited when zero.
	RatePerSecond float64
}

// Client submits documents to the exchange. It is safe for concurrent use;
// requests share one rate limiter.
type Client struct {
	http        *http.Client
	baseURL     string
	credentials kernel.Credentials
	timeout     time.Duration
	limiter     *rate.Limiter
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

var _ ports.ExchangeClient = (*Client)(nil)

// NewClient validates cfg and returns a ready Client. BaseURL wins over
// Environment when both are set; m may be nil.
//
// Example:
//
//	creds, _ := kernel.NewCredentials("dispatcher", "318877", "s3cret")
//	client, err := exchange.NewClient(exchange.Config{
//	    Environment: exchange.EnvironmentTest,
//	    Credentials: creds,
//	}, m, logger)
func NewClient(cfg Config, m *metrics.Metrics, logger *slog.Logger) (*Client, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("credentials", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if _, err := ParseEnvironment(string(cfg.Environment)); err != nil {
			return nil, err
		}
		baseURL = cfg.Environment.BaseURL()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &Client{
		http:        &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: cfg.Credentials,
		timeout:     timeout,
		limiter:     rate.NewLimiter(limit, 1),
		metrics:     m,
		logger:      logger.With("component", "exchange_client"),
	}, nil
}

// DetectEndpoint returns the API path a document is posted to.
func DetectEndpoint(xml string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("xml", fmt.Errorf("failed to parse XML content: %w", err))
	}
	root := doc.Root()
	if root == nil {
		return "", errs.NewValueIsInvalidErrorWithCause("xml", errors.New("document has no root element"))
	}

	if root.Tag == "transport_orders" || hasDescendant(root, "transport_order") {
		return TransportOrdersPath, nil
	}
	return "", ErrUnknownMessageType
}

// hasDescendant matches local names exactly; etree keeps the prefix in Space.
func hasDescendant(e *etree.Element, tag string) bool {
	for _, child := range e.ChildElements() {
		if child.Tag == tag || hasDescendant(child, tag) {
			return true
		}
	}
	return false
}

// Submit posts xml to its endpoint. The returned Submission is filled
// whenever the exchange answered, including rejections.
func (c *Client) Submit(ctx context.Context, xml string) (ports.Submission, error) {
	if strings.TrimSpace(xml) == "" {
		return ports.Submission{}, errs.NewValueIsRequiredError("xml")
	}

	path, err := DetectEndpoint(xml)
	if err != nil {
		return ports.Submission{}, err
	}
	endpoint := c.baseURL + path

	if err := c.limiter.Wait(ctx); err != nil {
		return ports.Submission{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(xml))
	if err != nil {
		return ports.Submission{}, err
	}
	req.SetBasicAuth(c.credentials.Principal(), c.credentials.Password())
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Accept", "application/xml")

	c.logger.InfoContext(ctx, "submitting document",
		"endpoint", endpoint, "principal", c.credentials.Principal(), "bytes", len(xml))

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		err = c.classify(ctx, err)
		c.metrics.ObserveSubmission(outcome(err), elapsed)
		return ports.Submission{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		c.metrics.ObserveSubmission("error", elapsed)
		return ports.Submission{}, fmt.Errorf("read response body: %w", err)
	}

	submission := ports.Submission{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Body:       string(body),
	}
	if resp.StatusCode != http.StatusAccepted {
		rejected := &RejectedError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       submission.Body,
		}
		c.metrics.ObserveSubmission(outcome(rejected), elapsed)
		c.logger.WarnContext(ctx, "document rejected", "endpoint", endpoint, "status", resp.StatusCode)
		return submission, rejected
	}

	c.metrics.ObserveSubmission("accepted", elapsed)
	c.logger.InfoContext(ctx, "document accepted", "endpoint", endpoint, "elapsed", elapsed)
	return submission, nil
}

func (c *Client) classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: request timed out after %s", ErrTransient, c.timeout)
	}
	return fmt.Errorf("%w: failed to connect: %w", ErrTransient, err)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrTransient):
		return "transient"
	case errors.Is(err, ErrRejected):
		return "rejected"
	default:
		return "error"
	}
}
