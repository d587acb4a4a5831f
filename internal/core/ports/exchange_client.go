package ports

import (
	"context"
	"errors"
)

// ErrDeliveryUnavailable marks delivery failures that may succeed when the
// same document is submitted again later.
var ErrDeliveryUnavailable = errors.New("exchange temporarily unavailable")

// Submission is the outcome of a delivery the exchange answered.
type Submission struct {
	StatusCode int
	Endpoint   string
	Body       string
}

// ExchangeClient delivers finished documents to the exchange platform.
// Implementations never retry. Timeouts and connection failures are
// reported as errors wrapping ErrDeliveryUnavailable; refusals by the
// exchange are not.
type ExchangeClient interface {
	Submit(ctx context.Context, xml string) (Submission, error)
}
