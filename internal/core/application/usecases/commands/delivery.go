package commands

import (
	"context"
	"errors"
	"fmt"

	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/ports"
	"transportorder/internal/pkg/errs"
)

// ErrExchangeNotConfigured is returned by the delivery handlers when they
// were built without an exchange client.
var ErrExchangeNotConfigured = errors.New("exchange client is not configured")

// DeliveryResponse is the state of a document after one delivery attempt.
type DeliveryResponse struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts"`
	Accepted   bool   `json:"accepted"`
	StatusCode int    `json:"status_code,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"`
	Body       string `json:"response_body,omitempty"`
	Error      string `json:"error,omitempty"`
}

// deliver submits one queued document and persists the outcome. A refused
// or failed delivery is recorded on the document and reported in the
// response; the returned error covers persistence only.
func deliver(
	ctx context.Context,
	uowFactory ports.UnitOfWorkFactory,
	client ports.ExchangeClient,
	doc *document.Document,
	maxAttempts int,
) (DeliveryResponse, error) {
	if doc.Status() != document.Queued {
		return DeliveryResponse{}, errs.NewValueIsInvalidErrorWithCause("document status",
			fmt.Errorf("document %s is %s and cannot be submitted", doc.ID().String(), doc.Status()))
	}

	submission, submitErr := client.Submit(ctx, doc.XML())
	if submitErr == nil {
		if err := doc.MarkSubmitted(); err != nil {
			return DeliveryResponse{}, err
		}
	} else {
		if ctx.Err() != nil {
			return DeliveryResponse{}, ctx.Err()
		}
		retryable := errors.Is(submitErr, ports.ErrDeliveryUnavailable)
		if err := doc.RecordFailure(submitErr.Error(), retryable, maxAttempts); err != nil {
			return DeliveryResponse{}, err
		}
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeliveryResponse{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return DeliveryResponse{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return DeliveryResponse{}, err
	}

	response := DeliveryResponse{
		DocumentID: doc.ID().String(),
		Status:     doc.Status().String(),
		Attempts:   doc.Attempts(),
		Accepted:   submitErr == nil,
		StatusCode: submission.StatusCode,
		Endpoint:   submission.Endpoint,
		Body:       submission.Body,
	}
	if submitErr != nil {
		response.Error = submitErr.Error()
	}
	return response, nil
}
