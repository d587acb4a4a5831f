package commands

import (
	"context"
	"log/slog"
	"sync"

	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

const dispatchConcurrency = 4

// DispatchSummary counts the outcomes of one dispatch run.
type DispatchSummary struct {
	Submitted int
	Retrying  int
	Rejected  int
}

// DispatchQueuedDocumentsCommandHandler submits queued documents
// concurrently. Each document is persisted in its own transaction; the first
// persistence failure stops the run.
type DispatchQueuedDocumentsCommandHandler struct {
	uowFactory  ports.UnitOfWorkFactory
	client      ports.ExchangeClient
	maxAttempts int
	logger      *slog.Logger
}

// NewDispatchQueuedDocumentsCommandHandler creates the handler used by the
// dispatch job.
func NewDispatchQueuedDocumentsCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	client ports.ExchangeClient,
	maxAttempts int,
	logger *slog.Logger,
) DispatchQueuedDocumentsCommandHandler {
	return DispatchQueuedDocumentsCommandHandler{
		uowFactory:  uowFactory,
		client:      client,
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "DispatchQueuedDocumentsCommandHandler"),
	}
}

// Handle delivers the oldest queued documents, at most dispatchConcurrency at
// a time. The summary counts what happened to each of them. It is partial when
// an error is returned.
func (h DispatchQueuedDocumentsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchQueuedDocumentsCommand,
) (DispatchSummary, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchSummary{}, err
	}
	if h.client == nil {
		return DispatchSummary{}, ErrExchangeNotConfigured
	}

	queued, err := h.uowFactory.Create().DocumentRepository().GetQueued(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchSummary{}, err
	}

	var (
		mu      sync.Mutex
		summary DispatchSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dispatchConcurrency)

	for _, doc := range queued {
		g.Go(func() error {
			response, err := deliver(gctx, h.uowFactory, h.client, doc, h.maxAttempts)
			if err != nil {
				return err
			}
			if !response.Accepted {
				h.logger.WarnContext(gctx, "delivery failed",
					"document_id", response.DocumentID, "attempts", response.Attempts, "error", response.Error)
			}

			mu.Lock()
			defer mu.Unlock()
			switch response.Status {
			case document.Submitted.String():
				summary.Submitted++
			case document.Rejected.String():
				summary.Rejected++
			default:
				summary.Retrying++
			}
			return nil
		})
	}

	err = g.Wait()
	return summary, err
}
