package commands

import (
	"errors"

	"transportorder/internal/pkg/errs"
	"transportorder/internal/pkg/guard"
)

// maxBatchSize matches the batch limit of the exchange.
const maxBatchSize = 1000

// ErrDispatchQueuedDocumentsCommandIsNotConstructed is returned by Validate on
// a zero-value command.
var ErrDispatchQueuedDocumentsCommandIsNotConstructed = errors.New(
	"DispatchQueuedDocumentsCommand must be created via NewDispatchQueuedDocumentsCommand constructor",
)

// DispatchQueuedDocumentsCommand delivers up to BatchSize queued documents,
// oldest first.
//
// Example:
//
//	cmd, _ := NewDispatchQueuedDocumentsCommand(50)
//	summary, err := handler.Handle(ctx, cmd)
type DispatchQueuedDocumentsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewDispatchQueuedDocumentsCommand accepts a batch size between 1 and 1000.
func NewDispatchQueuedDocumentsCommand(batchSize int) (DispatchQueuedDocumentsCommand, error) {
	if batchSize <= 0 || batchSize > maxBatchSize {
		return DispatchQueuedDocumentsCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, maxBatchSize)
	}
	return DispatchQueuedDocumentsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchQueuedDocumentsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchQueuedDocumentsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of documents one run delivers.
func (c DispatchQueuedDocumentsCommand) BatchSize() int {
	return c.batchSize
}
