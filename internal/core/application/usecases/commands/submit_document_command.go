package commands

import (
	"errors"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/pkg/guard"
)

// ErrSubmitDocumentCommandIsNotConstructed is returned by Validate on a
// zero-value command.
var ErrSubmitDocumentCommandIsNotConstructed = errors.New(
	"SubmitDocumentCommand must be created via NewSubmitDocumentCommand constructor",
)

// SubmitDocumentCommand delivers one archived document right away instead
// of waiting for the dispatch job.
type SubmitDocumentCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitDocumentCommand requires a valid document id.
func NewSubmitDocumentCommand(documentID kernel.UUID) (SubmitDocumentCommand, error) {
	if err := documentID.Validate(); err != nil {
		return SubmitDocumentCommand{}, err
	}
	return SubmitDocumentCommand{documentID: documentID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitDocumentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitDocumentCommandIsNotConstructed)
}

// DocumentID returns the id of the archived document to deliver.
func (c SubmitDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}
