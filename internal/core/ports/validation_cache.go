package ports

import (
	"context"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/validation"
)

// ValidationCache memoizes pipeline reports by document content. A miss is
// reported with ok == false, never as an error.
type ValidationCache interface {
	Get(ctx context.Context, documentType kernel.DocumentType, xml string) (report validation.Report, ok bool, err error)
	Put(ctx context.Context, documentType kernel.DocumentType, xml string, report validation.Report) error
}
