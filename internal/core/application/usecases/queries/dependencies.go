// Package queries contains the read-only operations of the service: the
// document type catalogue, examples, parameter requirements and the
// delivery queue.
package queries

import (
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/services/generator"
	"transportorder/internal/core/domain/services/rules"
)

type (
	// DocumentTypeCatalog lists the generators the service offers.
	DocumentTypeCatalog interface {
		Types() []kernel.DocumentType
		Get(documentType kernel.DocumentType) (generator.Generator, error)
	}

	// RuleSummaries describes the business rules applied to a type.
	RuleSummaries interface {
		Summary(documentType kernel.DocumentType) []rules.Summary
	}
)
