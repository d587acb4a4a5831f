// Package commands contains the operations that generate, validate and
// deliver transport orders.
//
// Every command is a value built through its constructor and handled by a
// dedicated handler: the constructor validates the input, the handler owns
// the transaction.
package commands

import (
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/validation"
	"transportorder/internal/core/domain/services/generator"
)

type (
	// Generators resolves the generator of a document type.
	Generators interface {
		Get(documentType kernel.DocumentType) (generator.Generator, error)
	}

	// DocumentValidator runs the validation pipeline on one document.
	DocumentValidator interface {
		Validate(xml string, documentType kernel.DocumentType) validation.Report
	}
)
