package ports

import (
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/domain/model/transportorder"
)

// RuleStore provides the immutable configuration the domain services run
// on: templates, parameter definitions, validation rules and examples.
// Every lookup of an absent resource fails with errs.ObjectNotFoundError.
// Implementations must be safe for concurrent reads.
type RuleStore interface {
	// Template returns the raw template text of a document type.
	Template(documentType kernel.DocumentType) (string, error)

	// ParameterDefinitions returns one parameter definition file.
	ParameterDefinitions(kind ruleset.ParameterKind) (ruleset.ParameterDefinitions, error)

	// ValidationRules returns one validation rule file.
	ValidationRules(kind ruleset.ValidationKind) (ruleset.ValidationRules, error)

	// Example returns a complete, valid example document.
	Example(documentType kernel.DocumentType) (string, error)

	// ExampleInput returns the input the example document is generated from.
	ExampleInput(documentType kernel.DocumentType) (transportorder.Input, error)

	// DocumentTypes lists the types a template is available for.
	DocumentTypes() []kernel.DocumentType

	// Reset drops cached content; the next lookup reloads it.
	Reset()
}
