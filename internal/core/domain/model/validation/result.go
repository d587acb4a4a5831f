// Package validation holds the accumulating result type shared by every
// validation stage.
package validation

import "fmt"

// Result collects findings of one or more validation stages. Errors make a
// document invalid; warnings never do.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewResult returns an empty result with non-nil slices.
func NewResult() Result {
	return Result{Errors: []string{}, Warnings: []string{}}
}

// IsValid is true iff no errors were recorded.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError records a finding that makes the document invalid.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarning records a finding that is reported but does not affect
// validity.
func (r *Result) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends the findings of other, keeping stage order.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
