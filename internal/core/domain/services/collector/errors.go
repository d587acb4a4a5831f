package collector

import "errors"

var (
	// ErrMissingRequiredField is a required field absent from input and without
	// a default.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidLocation is a stop location that cannot be built.
	ErrInvalidLocation = errors.New("invalid location")
	// ErrInvalidDateTime is a time window with a missing or malformed bound.
	ErrInvalidDateTime = errors.New("invalid date time")
	// ErrInvalidParameter is an ocean parameter with a bad value, for example
	// a SCAC that is not four alphanumeric characters.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// FieldError names the input field a collection failure is about. It
// matches one of the sentinel errors above with errors.Is.
type FieldError struct {
	Kind    error
	Field   string
	Message string
	Cause   error
}

func newFieldError(kind error, field, message string, cause error) *FieldError {
	return &FieldError{Kind: kind, Field: field, Message: message, Cause: cause}
}

// Error omits Kind; the message already says what went wrong.
func (e *FieldError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both Kind and Cause to errors.Is.
func (e *FieldError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}
