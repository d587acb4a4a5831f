package document

import (
	"fmt"

	"transportorder/internal/pkg/errs"
)

// Status is the delivery state of a stored document. The transitions are
// drawn in the package documentation; Submitted and Rejected are final.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Generated is an archived document nobody asked to deliver yet.
	Generated

	// Queued documents are picked up by the dispatch job, oldest first.
	Queued

	// Submitted means the exchange answered 202.
	Submitted

	// Rejected means the exchange refused the document, or transient
	// failures used up every attempt.
	Rejected
)

// getStatusStrings returns the persisted and displayed names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Generated: "Generated",
		Queued:    "Queued",
		Submitted: "Submitted",
		Rejected:  "Rejected",
	}
}

// Validate rejects Unknown and values outside the declared range.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, or "Unknown" for an invalid value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Submitted || s == Rejected
}

// Queue moves a freshly generated document into the delivery queue.
func (s Status) Queue() (Status, error) {
	if s != Generated {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to queue", s),
		)
	}
	return Queued, nil
}

// Submit is allowed from Queued only.
func (s Status) Submit() (Status, error) {
	if s != Queued {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to submit", s),
		)
	}
	return Submitted, nil
}

// Reject is allowed from Queued only; a Generated document was never sent.
func (s Status) Reject() (Status, error) {
	if s != Queued {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s),
		)
	}
	return Rejected, nil
}
