package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"transportorder/internal/pkg/errs"
	"transportorder/internal/pkg/guard"
)

// ErrDateTimePeriodIsNotConstructed is returned by Validate on a zero value.
var ErrDateTimePeriodIsNotConstructed = errs.NewValueIsRequiredError(
	"date time period must be created via NewDateTimePeriod constructor")

// Seconds precision with either a numeric offset or Z. Fractions are not
// accepted by the exchange format.
var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}([+-]\d{2}:\d{2}|Z)$`)

// DateTimePeriod is the time window of a stop.
type DateTimePeriod struct { //nolint:recvcheck // Validate uses a value receiver
	start    string
	end      string
	timezone string
	guard    guard.ConstructorGuard
}

// NewDateTimePeriod checks that start and end are present and well formed.
// The timezone is an optional IANA name carried through verbatim.
func NewDateTimePeriod(start, end, timezone string) (DateTimePeriod, error) {
	p := DateTimePeriod{
		timezone: strings.TrimSpace(timezone),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setStart(start),
		p.setEnd(end),
	); err != nil {
		return DateTimePeriod{}, err
	}

	return p, nil
}

// IsTimestamp reports whether s matches the exchange timestamp format.
func IsTimestamp(s string) bool {
	return timestampPattern.MatchString(s)
}

// ParseTimestamp parses a timestamp in the exchange format into an instant.
func ParseTimestamp(s string) (time.Time, error) {
	if !IsTimestamp(s) {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("timestamp",
			fmt.Errorf("%q is not in YYYY-MM-DDTHH:MM:SS+HH:MM format", s))
	}
	return time.Parse(time.RFC3339, s)
}

// Validate ensures the period was created through NewDateTimePeriod.
func (p DateTimePeriod) Validate() error {
	return p.guard.Validate(ErrDateTimePeriodIsNotConstructed)
}

// Start returns the opening of the window as written by the caller.
func (p DateTimePeriod) Start() string { return p.start }

// End returns the closing of the window. Its order relative to Start is not
// checked.
func (p DateTimePeriod) End() string { return p.end }

// Timezone returns the IANA zone name, or "" when none was given.
func (p DateTimePeriod) Timezone() string { return p.timezone }

func (p *DateTimePeriod) setStart(start string) error {
	value, err := checkTimestamp("start", start)
	if err != nil {
		return err
	}
	p.start = value
	return nil
}

func (p *DateTimePeriod) setEnd(end string) error {
	value, err := checkTimestamp("end", end)
	if err != nil {
		return err
	}
	p.end = value
	return nil
}

func checkTimestamp(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.NewValueIsRequiredError(name)
	}
	if !IsTimestamp(value) {
		return "", errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%q must use format YYYY-MM-DDTHH:MM:SS+HH:MM", value))
	}
	return value, nil
}
