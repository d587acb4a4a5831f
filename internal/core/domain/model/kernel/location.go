package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"transportorder/internal/pkg/errs"
	"transportorder/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned by Validate on a zero value.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation constructor")

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// Address is the raw material for a Location. Only CompanyName, City and
// Country are mandatory.
type Address struct {
	CompanyName string
	Street      string
	Zip         string
	City        string
	State       string
	Country     string
	Comment     string
}

// Location is the place a stop refers to. Country is an ISO 3166 alpha-2
// code in upper case.
type Location struct { //nolint:recvcheck // Validate uses a value receiver
	address Address
	guard   guard.ConstructorGuard
}

// NewLocation validates the address and returns a Location. All violations
// are reported together.
//
// Example:
//
//	loc, err := kernel.NewLocation(kernel.Address{
//	    CompanyName: "Mercedes-Benz AG Werk Wörth",
//	    City:        "Wörth am Rhein",
//	    Country:     "DE",
//	})
func NewLocation(address Address) (Location, error) {
	loc := Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		loc.setCompanyName(address.CompanyName),
		loc.setCity(address.City),
		loc.setCountry(address.Country),
	); err != nil {
		return Location{}, err
	}

	loc.address.Street = strings.TrimSpace(address.Street)
	loc.address.Zip = strings.TrimSpace(address.Zip)
	loc.address.State = strings.TrimSpace(address.State)
	loc.address.Comment = strings.TrimSpace(address.Comment)

	return loc, nil
}

// IsCountryCode reports whether code is two upper-case ASCII letters.
func IsCountryCode(code string) bool {
	return countryCodePattern.MatchString(code)
}

// Validate ensures the location was created through NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// CompanyName returns the name of the site operator.
func (l Location) CompanyName() string { return l.address.CompanyName }

// Street returns the street line, possibly empty.
func (l Location) Street() string { return l.address.Street }

// Zip returns the postal code, possibly empty.
func (l Location) Zip() string { return l.address.Zip }

// City returns the city name.
func (l Location) City() string { return l.address.City }

// State returns the region, possibly empty.
func (l Location) State() string { return l.address.State }

// Country returns the ISO 3166 alpha-2 code.
func (l Location) Country() string { return l.address.Country }

// Comment returns free text for the driver, possibly empty.
func (l Location) Comment() string { return l.address.Comment }

// Address returns a copy of the validated address.
func (l Location) Address() Address {
	return l.address
}

// String is meant for logs, e.g. "Acme GmbH, Berlin (DE)".
func (l Location) String() string {
	return fmt.Sprintf("%s, %s (%s)", l.address.CompanyName, l.address.City, l.address.Country)
}

func (l *Location) setCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("company_name")
	}
	l.address.CompanyName = name
	return nil
}

func (l *Location) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	l.address.City = city
	return nil
}

func (l *Location) setCountry(country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	if !IsCountryCode(country) {
		return errs.NewValueIsInvalidErrorWithCause("country",
			fmt.Errorf("%q must be 2 uppercase letters", country))
	}
	l.address.Country = country
	return nil
}
