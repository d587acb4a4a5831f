// Package kernel holds the value objects shared by every part of the
// transport-order domain: document identifiers, the closed set of document
// types, stop locations and date-time periods.
//
// Values are immutable and must be created through their constructors; a
// zero value fails Validate.
package kernel
