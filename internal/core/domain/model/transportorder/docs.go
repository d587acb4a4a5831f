// Package transportorder models the data flowing through document assembly:
// the loosely typed Input a caller supplies and the normalized Draft the
// collector and rule engine produce from it.
package transportorder
