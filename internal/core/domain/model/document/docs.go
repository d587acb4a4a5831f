// Package document provides the Document aggregate: a generated transport
// order archived for auditing and, when requested, queued for delivery to
// the exchange platform.
//
// Lifecycle:
//
//	Generated ──> Queued ──┬──> Submitted
//	                 ▲     │
//	                 └─────┤ (retryable failure, attempts left)
//	                       └──> Rejected
//
// A document is rejected when the exchange refuses it outright or when the
// configured number of delivery attempts is exhausted.
package document
