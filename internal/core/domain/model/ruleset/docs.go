// Package ruleset describes the declarative configuration read from the rule
// store: field definitions per document type, business rule definitions
// and validation rules. The types are plain data decoded from YAML; the
// behaviour lives in the services that consume them.
package ruleset
