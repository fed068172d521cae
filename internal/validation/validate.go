// Package validation performs the shallow structural check of a document
// against a schema's root-type presence.
package validation

import (
	document "github.com/hanpama/gqlnorm/internal/document"
)

// Result is the outcome of validating a document. It is a closed
// enumeration; callers branch on it rather than on errors.
type Result string

const (
	Success                       Result = "Success"
	NoQueryOrMutationProvided     Result = "NoQueryOrMutationProvided"
	SchemaDoesNotHaveQueryType    Result = "SchemaDoesNotHaveQueryType"
	SchemaDoesNotHaveMutationType Result = "SchemaDoesNotHaveMutationType"
)

// RootTypes is the schema capability the validator consumes: two
// independent boolean lookups.
type RootTypes interface {
	HasQueryType() bool
	HasMutationType() bool
}

// Validate checks that doc contains an executable root operation and
// that s declares the matching root type. It verifies nothing deeper;
// field, argument, variable and directive checking belong to a full
// validator.
func Validate(doc document.Document, s RootTypes) Result {
	op := document.FindOperation(doc)
	switch {
	case op == nil:
		return NoQueryOrMutationProvided
	case op.Mutation != nil:
		if !s.HasMutationType() {
			return SchemaDoesNotHaveMutationType
		}
	default:
		if !s.HasQueryType() {
			return SchemaDoesNotHaveQueryType
		}
	}
	return Success
}

// ValidateLegacy reproduces the original check, whose mutation branch
// consulted the root query type instead of the root mutation type. Kept
// for callers that need byte-for-byte compatibility with the original
// behavior.
func ValidateLegacy(doc document.Document, s RootTypes) Result {
	op := document.FindOperation(doc)
	switch {
	case op == nil:
		return NoQueryOrMutationProvided
	case op.Mutation != nil:
		if !s.HasQueryType() {
			return SchemaDoesNotHaveMutationType
		}
	default:
		if !s.HasQueryType() {
			return SchemaDoesNotHaveQueryType
		}
	}
	return Success
}
