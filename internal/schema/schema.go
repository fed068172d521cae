// Package schema carries the root-type capabilities a document is
// validated against. It is not a schema representation: the validator
// only needs to know whether the schema declares each root operation
// type.
package schema

// Schema records the names of the schema's root operation types. An
// empty name means the schema does not declare that root type.
type Schema struct {
	QueryType    string
	MutationType string
}

// HasQueryType reports whether the schema declares a root query type.
func (s *Schema) HasQueryType() bool { return s != nil && s.QueryType != "" }

// HasMutationType reports whether the schema declares a root mutation
// type.
func (s *Schema) HasMutationType() bool { return s != nil && s.MutationType != "" }
