// Package document defines the simplified GraphQL document model and the
// reader that produces it from the external parser's syntax tree.
package document

import (
	language "github.com/hanpama/gqlnorm/internal/language"
)

// Node is one simplified syntactic construct. The set of implementations
// is closed; consumers dispatch with a type switch.
type Node interface {
	node()
}

// Document is the ordered sequence of a request's top-level nodes.
type Document struct {
	Nodes []Node
}

// Name is a bare identifier.
type Name struct {
	Value    string
	Position *language.Position
}

// SelectionSet is one brace-enclosed group of selections in source order.
// Selections are never reordered or deduplicated.
type SelectionSet struct {
	Nodes    []Node
	Position *language.Position
}

// Field is a single field selection. A nil SelectionSet means the field
// is a leaf; an empty non-nil one means it carried empty braces.
type Field struct {
	Name         string
	Arguments    language.ArgumentList
	Directives   language.DirectiveList
	SelectionSet *SelectionSet
	Position     *language.Position
}

// FragmentSpread references a fragment definition by name. Source keeps
// the external parser's node so an unresolved spread loses nothing.
type FragmentSpread struct {
	Name     string
	Source   *language.FragmentSpread
	Position *language.Position
}

// FragmentDefinition is a reusable named selection set declared at the
// top level of a document.
type FragmentDefinition struct {
	Name          string
	TypeCondition string
	Directives    language.DirectiveList
	SelectionSet  *SelectionSet
	Position      *language.Position
}

// Query is a query operation. Name is empty for anonymous operations.
type Query struct {
	Name                string
	Directives          language.DirectiveList
	VariableDefinitions language.VariableDefinitionList
	SelectionSet        SelectionSet
	Position            *language.Position
}

// Mutation is a mutation operation. Name is empty for anonymous
// operations.
type Mutation struct {
	Name                string
	Directives          language.DirectiveList
	VariableDefinitions language.VariableDefinitionList
	SelectionSet        SelectionSet
	Position            *language.Position
}

func (*Name) node()               {}
func (*SelectionSet) node()       {}
func (*Field) node()              {}
func (*FragmentSpread) node()     {}
func (*FragmentDefinition) node() {}
func (*Query) node()              {}
func (*Mutation) node()           {}
