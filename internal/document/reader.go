package document

import (
	language "github.com/hanpama/gqlnorm/internal/language"
)

// readNode maps one external syntax-tree node to its simplified form.
// Constructs the model has no variant for (subscriptions, inline
// fragments, any future kind) report ok=false and are omitted without
// signal.
func readNode(external any) (Node, bool) {
	switch n := external.(type) {
	case *language.OperationDefinition:
		return readOperation(n)
	case *language.FragmentDefinition:
		return &FragmentDefinition{
			Name:          n.Name,
			TypeCondition: n.TypeCondition,
			Directives:    n.Directives,
			SelectionSet:  readOptionalSelections(n.SelectionSet),
			Position:      n.Position,
		}, true
	case *language.Field:
		return &Field{
			Name:         n.Name,
			Arguments:    n.Arguments,
			Directives:   n.Directives,
			SelectionSet: readOptionalSelections(n.SelectionSet),
			Position:     n.Position,
		}, true
	case *language.FragmentSpread:
		return &FragmentSpread{Name: n.Name, Source: n, Position: n.Position}, true
	default:
		return nil, false
	}
}

func readOperation(op *language.OperationDefinition) (Node, bool) {
	switch op.Operation {
	case language.Query:
		return &Query{
			Name:                op.Name,
			Directives:          op.Directives,
			VariableDefinitions: op.VariableDefinitions,
			SelectionSet:        readSelections(op.SelectionSet),
			Position:            op.Position,
		}, true
	case language.Mutation:
		return &Mutation{
			Name:                op.Name,
			Directives:          op.Directives,
			VariableDefinitions: op.VariableDefinitions,
			SelectionSet:        readSelections(op.SelectionSet),
			Position:            op.Position,
		}, true
	default:
		return nil, false
	}
}

// readSelections maps every child selection in order, dropping the ones
// with no simplified form. The set simply ends up with fewer entries
// than the source; no gap is signalled.
func readSelections(set language.SelectionSet) SelectionSet {
	out := SelectionSet{Nodes: make([]Node, 0, len(set))}
	for _, sel := range set {
		if n, ok := readNode(sel); ok {
			out.Nodes = append(out.Nodes, n)
		}
	}
	return out
}

// readOptionalSelections keeps an absent selection set distinct from an
// empty one: nil input stays nil.
func readOptionalSelections(set language.SelectionSet) *SelectionSet {
	if set == nil {
		return nil
	}
	s := readSelections(set)
	return &s
}
