// Package normalize rewrites simplified documents by inlining fragment
// spreads into the selection sets that reference them.
package normalize

import (
	document "github.com/hanpama/gqlnorm/internal/document"
)

// Expand returns a new node sequence with fragment spreads replaced by
// the body of the matching definition:
//
//   - spread with a known definition carrying a selection set: the
//     spread is replaced in place by that set's nodes, taken as-is.
//     Spreads nested inside the spliced body are not expanded by this
//     pass.
//   - spread with a known definition carrying no selection set:
//     contributes zero nodes.
//   - spread with no matching definition: kept unchanged. Not an error.
//
// Fields recurse into their selection sets; everything else passes
// through. Inputs are never mutated and definitions are never marked
// consumed, so repeated spreads of one fragment each splice again.
func Expand(nodes []document.Node, fragments []*document.FragmentDefinition) []document.Node {
	out := make([]document.Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *document.FragmentSpread:
			def := fragmentForName(fragments, n.Name)
			if def == nil {
				out = append(out, n)
				continue
			}
			if def.SelectionSet == nil {
				continue
			}
			out = append(out, def.SelectionSet.Nodes...)
		case *document.Field:
			if n.SelectionSet == nil {
				out = append(out, n)
				continue
			}
			field := *n
			field.SelectionSet = &document.SelectionSet{
				Nodes:    Expand(n.SelectionSet.Nodes, fragments),
				Position: n.SelectionSet.Position,
			}
			out = append(out, &field)
		case *document.SelectionSet:
			out = append(out, &document.SelectionSet{
				Nodes:    Expand(n.Nodes, fragments),
				Position: n.Position,
			})
		default:
			out = append(out, n)
		}
	}
	return out
}

// ExpandDocument returns a new document whose top-level operations have
// their selection sets expanded against the document's own top-level
// fragment definitions. Every other top-level node, the fragment
// definitions included, passes through unchanged.
func ExpandDocument(doc document.Document) document.Document {
	fragments := topLevelFragments(doc)
	out := document.Document{Nodes: make([]document.Node, 0, len(doc.Nodes))}
	for _, n := range doc.Nodes {
		switch n := n.(type) {
		case *document.Query:
			q := *n
			q.SelectionSet = document.SelectionSet{
				Nodes:    Expand(n.SelectionSet.Nodes, fragments),
				Position: n.SelectionSet.Position,
			}
			out.Nodes = append(out.Nodes, &q)
		case *document.Mutation:
			m := *n
			m.SelectionSet = document.SelectionSet{
				Nodes:    Expand(n.SelectionSet.Nodes, fragments),
				Position: n.SelectionSet.Position,
			}
			out.Nodes = append(out.Nodes, &m)
		default:
			out.Nodes = append(out.Nodes, n)
		}
	}
	return out
}

func topLevelFragments(doc document.Document) []*document.FragmentDefinition {
	var defs []*document.FragmentDefinition
	for _, n := range doc.Nodes {
		if def, ok := n.(*document.FragmentDefinition); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// fragmentForName matches by exact, case-sensitive equality.
func fragmentForName(fragments []*document.FragmentDefinition, name string) *document.FragmentDefinition {
	for _, f := range fragments {
		if f.Name == name {
			return f
		}
	}
	return nil
}
