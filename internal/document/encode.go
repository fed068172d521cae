package document

import (
	"encoding/json"

	language "github.com/hanpama/gqlnorm/internal/language"
)

// MarshalJSON renders the document as an array of kind-tagged nodes.
// External parser payloads are reduced to their rendered literals so the
// output stays compact.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(encodeNodes(d.Nodes))
}

func encodeNodes(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = encodeNode(n)
	}
	return out
}

func encodeNode(n Node) any {
	switch n := n.(type) {
	case *Name:
		return map[string]any{"kind": "Name", "value": n.Value}
	case *SelectionSet:
		return map[string]any{"kind": "SelectionSet", "selections": encodeNodes(n.Nodes)}
	case *Field:
		m := map[string]any{"kind": "Field", "name": n.Name}
		if len(n.Arguments) > 0 {
			m["arguments"] = encodeArguments(n.Arguments)
		}
		if len(n.Directives) > 0 {
			m["directives"] = encodeDirectives(n.Directives)
		}
		if n.SelectionSet != nil {
			m["selections"] = encodeNodes(n.SelectionSet.Nodes)
		}
		return m
	case *FragmentSpread:
		return map[string]any{"kind": "FragmentSpread", "name": n.Name}
	case *FragmentDefinition:
		m := map[string]any{"kind": "FragmentDefinition", "name": n.Name, "typeCondition": n.TypeCondition}
		if len(n.Directives) > 0 {
			m["directives"] = encodeDirectives(n.Directives)
		}
		if n.SelectionSet != nil {
			m["selections"] = encodeNodes(n.SelectionSet.Nodes)
		}
		return m
	case *Query:
		return encodeOperation("Query", n.Name, n.Directives, n.VariableDefinitions, n.SelectionSet)
	case *Mutation:
		return encodeOperation("Mutation", n.Name, n.Directives, n.VariableDefinitions, n.SelectionSet)
	default:
		return nil
	}
}

func encodeOperation(kind, name string, directives language.DirectiveList, vars language.VariableDefinitionList, set SelectionSet) map[string]any {
	m := map[string]any{"kind": kind, "selections": encodeNodes(set.Nodes)}
	if name != "" {
		m["name"] = name
	}
	if len(directives) > 0 {
		m["directives"] = encodeDirectives(directives)
	}
	if len(vars) > 0 {
		vds := make([]any, len(vars))
		for i, vd := range vars {
			vds[i] = map[string]any{"variable": vd.Variable, "type": vd.Type.String()}
		}
		m["variableDefinitions"] = vds
	}
	return m
}

func encodeArguments(args language.ArgumentList) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		out[i] = map[string]any{"name": arg.Name, "value": arg.Value.String()}
	}
	return out
}

func encodeDirectives(directives language.DirectiveList) []any {
	out := make([]any, len(directives))
	for i, dir := range directives {
		m := map[string]any{"name": dir.Name}
		if len(dir.Arguments) > 0 {
			m["arguments"] = encodeArguments(dir.Arguments)
		}
		out[i] = m
	}
	return out
}
