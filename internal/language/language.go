package language

import (
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Definitions returns doc's top-level definitions as a single slice in
// source order. The parser splits operations and fragments into separate
// lists; merging on byte offset restores the original interleaving.
func Definitions(doc *QueryDocument) []any {
	defs := make([]any, 0, len(doc.Operations)+len(doc.Fragments))
	for _, op := range doc.Operations {
		defs = append(defs, op)
	}
	for _, frag := range doc.Fragments {
		defs = append(defs, frag)
	}
	sort.SliceStable(defs, func(i, j int) bool {
		return definitionStart(defs[i]) < definitionStart(defs[j])
	})
	return defs
}

func definitionStart(def any) int {
	switch d := def.(type) {
	case *OperationDefinition:
		if d.Position != nil {
			return d.Position.Start
		}
	case *FragmentDefinition:
		if d.Position != nil {
			return d.Position.Start
		}
	}
	return 0
}
