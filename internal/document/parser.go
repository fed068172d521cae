package document

import (
	language "github.com/hanpama/gqlnorm/internal/language"
)

// Parse runs the external parser over source and simplifies every
// top-level definition in source order. A syntax error aborts the whole
// document and is returned carrying the parser's message; there is no
// node-level recovery.
func Parse(source string) (Document, error) {
	doc, err := language.ParseQuery(source)
	if err != nil {
		return Document{}, err
	}
	var out Document
	for _, def := range language.Definitions(doc) {
		if n, ok := readNode(def); ok {
			out.Nodes = append(out.Nodes, n)
		}
	}
	return out, nil
}
