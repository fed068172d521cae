package document

// Operation wraps the executable root operation found in a document.
// Exactly one of Query and Mutation is set.
type Operation struct {
	Query    *Query
	Mutation *Mutation
}

// FindOperation returns the first top-level Query or Mutation in doc, or
// nil when the document has none. Later operations are silently ignored.
func FindOperation(doc Document) *Operation {
	for _, n := range doc.Nodes {
		switch op := n.(type) {
		case *Query:
			return &Operation{Query: op}
		case *Mutation:
			return &Operation{Mutation: op}
		}
	}
	return nil
}

// Type reports the operation kind as it appears in source.
func (o *Operation) Type() string {
	switch {
	case o == nil:
		return ""
	case o.Mutation != nil:
		return "mutation"
	default:
		return "query"
	}
}

// OperationName returns the operation's declared name, empty when the
// operation is anonymous.
func (o *Operation) OperationName() string {
	switch {
	case o == nil:
		return ""
	case o.Mutation != nil:
		return o.Mutation.Name
	default:
		return o.Query.Name
	}
}
