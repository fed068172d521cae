package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	document "github.com/hanpama/gqlnorm/internal/document"
)

func mustParse(t *testing.T, source string) document.Document {
	t.Helper()
	doc, err := document.Parse(source)
	require.NoError(t, err, "failed to parse %q", source)
	return doc
}

func TestExpandDocumentInlinesSpread(t *testing.T) {
	doc := mustParse(t, `
		query Q { ...HeroFields }
		fragment HeroFields on Query { hero rank }
	`)
	frag := doc.Nodes[1].(*document.FragmentDefinition)

	expanded := ExpandDocument(doc)

	q := expanded.Nodes[0].(*document.Query)
	if diff := cmp.Diff(frag.SelectionSet.Nodes, q.SelectionSet.Nodes); diff != "" {
		t.Fatalf("expanded selections mismatch (-want +got):\n%s", diff)
	}

	// The definition stays in the output even though it is now redundant.
	kept, ok := expanded.Nodes[1].(*document.FragmentDefinition)
	require.True(t, ok)
	require.Equal(t, "HeroFields", kept.Name)
}

func TestExpandDocumentIdempotentWithoutSpreads(t *testing.T) {
	doc := mustParse(t, `
		query Q { hero { name friends { name } } }
		mutation M { save }
	`)
	expanded := ExpandDocument(doc)
	if diff := cmp.Diff(doc, expanded); diff != "" {
		t.Fatalf("document changed without spreads (-want +got):\n%s", diff)
	}
}

func TestExpandDocumentLeavesOriginalUntouched(t *testing.T) {
	source := `
		query Q { ...F hero { ...F } }
		fragment F on Query { name }
	`
	doc := mustParse(t, source)
	ExpandDocument(doc)
	if diff := cmp.Diff(mustParse(t, source), doc); diff != "" {
		t.Fatalf("input document mutated (-want +got):\n%s", diff)
	}
}

func TestUndefinedSpreadPreserved(t *testing.T) {
	doc := mustParse(t, `query Q { ...Missing }`)
	expanded := ExpandDocument(doc)

	q := expanded.Nodes[0].(*document.Query)
	require.Len(t, q.SelectionSet.Nodes, 1)
	spread, ok := q.SelectionSet.Nodes[0].(*document.FragmentSpread)
	require.True(t, ok, "undefined spread must survive as-is, got %T", q.SelectionSet.Nodes[0])
	require.Equal(t, "Missing", spread.Name)
}

func TestFragmentWithoutSelectionSetVanishes(t *testing.T) {
	spread := &document.FragmentSpread{Name: "Empty"}
	frag := &document.FragmentDefinition{Name: "Empty"}

	got := Expand([]document.Node{spread}, []*document.FragmentDefinition{frag})
	require.Empty(t, got)
}

func TestRepeatedSpreadSplicesEachTime(t *testing.T) {
	doc := mustParse(t, `
		query Q { ...F a ...F }
		fragment F on Query { x }
	`)
	expanded := ExpandDocument(doc)

	q := expanded.Nodes[0].(*document.Query)
	var names []string
	for _, n := range q.SelectionSet.Nodes {
		names = append(names, n.(*document.Field).Name)
	}
	require.Equal(t, []string{"x", "a", "x"}, names)
}

func TestExpandRecursesIntoFields(t *testing.T) {
	doc := mustParse(t, `
		query Q { hero { ...Names } }
		fragment Names on Character { name }
	`)
	expanded := ExpandDocument(doc)

	hero := expanded.Nodes[0].(*document.Query).SelectionSet.Nodes[0].(*document.Field)
	require.NotNil(t, hero.SelectionSet)
	require.Len(t, hero.SelectionSet.Nodes, 1)
	require.Equal(t, "name", hero.SelectionSet.Nodes[0].(*document.Field).Name)
}

// A fragment body spliced into an operation is taken as-is: spreads
// inside that body are only resolved by a further expansion pass.
func TestNestedSpreadsNeedAnotherPass(t *testing.T) {
	doc := mustParse(t, `
		query Q { ...Outer }
		fragment Outer on Query { a ...Inner }
		fragment Inner on Query { b }
	`)
	expanded := ExpandDocument(doc)

	q := expanded.Nodes[0].(*document.Query)
	require.Len(t, q.SelectionSet.Nodes, 2)
	require.Equal(t, "a", q.SelectionSet.Nodes[0].(*document.Field).Name)
	inner, ok := q.SelectionSet.Nodes[1].(*document.FragmentSpread)
	require.True(t, ok, "nested spread must not be expanded in one pass, got %T", q.SelectionSet.Nodes[1])
	require.Equal(t, "Inner", inner.Name)

	second := ExpandDocument(expanded)
	q2 := second.Nodes[0].(*document.Query)
	require.Len(t, q2.SelectionSet.Nodes, 2)
	require.Equal(t, "b", q2.SelectionSet.Nodes[1].(*document.Field).Name)
}

func TestExpandPassesOtherNodesThrough(t *testing.T) {
	name := &document.Name{Value: "n"}
	set := &document.SelectionSet{Nodes: []document.Node{&document.FragmentSpread{Name: "F"}}}
	frag := &document.FragmentDefinition{
		Name:         "F",
		SelectionSet: &document.SelectionSet{Nodes: []document.Node{&document.Field{Name: "x"}}},
	}

	got := Expand([]document.Node{name, set}, []*document.FragmentDefinition{frag})
	require.Len(t, got, 2)
	require.Same(t, name, got[0])

	inner, ok := got[1].(*document.SelectionSet)
	require.True(t, ok)
	require.Len(t, inner.Nodes, 1)
	require.Equal(t, "x", inner.Nodes[0].(*document.Field).Name)
}
