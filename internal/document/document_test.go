package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string) Document {
	t.Helper()
	doc, err := Parse(source)
	require.NoError(t, err, "failed to parse %q", source)
	return doc
}

func TestParseMinimalQuery(t *testing.T) {
	doc := mustParse(t, `{ hero }`)
	require.Len(t, doc.Nodes, 1)

	q, ok := doc.Nodes[0].(*Query)
	require.True(t, ok, "expected a Query node, got %T", doc.Nodes[0])
	require.Empty(t, q.Name)
	require.Len(t, q.SelectionSet.Nodes, 1)

	f, ok := q.SelectionSet.Nodes[0].(*Field)
	require.True(t, ok, "expected a Field node, got %T", q.SelectionSet.Nodes[0])
	require.Equal(t, "hero", f.Name)
	require.Nil(t, f.SelectionSet, "leaf field must have no selection set")
}

func TestParseInvalidInput(t *testing.T) {
	for _, source := range []string{`query {`, `{{`, `fragment on on X { a }`} {
		_, err := Parse(source)
		require.Error(t, err, "source %q", source)
		require.NotEmpty(t, err.Error())
	}
}

func TestUnsupportedKindsDropped(t *testing.T) {
	t.Run("subscription", func(t *testing.T) {
		doc := mustParse(t, `
			subscription S { newMessage }
			query Q { hero }
		`)
		require.Len(t, doc.Nodes, 1)
		q, ok := doc.Nodes[0].(*Query)
		require.True(t, ok)
		require.Equal(t, "Q", q.Name)
	})

	t.Run("inline fragment", func(t *testing.T) {
		doc := mustParse(t, `{ a ... on Droid { b } c }`)
		q := doc.Nodes[0].(*Query)
		require.Len(t, q.SelectionSet.Nodes, 2)
		require.Equal(t, "a", q.SelectionSet.Nodes[0].(*Field).Name)
		require.Equal(t, "c", q.SelectionSet.Nodes[1].(*Field).Name)
	})
}

func TestFieldSelectionSetPresence(t *testing.T) {
	doc := mustParse(t, `{ hero { name } rank }`)
	q := doc.Nodes[0].(*Query)
	require.Len(t, q.SelectionSet.Nodes, 2)

	hero := q.SelectionSet.Nodes[0].(*Field)
	require.NotNil(t, hero.SelectionSet)
	require.Len(t, hero.SelectionSet.Nodes, 1)
	require.Equal(t, "name", hero.SelectionSet.Nodes[0].(*Field).Name)

	rank := q.SelectionSet.Nodes[1].(*Field)
	require.Nil(t, rank.SelectionSet)
}

func TestTopLevelSourceOrder(t *testing.T) {
	doc := mustParse(t, `
		mutation Save { save }
		fragment F on Query { hero }
		query Get { ...F }
	`)
	require.Len(t, doc.Nodes, 3)

	m, ok := doc.Nodes[0].(*Mutation)
	require.True(t, ok, "expected Mutation first, got %T", doc.Nodes[0])
	require.Equal(t, "Save", m.Name)

	frag, ok := doc.Nodes[1].(*FragmentDefinition)
	require.True(t, ok, "expected FragmentDefinition second, got %T", doc.Nodes[1])
	require.Equal(t, "F", frag.Name)
	require.Equal(t, "Query", frag.TypeCondition)
	require.NotNil(t, frag.SelectionSet)

	q, ok := doc.Nodes[2].(*Query)
	require.True(t, ok, "expected Query last, got %T", doc.Nodes[2])
	require.Equal(t, "Get", q.Name)
}

func TestFragmentSpreadKeepsSource(t *testing.T) {
	doc := mustParse(t, `query Q { ...HeroFields }`)
	q := doc.Nodes[0].(*Query)
	spread := q.SelectionSet.Nodes[0].(*FragmentSpread)
	require.Equal(t, "HeroFields", spread.Name)
	require.NotNil(t, spread.Source)
	require.Equal(t, "HeroFields", spread.Source.Name)
}

func TestFieldArgumentsAndDirectives(t *testing.T) {
	doc := mustParse(t, `{ hero(id: 42) @include(if: true) { name } }`)
	hero := doc.Nodes[0].(*Query).SelectionSet.Nodes[0].(*Field)
	require.Len(t, hero.Arguments, 1)
	require.Equal(t, "id", hero.Arguments[0].Name)
	require.Len(t, hero.Directives, 1)
	require.Equal(t, "include", hero.Directives[0].Name)
}

func TestOperationVariableDefinitions(t *testing.T) {
	doc := mustParse(t, `query Q($id: ID!) { hero(id: $id) }`)
	q := doc.Nodes[0].(*Query)
	require.Len(t, q.VariableDefinitions, 1)
	require.Equal(t, "id", q.VariableDefinitions[0].Variable)
}
