package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindOperationFirstWins(t *testing.T) {
	doc := mustParse(t, `
		mutation Save { save }
		query Get { hero }
	`)
	op := FindOperation(doc)
	require.NotNil(t, op)
	require.NotNil(t, op.Mutation, "first top-level operation is the mutation")
	require.Nil(t, op.Query)
	require.Equal(t, "mutation", op.Type())
	require.Equal(t, "Save", op.OperationName())
}

func TestFindOperationQuery(t *testing.T) {
	doc := mustParse(t, `
		fragment F on Query { hero }
		query Get { ...F }
	`)
	op := FindOperation(doc)
	require.NotNil(t, op)
	require.NotNil(t, op.Query)
	require.Equal(t, "query", op.Type())
	require.Equal(t, "Get", op.OperationName())
}

func TestFindOperationNone(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		require.Nil(t, FindOperation(Document{}))
	})

	t.Run("fragments only", func(t *testing.T) {
		doc := mustParse(t, `fragment F on Query { hero }`)
		require.Nil(t, FindOperation(doc))
	})
}

func TestNilOperationAccessors(t *testing.T) {
	var op *Operation
	require.Empty(t, op.Type())
	require.Empty(t, op.OperationName())
}
