package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	QueryDocument          = ast.QueryDocument
	OperationDefinition    = ast.OperationDefinition
	FragmentDefinition     = ast.FragmentDefinition
	SelectionSet           = ast.SelectionSet
	Selection              = ast.Selection
	Field                  = ast.Field
	InlineFragment         = ast.InlineFragment
	FragmentSpread         = ast.FragmentSpread
	Directive              = ast.Directive
	DirectiveList          = ast.DirectiveList
	Argument               = ast.Argument
	ArgumentList           = ast.ArgumentList
	VariableDefinition     = ast.VariableDefinition
	VariableDefinitionList = ast.VariableDefinitionList
	Position               = ast.Position
	Source                 = ast.Source
)

type Operation = ast.Operation

const (
	Query        Operation = ast.Query
	Mutation     Operation = ast.Mutation
	Subscription Operation = ast.Subscription
)
