package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	SchemaDocument          = ast.SchemaDocument
	SchemaDefinition        = ast.SchemaDefinition
	SchemaDefinitionList    = ast.SchemaDefinitionList
	OperationTypeDefinition = ast.OperationTypeDefinition
	Definition              = ast.Definition
	DefinitionList          = ast.DefinitionList
	DirectiveDefinition     = ast.DirectiveDefinition
	DirectiveDefinitionList = ast.DirectiveDefinitionList
	FieldDefinition         = ast.FieldDefinition
	FieldList               = ast.FieldList
	ArgumentDefinition      = ast.ArgumentDefinition
	ArgumentDefinitionList  = ast.ArgumentDefinitionList
	EnumValueDefinition     = ast.EnumValueDefinition
	EnumValueList           = ast.EnumValueList
	VariableDefinition      = ast.VariableDefinition
	VariableDefinitionList  = ast.VariableDefinitionList
	Directive               = ast.Directive
	DirectiveList           = ast.DirectiveList
	Argument                = ast.Argument
	ArgumentList            = ast.ArgumentList
	Value                   = ast.Value
	ChildValue              = ast.ChildValue
	ChildValueList          = ast.ChildValueList
	Type                    = ast.Type
	Position                = ast.Position
	Source                  = ast.Source
)

type DefinitionKind = ast.DefinitionKind

type Operation = ast.Operation

type ValueKind = ast.ValueKind

type DirectiveLocation = ast.DirectiveLocation

// Path identifies a location inside a nested input value, as a sequence of
// field names and list indices.
type (
	Path      = ast.Path
	PathName  = ast.PathName
	PathIndex = ast.PathIndex
)

const (
	Query        Operation = ast.Query
	Mutation     Operation = ast.Mutation
	Subscription Operation = ast.Subscription

	Object      DefinitionKind = ast.Object
	Interface   DefinitionKind = ast.Interface
	Union       DefinitionKind = ast.Union
	Scalar      DefinitionKind = ast.Scalar
	Enum        DefinitionKind = ast.Enum
	InputObject DefinitionKind = ast.InputObject

	Variable     ValueKind = ast.Variable
	IntValue     ValueKind = ast.IntValue
	FloatValue   ValueKind = ast.FloatValue
	StringValue  ValueKind = ast.StringValue
	BlockValue   ValueKind = ast.BlockValue
	BooleanValue ValueKind = ast.BooleanValue
	NullValue    ValueKind = ast.NullValue
	EnumValue    ValueKind = ast.EnumValue
	ListValue    ValueKind = ast.ListValue
	ObjectValue  ValueKind = ast.ObjectValue
)
