package values

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/gqlkit/gqlschema/internal/language"
	schema "github.com/gqlkit/gqlschema/internal/schema"
)

func intLit(raw string) *language.Value {
	return &language.Value{Kind: language.IntValue, Raw: raw}
}

func strLit(raw string) *language.Value {
	return &language.Value{Kind: language.StringValue, Raw: raw}
}

func varLit(name string) *language.Value {
	return &language.Value{Kind: language.Variable, Raw: name}
}

func listLit(items ...*language.Value) *language.Value {
	v := &language.Value{Kind: language.ListValue}
	for _, item := range items {
		v.Children = append(v.Children, &language.ChildValue{Value: item})
	}
	return v
}

func objLit(fields map[string]*language.Value) *language.Value {
	v := &language.Value{Kind: language.ObjectValue}
	for name, fv := range fields {
		v.Children = append(v.Children, &language.ChildValue{Name: name, Value: fv})
	}
	return v
}

func TestCoerceLiteralScalarKinds(t *testing.T) {
	s := testSchema(t)

	v, ok := CoerceInputLiteral(s, intLit("5"), schema.NamedType("Int"), nil, nil)
	require.True(t, ok)
	require.Equal(t, 5, v)

	_, ok = CoerceInputLiteral(s, strLit("5"), schema.NamedType("Int"), nil, nil)
	require.False(t, ok, "string literals never coerce to Int")

	_, ok = CoerceInputLiteral(s, intLit("5"), schema.NamedType("String"), nil, nil)
	require.False(t, ok)
}

func TestCoerceLiteralEnumRequiresEnumSyntax(t *testing.T) {
	s := testSchema(t)
	color := schema.NamedType("Color")

	v, ok := CoerceInputLiteral(s, &language.Value{Kind: language.EnumValue, Raw: "GREEN"}, color, nil, nil)
	require.True(t, ok)
	require.Equal(t, "GREEN", v)

	_, ok = CoerceInputLiteral(s, strLit("GREEN"), color, nil, nil)
	require.False(t, ok, "a quoted enum name is not an enum literal")
}

func TestCoerceLiteralListOfOne(t *testing.T) {
	s := testSchema(t)
	listOfInt := schema.ListType(schema.NamedType("Int"))

	v, ok := CoerceInputLiteral(s, intLit("7"), listOfInt, nil, nil)
	require.True(t, ok)
	require.Equal(t, []any{7}, v)

	v, ok = CoerceInputLiteral(s, listLit(intLit("1"), intLit("2")), listOfInt, nil, nil)
	require.True(t, ok)
	require.Equal(t, []any{1, 2}, v)
}

func TestCoerceLiteralVariables(t *testing.T) {
	s := testSchema(t)

	vars := NewVariables()
	vars.Set("n", 3)

	v, ok := CoerceInputLiteral(s, varLit("n"), schema.NamedType("Int"), vars, nil)
	require.True(t, ok)
	require.Equal(t, 3, v)

	// A missing nullable variable substitutes null.
	v, ok = CoerceInputLiteral(s, varLit("absent"), schema.NamedType("Int"), vars, nil)
	require.True(t, ok)
	require.Nil(t, v)

	// A missing variable at a non-null position fails.
	_, ok = CoerceInputLiteral(s, varLit("absent"), schema.NonNullType(schema.NamedType("Int")), vars, nil)
	require.False(t, ok)

	// An explicit null against non-null fails even when provided.
	vars.Set("null", nil)
	_, ok = CoerceInputLiteral(s, varLit("null"), schema.NonNullType(schema.NamedType("Int")), vars, nil)
	require.False(t, ok)
}

func TestCoerceLiteralMissingVariableInList(t *testing.T) {
	s := testSchema(t)
	vars := NewVariables()

	// Inside a list a missing variable becomes a null item, not an absent one.
	v, ok := CoerceInputLiteral(s, listLit(intLit("1"), varLit("absent")),
		schema.ListType(schema.NamedType("Int")), vars, nil)
	require.True(t, ok)
	require.Equal(t, []any{1, nil}, v)

	_, ok = CoerceInputLiteral(s, listLit(varLit("absent")),
		schema.ListType(schema.NonNullType(schema.NamedType("Int"))), vars, nil)
	require.False(t, ok, "null item rejected by non-null item type")
}

func TestCoerceLiteralMissingVariableInObject(t *testing.T) {
	s := testSchema(t)
	input := schema.NamedType("CreateUser")

	// A field bound to a missing variable is treated as absent: the default
	// applies and required fields complain.
	v, ok := CoerceInputLiteral(s, objLit(map[string]*language.Value{
		"name":  strLit("Ann"),
		"limit": varLit("absent"),
	}), input, NewVariables(), nil)
	require.True(t, ok)
	require.Equal(t, map[string]any{"name": "Ann", "limit": 10}, v)

	_, ok = CoerceInputLiteral(s, objLit(map[string]*language.Value{
		"name": varLit("absent"),
	}), input, NewVariables(), nil)
	require.False(t, ok)
}

func TestCoerceLiteralFragmentVariableShadowing(t *testing.T) {
	s := testSchema(t)

	opVars := NewVariables()
	opVars.Set("n", 1)
	fragVars := NewVariables()
	fragVars.Set("n", 2)

	v, ok := CoerceInputLiteral(s, varLit("n"), schema.NamedType("Int"), opVars, fragVars)
	require.True(t, ok)
	require.Equal(t, 2, v, "fragment-scoped definition wins")

	// A fragment providing an explicit null shadows the operation's value
	// entirely.
	shadow := NewVariables()
	shadow.Set("n", nil)
	v, ok = CoerceInputLiteral(s, varLit("n"), schema.NamedType("Int"), opVars, shadow)
	require.True(t, ok)
	require.Nil(t, v)
}

func TestCoerceLiteralOneOf(t *testing.T) {
	s := testSchema(t)
	by := schema.NamedType("UserBy")

	v, ok := CoerceInputLiteral(s, objLit(map[string]*language.Value{"id": strLit("1")}), by, nil, nil)
	require.True(t, ok)
	require.Equal(t, map[string]any{"id": "1"}, v)

	_, ok = CoerceInputLiteral(s, objLit(map[string]*language.Value{
		"id":    strLit("1"),
		"email": strLit("a@b.c"),
	}), by, nil, nil)
	require.False(t, ok)
}

func TestCoerceVariableValues(t *testing.T) {
	s := testSchema(t)
	defs := language.VariableDefinitionList{
		&language.VariableDefinition{Variable: "count", Type: &language.Type{NamedType: "Int", NonNull: true}},
		&language.VariableDefinition{Variable: "color", Type: &language.Type{NamedType: "Color"}, DefaultValue: &language.Value{Kind: language.EnumValue, Raw: "BLUE"}},
	}

	vars, err := CoerceVariableValues(s, defs, map[string]any{"count": int64(4)})
	require.NoError(t, err)

	count, provided := vars.Lookup("count")
	require.True(t, provided)
	require.Equal(t, 4, count)

	color, provided := vars.Lookup("color")
	require.True(t, provided, "definition default applies when absent")
	require.Equal(t, "BLUE", color)
}

func TestCoerceVariableValuesErrors(t *testing.T) {
	s := testSchema(t)
	required := language.VariableDefinitionList{
		&language.VariableDefinition{Variable: "count", Type: &language.Type{NamedType: "Int", NonNull: true}},
	}

	_, err := CoerceVariableValues(s, required, map[string]any{})
	require.Error(t, err)
	require.Contains(t, err.Error(), `Variable $count of required type "Int!" was not provided`)

	_, err = CoerceVariableValues(s, required, map[string]any{"count": nil})
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be null")

	_, err = CoerceVariableValues(s, required, map[string]any{"count": "nope"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Variable $count got invalid value")
}

func TestValidateInputLiteralMultiError(t *testing.T) {
	s := testSchema(t)

	var msgs []string
	ValidateInputLiteral(s, objLit(map[string]*language.Value{
		"age":  strLit("old"),
		"tags": listLit(intLit("1")),
	}), schema.NamedType("CreateUser"), nil, nil, func(err *gqlerror.Error, path language.Path) {
		msgs = append(msgs, err.Message)
	})
	require.Len(t, msgs, 3, "missing required field, bad age, bad tag item")
}
