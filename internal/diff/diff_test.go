package diff

import (
	"testing"

	"github.com/stretchr/testify/require"

	schema "github.com/gqlkit/gqlschema/internal/schema"
)

func build(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	return schema.MustBuildSource("diff.graphql", sdl)
}

func changeTypes(changes []Change) []ChangeType {
	out := make([]ChangeType, len(changes))
	for i, c := range changes {
		out[i] = c.Type
	}
	return out
}

func TestDiffIdenticalSchemas(t *testing.T) {
	sdl := `
		type Query { user(id: ID!): User }
		type User { id: ID!, name: String }
	`
	require.Empty(t, SchemaChanges(build(t, sdl), build(t, sdl)))
}

func TestDiffTypeAddedAndRemoved(t *testing.T) {
	oldSchema := build(t, `
		type Query { a: A }
		type A { id: ID }
	`)
	newSchema := build(t, `
		type Query { a: B }
		type B { id: ID }
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.ElementsMatch(t, []ChangeType{TypeRemoved, TypeAdded, FieldChangedKind}, changeTypes(changes))

	require.Len(t, BreakingChanges(oldSchema, newSchema), 2)
	require.Len(t, SafeChanges(oldSchema, newSchema), 1)
}

func TestDiffTypeChangedKind(t *testing.T) {
	oldSchema := build(t, `
		type Query { v: Visibility }
		enum Visibility { PUBLIC }
	`)
	newSchema := build(t, `
		type Query { v: Visibility }
		scalar Visibility
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.Equal(t, []ChangeType{TypeChangedKind}, changeTypes(changes))
	require.Equal(t, "`Visibility` changed from an Enum type to a Scalar type.", changes[0].Description)
}

func TestDiffFieldChanges(t *testing.T) {
	oldSchema := build(t, `
		type Query {
			kept: String
			removed: String
			retyped: String
			tightened: String
		}
	`)
	newSchema := build(t, `
		type Query {
			kept: String
			retyped: Int
			tightened: String!
			added: String
		}
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.ElementsMatch(t, []ChangeType{
		FieldRemoved,
		FieldChangedKind,
		FieldChangedKindSafe,
		FieldAdded,
	}, changeTypes(changes))
}

func TestDiffOutputTypeCompatibility(t *testing.T) {
	named := schema.NamedType("String")
	nonNull := schema.NonNullType(named)
	list := schema.ListType(named)

	require.True(t, safeOutputTypeChange(named, named))
	require.True(t, safeOutputTypeChange(named, nonNull), "adding NonNull is safe in output position")
	require.False(t, safeOutputTypeChange(nonNull, named), "removing NonNull is not")
	require.True(t, safeOutputTypeChange(list, schema.NonNullType(list)))
	require.True(t, safeOutputTypeChange(list, schema.ListType(nonNull)))
	require.False(t, safeOutputTypeChange(list, named))
	require.False(t, safeOutputTypeChange(named, schema.NamedType("Int")))
}

func TestDiffInputTypeCompatibility(t *testing.T) {
	named := schema.NamedType("String")
	nonNull := schema.NonNullType(named)
	list := schema.ListType(named)

	require.True(t, safeInputTypeChange(named, named))
	require.True(t, safeInputTypeChange(nonNull, named), "removing NonNull is safe in input position")
	require.False(t, safeInputTypeChange(named, nonNull), "adding NonNull is not")
	require.True(t, safeInputTypeChange(schema.ListType(nonNull), list))
	require.False(t, safeInputTypeChange(list, named))
}

func TestDiffArguments(t *testing.T) {
	oldSchema := build(t, `
		type Query { search(term: String, limit: Int = 10, removed: Int): String }
	`)
	newSchema := build(t, `
		type Query { search(term: String!, limit: Int = 25, culprit: Boolean!, tag: String): String }
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.ElementsMatch(t, []ChangeType{
		ArgChangedKind,        // term: String -> String!
		ArgDefaultValueChange, // limit: 10 -> 25
		ArgRemoved,            // removed
		RequiredArgAdded,      // culprit: Boolean! with no default
		OptionalArgAdded,      // tag
	}, changeTypes(changes))
}

func TestDiffInputFields(t *testing.T) {
	oldSchema := build(t, `
		type Query { f(in: Filter): String }
		input Filter { name: String, removed: Int }
	`)
	newSchema := build(t, `
		type Query { f(in: Filter): String }
		input Filter { name: String, must: Int!, withDefault: Int! = 3, extra: Int }
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.ElementsMatch(t, []ChangeType{
		FieldRemoved,
		RequiredInputFieldAdded, // must: Int! without default
		OptionalInputFieldAdded, // withDefault has a default
		OptionalInputFieldAdded, // extra is nullable
	}, changeTypes(changes))
}

func TestDiffEnumsAndUnions(t *testing.T) {
	oldSchema := build(t, `
		type Query { s: State, e: Entity }
		enum State { OPEN CLOSED }
		union Entity = A
		type A { id: ID }
		type B { id: ID }
	`)
	newSchema := build(t, `
		type Query { s: State, e: Entity }
		enum State { OPEN MERGED }
		union Entity = A | B
		type A { id: ID }
		type B { id: ID }
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.ElementsMatch(t, []ChangeType{
		ValueRemovedFromEnum,
		ValueAddedToEnum,
		TypeAddedToUnion,
	}, changeTypes(changes))
}

func TestDiffInterfaces(t *testing.T) {
	oldSchema := build(t, `
		type Query { u: User }
		interface Node { id: ID! }
		interface Named { name: String }
		type User implements Node { id: ID!, name: String }
	`)
	newSchema := build(t, `
		type Query { u: User }
		interface Node { id: ID! }
		interface Named { name: String }
		type User implements Named { id: ID!, name: String }
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.ElementsMatch(t, []ChangeType{
		ImplementedInterfaceRemoved,
		ImplementedInterfaceAdded,
	}, changeTypes(changes))
}

func TestDiffDirectives(t *testing.T) {
	oldSchema := build(t, `
		type Query { ok: Boolean }
		directive @cache(ttl: Int) on FIELD_DEFINITION
		directive @gone on OBJECT
	`)
	newSchema := build(t, `
		type Query { ok: Boolean }
		directive @cache(ttl: Int, scope: String!) repeatable on FIELD_DEFINITION | OBJECT
		directive @fresh on OBJECT
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.ElementsMatch(t, []ChangeType{
		DirectiveRemoved,          // @gone
		DirectiveAdded,            // @fresh
		RequiredDirectiveArgAdded, // scope: String!
		DirectiveRepeatableAdded,
		DirectiveLocationAdded, // OBJECT
	}, changeTypes(changes))
}

func TestDiffChangeCriticality(t *testing.T) {
	require.Equal(t, Breaking, FieldRemoved.Criticality())
	require.Equal(t, Dangerous, ValueAddedToEnum.Criticality())
	require.Equal(t, Safe, FieldAdded.Criticality())
	require.Equal(t, "BREAKING", Breaking.String())
}

func TestDiffNestedDescriptionChanges(t *testing.T) {
	oldSchema := build(t, `
		type Query {
			"was"
			f("arg was" a: Int): String
			g: E
		}
		enum E {
			"value was"
			V
		}
		"directive was"
		directive @d("x was" x: Int) on OBJECT
	`)
	newSchema := build(t, `
		type Query {
			"now"
			f("arg now" a: Int): String
			g: E
		}
		enum E {
			"value now"
			V
		}
		"directive now"
		directive @d("x now" x: Int) on OBJECT
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.Len(t, changes, 5, "field, arg, enum value, directive, directive arg")
	descriptions := make([]string, len(changes))
	for i, c := range changes {
		require.Equal(t, DescriptionChanged, c.Type)
		descriptions[i] = c.Description
	}
	require.ElementsMatch(t, []string{
		"Description of `Query.f` changed.",
		"Description of arg `a` on `Query.f` changed.",
		"Description of enum value `E.V` changed.",
		"Description of `@d` changed.",
		"Description of arg `x` on `@d` changed.",
	}, descriptions)
}

func TestDiffDescriptionChanged(t *testing.T) {
	oldSchema := build(t, `
		"Old words."
		type Query { ok: Boolean }
	`)
	newSchema := build(t, `
		"New words."
		type Query { ok: Boolean }
	`)
	changes := SchemaChanges(oldSchema, newSchema)
	require.Equal(t, []ChangeType{DescriptionChanged}, changeTypes(changes))
	require.Equal(t, Safe, changes[0].Criticality())
}
