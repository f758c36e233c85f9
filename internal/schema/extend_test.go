package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func baseSchema(t *testing.T) *Schema {
	t.Helper()
	return MustBuildSource("base.graphql", `
		type Query { user: User }
		type User { id: ID!, name: String }
		enum Role { ADMIN }
		union Entity = User
		input Filter { name: String }
		scalar Moment
	`)
}

func TestExtendNoOpReturnsSameSchema(t *testing.T) {
	s := baseSchema(t)
	out, err := ExtendSource(s, "empty.graphql", ``, Options{})
	require.NoError(t, err)
	require.Same(t, s, out)
}

func TestExtendAddsFields(t *testing.T) {
	s := baseSchema(t)
	out, err := ExtendSource(s, "ext.graphql", `
		extend type User { email: String }
	`, Options{})
	require.NoError(t, err)

	require.NotNil(t, out.Types["User"].Field("email"))
	require.Nil(t, s.Types["User"].Field("email"), "input schema must not be mutated")
	require.Len(t, out.Types["User"].Extensions, 1)
}

func TestExtendSharesUnextendedTypes(t *testing.T) {
	s := baseSchema(t)
	out, err := ExtendSource(s, "ext.graphql", `
		extend type User { email: String }
	`, Options{})
	require.NoError(t, err)
	require.Same(t, s.Types["Role"], out.Types["Role"])
	require.NotSame(t, s.Types["User"], out.Types["User"])
}

func TestExtendNewTypeWithExtensionInSameDocument(t *testing.T) {
	s := baseSchema(t)
	out, err := ExtendSource(s, "ext.graphql", `
		type Team { id: ID! }
		extend type Team { name: String }
	`, Options{})
	require.NoError(t, err)
	team := out.Types["Team"]
	require.NotNil(t, team.Field("id"))
	require.NotNil(t, team.Field("name"))
}

func TestExtendUnionEnumInputScalar(t *testing.T) {
	s := baseSchema(t)
	out, err := ExtendSource(s, "ext.graphql", `
		type Post { id: ID! }
		extend union Entity = Post
		extend enum Role { VIEWER }
		extend input Filter { limit: Int }
		extend scalar Moment @specifiedBy(url: "https://scalars.example/moment")
	`, Options{})
	require.NoError(t, err)

	require.True(t, out.Types["Entity"].HasMember("Post"))
	require.NotNil(t, out.Types["Role"].EnumValue("VIEWER"))
	require.NotNil(t, out.Types["Filter"].InputField("limit"))
	require.Equal(t, "https://scalars.example/moment", out.Types["Moment"].SpecifiedByURL)
}

func TestExtendDuplicateFieldFails(t *testing.T) {
	s := baseSchema(t)
	_, err := ExtendSource(s, "ext.graphql", `
		extend type User { name: String }
	`, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), `Field "User.name" already exists`)
}

func TestExtendDuplicateTypeFails(t *testing.T) {
	s := baseSchema(t)
	_, err := ExtendSource(s, "ext.graphql", `
		type User { id: ID! }
	`, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), `Type "User" already exists`)
}

func TestExtendKindMismatchFails(t *testing.T) {
	s := baseSchema(t)
	_, err := ExtendSource(s, "ext.graphql", `
		extend interface User { email: String }
	`, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), `Cannot extend non-interface type "User"`)
}

func TestExtendUnknownTargetFails(t *testing.T) {
	s := baseSchema(t)
	_, err := ExtendSource(s, "ext.graphql", `
		extend type Ghost { id: ID }
	`, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), `Cannot extend type "Ghost" because it is not defined`)
}

func TestExtendBuiltinTargetFails(t *testing.T) {
	s := baseSchema(t)
	_, err := ExtendSource(s, "ext.graphql", `
		extend scalar String @specifiedBy(url: "https://example.com")
	`, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), `Cannot extend built-in type "String"`)
}

func TestExtendSchemaRoots(t *testing.T) {
	s := baseSchema(t)
	out, err := ExtendSource(s, "ext.graphql", `
		extend schema { mutation: Mutation }
		type Mutation { rename(id: ID!, name: String!): User }
	`, Options{})
	require.NoError(t, err)
	require.Equal(t, "Mutation", out.MutationType)
	require.Equal(t, "Query", out.QueryType, "existing roots carry over")
}

func TestExtendDuplicateRootFails(t *testing.T) {
	s := baseSchema(t)
	_, err := ExtendSource(s, "ext.graphql", `
		extend schema { query: User }
		extend schema { query: User }
	`, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Type for query already defined")
}

func TestExtendNewDirective(t *testing.T) {
	s := baseSchema(t)
	out, err := ExtendSource(s, "ext.graphql", `
		directive @cache(ttl: Int = 60) on FIELD_DEFINITION
	`, Options{})
	require.NoError(t, err)
	d := out.Directive("cache")
	require.NotNil(t, d)
	require.Equal(t, "60", d.Argument("ttl").Default.String())
}

func TestExtendRedeclareBuiltinDirective(t *testing.T) {
	s := baseSchema(t)
	out, err := ExtendSource(s, "ext.graphql", `
		directive @deprecated(reason: String, sunset: String) on FIELD_DEFINITION
	`, Options{})
	require.NoError(t, err)
	require.NotNil(t, out.Directive("deprecated").Argument("sunset"))
	require.Nil(t, s.Directive("deprecated").Argument("sunset"))
}

func TestExtendDuplicateDirectiveFails(t *testing.T) {
	s := baseSchema(t)
	withCache, err := ExtendSource(s, "a.graphql", `
		directive @cache on FIELD_DEFINITION
	`, Options{})
	require.NoError(t, err)

	_, err = ExtendSource(withCache, "b.graphql", `
		directive @cache on OBJECT
	`, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), `Directive "cache" already exists`)
}

func TestExtendDanglingReferenceFails(t *testing.T) {
	s := baseSchema(t)
	_, err := ExtendSource(s, "ext.graphql", `
		extend type User { team: Team }
	`, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), `Unknown type "Team"`)
}
