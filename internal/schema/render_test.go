package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRenderCanonicalSDL(t *testing.T) {
	s := MustBuildSource("test.graphql", `
		"A blog."
		schema { query: QueryRoot }

		type QueryRoot {
			"Fetch one post."
			post(id: ID!, draft: Boolean = false): Post
			feed: [Post!]!
		}

		type Post implements Node {
			id: ID!
			title: String @deprecated(reason: "Use headline.")
		}

		interface Node { id: ID! }
		union Entity = Post
		enum Visibility { PUBLIC PRIVATE }
		input PostFilter @oneOf {
			byId: ID
			byTitle: String
		}
		scalar Moment @specifiedBy(url: "https://scalars.example/moment")
	`)

	expected := strings.TrimLeft(`
"""A blog."""
schema {
  query: QueryRoot
}

union Entity = Post

scalar Moment @specifiedBy(url: "https://scalars.example/moment")

interface Node {
  id: ID!
}

type Post implements Node {
  id: ID!
  title: String @deprecated(reason: "Use headline.")
}

input PostFilter @oneOf {
  byId: ID
  byTitle: String
}

type QueryRoot {
  """Fetch one post."""
  post(id: ID!, draft: Boolean = false): Post
  feed: [Post!]!
}

enum Visibility {
  PUBLIC
  PRIVATE
}
`, "\n")

	if diff := cmp.Diff(expected, Render(s)); diff != "" {
		t.Errorf("rendered SDL mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOmitsSchemaBlockForConventionalRoots(t *testing.T) {
	s := MustBuildSource("test.graphql", `type Query { ok: Boolean }`)
	sdl := Render(s)
	require.NotContains(t, sdl, "schema {")
	require.Contains(t, sdl, "type Query {")
}

func TestRenderOmitsDefaultDeprecationReason(t *testing.T) {
	s := MustBuildSource("test.graphql", `
		type Query { old: String @deprecated }
	`)
	sdl := Render(s)
	require.Contains(t, sdl, "old: String @deprecated\n")
	require.NotContains(t, sdl, "No longer supported")
}

func TestRenderRoundTrips(t *testing.T) {
	s := MustBuildSource("test.graphql", `
		type Query { items(first: Int = 10): [Item!] }
		type Item { id: ID!, tags: [String] }
	`)
	rebuilt := MustBuildSource("rendered.graphql", Render(s))
	require.Equal(t, Render(s), Render(rebuilt))
}

func TestSortOrdersMembers(t *testing.T) {
	s := MustBuildSource("test.graphql", `
		type Query { b: String, a(z: Int, y: Int): String }
		enum E { C A B }
		union U = Zed | Ann
		type Zed { id: ID }
		type Ann { id: ID }
	`)
	sorted := Sort(s)

	q := sorted.GetQueryType()
	require.Equal(t, "a", q.Fields[0].Name)
	require.Equal(t, "y", q.Fields[0].Arguments[0].Name)
	require.Equal(t, []string{"Ann", "Zed"}, sorted.Types["U"].Members)
	require.Equal(t, "A", sorted.Types["E"].EnumValues[0].Name)

	// The original keeps declaration order.
	require.Equal(t, "b", s.GetQueryType().Fields[0].Name)
	require.Equal(t, []string{"Zed", "Ann"}, s.Types["U"].Members)
}
