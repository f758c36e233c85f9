package language

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSchema(t *testing.T) {
	doc, err := ParseSchema("test.graphql", `type Query { ok: Boolean }`)
	require.NoError(t, err)
	require.Len(t, doc.Definitions, 1)
	require.Equal(t, "Query", doc.Definitions[0].Name)

	_, err = ParseSchema("bad.graphql", `type {`)
	require.Error(t, err)
}

func TestValidateSDLAllowsBuiltinDirectives(t *testing.T) {
	doc, err := ParseSchema("test.graphql", `
		type Query { old: String @deprecated(reason: "gone") }
	`)
	require.NoError(t, err)
	require.NoError(t, ValidateSDL(doc))
}

func TestValidateSDLLeavesDocumentUntouched(t *testing.T) {
	doc, err := ParseSchema("test.graphql", `
		schema { query: QueryRoot }
		type QueryRoot { ok: Boolean }
	`)
	require.NoError(t, err)
	require.NoError(t, ValidateSDL(doc))

	root := doc.Definitions.ForName("QueryRoot")
	require.Len(t, root.Fields, 1, "validation must not inject fields into the caller's definitions")
	require.Equal(t, "ok", root.Fields[0].Name)
	require.Len(t, doc.Definitions, 1, "validation must not register extra definitions")
}

func TestMergeDocuments(t *testing.T) {
	dst, err := ParseSchema("a.graphql", `type Query { a: String }`)
	require.NoError(t, err)
	src, err := ParseSchema("b.graphql", `extend type Query { b: String }`)
	require.NoError(t, err)

	MergeDocuments(dst, src)
	require.Len(t, dst.Definitions, 1)
	require.Len(t, dst.Extensions, 1)
}
