package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, fn func() error) (stdout string, err error) {
	t.Helper()
	oldOut := os.Stdout
	defer func() { os.Stdout = oldOut }()

	r, w, pipeErr := os.Pipe()
	require.NoError(t, pipeErr)
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() { io.Copy(&buf, r); close(done) }()

	err = fn()
	w.Close()
	<-done
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunMissingCommand(t *testing.T) {
	err := run(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing command")
}

func TestHelp(t *testing.T) {
	out, err := captureOutput(t, func() error {
		return run([]string{"help", "diff"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "diff FLAGS:")
}

func TestCompileMergesFiles(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.graphql", `
		type Query { user: User }
		type User { id: ID! }
	`)
	ext := writeFile(t, dir, "ext.graphql", `
		extend type User { name: String }
	`)

	out, err := captureOutput(t, func() error {
		return run([]string{"compile", base, ext})
	})
	require.NoError(t, err)
	require.Contains(t, out, "name: String")
}

func TestCompileInvalidSDL(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bad.graphql", `type Query { thing: Missing }`)

	_, err := captureOutput(t, func() error {
		return run([]string{"compile", file})
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Missing")
}

func TestCompileOutFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "s.graphql", `type Query { ok: Boolean }`)
	outPath := filepath.Join(dir, "out.graphql")

	require.NoError(t, run([]string{"compile", "-out", outPath, file}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "type Query")
}

func TestDiffReportsChanges(t *testing.T) {
	dir := t.TempDir()
	oldFile := writeFile(t, dir, "old.graphql", `type Query { a: String, b: String }`)
	newFile := writeFile(t, dir, "new.graphql", `type Query { a: String }`)

	out, err := captureOutput(t, func() error {
		return run([]string{"diff", oldFile, newFile})
	})
	require.NoError(t, err)
	require.Contains(t, out, "BREAKING")
	require.Contains(t, out, "FIELD_REMOVED")
}

func TestDiffCheckFailsOnBreaking(t *testing.T) {
	dir := t.TempDir()
	oldFile := writeFile(t, dir, "old.graphql", `type Query { a: String }`)
	newFile := writeFile(t, dir, "new.graphql", `type Query { b: String }`)

	_, err := captureOutput(t, func() error {
		return run([]string{"diff", "-check", oldFile, newFile})
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "breaking change")
}

func TestIntrospectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sdl := writeFile(t, dir, "s.graphql", `
		type Query { user(id: ID!): User }
		type User { id: ID!, name: String }
	`)
	jsonPath := filepath.Join(dir, "introspection.json")

	require.NoError(t, run([]string{"introspect", "-emit", "-out", jsonPath, sdl}))

	out, err := captureOutput(t, func() error {
		return run([]string{"introspect", jsonPath})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type User {")
	require.Contains(t, out, "user(id: ID!): User")
}
