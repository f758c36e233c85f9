package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	diff "github.com/gqlkit/gqlschema/internal/diff"
	introspection "github.com/gqlkit/gqlschema/internal/introspection"
	language "github.com/gqlkit/gqlschema/internal/language"
	schema "github.com/gqlkit/gqlschema/internal/schema"
)

const rootUsage = `gqlschema — GraphQL schema compiler & tools

USAGE:
  gqlschema <command> [flags]

COMMANDS:
  compile     Merge & validate GraphQL SDL files into a single schema
  diff        Compare two schema versions and classify the changes
  introspect  Convert between SDL and introspection JSON
  help        Show help for any command
`

const compileUsage = `compile FLAGS:
  -out <file>     Write rendered SDL to file (default: stdout)
  -sort           Sort types, fields and values lexicographically
  -assume-valid   Skip structural SDL validation
  (Positional args are SDL files, merged in order; at least one required)
`

const diffUsage = `diff FLAGS:
  -breaking-only    Report only breaking changes
  -dangerous-only   Report only dangerous changes
  -check            Exit non-zero when breaking changes are found
  (Positional args: <old.graphql> <new.graphql>)
`

const introspectUsage = `introspect FLAGS:
  -emit           Emit introspection JSON from an SDL file instead
  -out <file>     Write output to file (default: stdout)
  (Positional arg: the introspection JSON file, or the SDL file with -emit)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gqlschema", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "compile":
		return cmdCompile(cmdArgs)
	case "diff":
		return cmdDiff(cmdArgs)
	case "introspect":
		return cmdIntrospect(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "compile":
		fmt.Print(compileUsage)
	case "diff":
		fmt.Print(diffUsage)
	case "introspect":
		fmt.Print(introspectUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdCompile(args []string) error {
	out := ""
	sorted := false
	assumeValid := false

	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&out, "out", out, "Write rendered SDL to file")
	fs.BoolVar(&sorted, "sort", sorted, "Sort schema members lexicographically")
	fs.BoolVar(&assumeValid, "assume-valid", assumeValid, "Skip structural SDL validation")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, compileUsage)
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprint(os.Stderr, compileUsage)
		return fmt.Errorf("at least one SDL file is required")
	}

	merged := &language.SchemaDocument{}
	for _, file := range files {
		doc, err := parseFile(file)
		if err != nil {
			return err
		}
		language.MergeDocuments(merged, doc)
	}

	s, err := schema.Build(merged, schema.Options{AssumeValidSDL: assumeValid})
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	if sorted {
		s = schema.Sort(s)
	}
	return writeOutput(out, []byte(schema.Render(s)))
}

func cmdDiff(args []string) error {
	breakingOnly := false
	dangerousOnly := false
	check := false

	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.BoolVar(&breakingOnly, "breaking-only", breakingOnly, "Report only breaking changes")
	fs.BoolVar(&dangerousOnly, "dangerous-only", dangerousOnly, "Report only dangerous changes")
	fs.BoolVar(&check, "check", check, "Exit non-zero on breaking changes")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, diffUsage)
		return err
	}
	files := fs.Args()
	if len(files) != 2 {
		fmt.Fprint(os.Stderr, diffUsage)
		return fmt.Errorf("diff needs exactly two SDL files")
	}

	oldSchema, err := buildFile(files[0])
	if err != nil {
		return err
	}
	newSchema, err := buildFile(files[1])
	if err != nil {
		return err
	}

	changes := diff.SchemaChanges(oldSchema, newSchema)
	breaking := 0
	for _, c := range changes {
		crit := c.Criticality()
		if crit == diff.Breaking {
			breaking++
		}
		if breakingOnly && crit != diff.Breaking {
			continue
		}
		if dangerousOnly && crit != diff.Dangerous {
			continue
		}
		fmt.Printf("%s  %s  %s\n", crit, c.Type, c.Description)
	}
	if check && breaking > 0 {
		return fmt.Errorf("%d breaking change(s) found", breaking)
	}
	return nil
}

func cmdIntrospect(args []string) error {
	emit := false
	out := ""

	fs := flag.NewFlagSet("introspect", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.BoolVar(&emit, "emit", emit, "Emit introspection JSON from SDL")
	fs.StringVar(&out, "out", out, "Write output to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, introspectUsage)
		return err
	}
	files := fs.Args()
	if len(files) != 1 {
		fmt.Fprint(os.Stderr, introspectUsage)
		return fmt.Errorf("introspect needs exactly one input file")
	}

	if emit {
		s, err := buildFile(files[0])
		if err != nil {
			return err
		}
		data, err := introspection.MarshalResponse(introspection.Introspect(s))
		if err != nil {
			return err
		}
		return writeOutput(out, append(data, '\n'))
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		return err
	}
	resp, err := introspection.ParseResponse(data)
	if err != nil {
		return err
	}
	s, err := introspection.BuildClientSchema(resp)
	if err != nil {
		return err
	}
	return writeOutput(out, []byte(schema.Render(s)))
}

func parseFile(file string) (*language.SchemaDocument, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	doc, err := language.ParseSchema(file, string(source))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return doc, nil
}

func buildFile(file string) (*schema.Schema, error) {
	doc, err := parseFile(file)
	if err != nil {
		return nil, err
	}
	s, err := schema.Build(doc, schema.Options{})
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", file, err)
	}
	return s, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
