package language

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// ParseSchema parses an SDL document. The name is used in error locations.
func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ValidateSDL runs the parser library's structural SDL validation over the
// document. The built-in prelude is joined in first so SDL may reference the
// specified scalars and built-in directives without declaring them; prelude
// definitions the document redeclares are dropped in its favor.
//
// The validator injects the __schema and __type introspection fields into the
// query root definition it is given, so it only ever sees cloned definitions:
// the caller's document comes back untouched.
func ValidateSDL(doc *SchemaDocument) error {
	prelude, err := parser.ParseSchema(validator.Prelude)
	if err != nil {
		return err
	}
	combined := &SchemaDocument{
		Schema:          append(SchemaDefinitionList(nil), doc.Schema...),
		SchemaExtension: append(SchemaDefinitionList(nil), doc.SchemaExtension...),
		Directives:      append(DirectiveDefinitionList(nil), doc.Directives...),
	}
	for _, def := range prelude.Definitions {
		if doc.Definitions.ForName(def.Name) == nil {
			combined.Definitions = append(combined.Definitions, def)
		}
	}
	for _, dd := range prelude.Directives {
		if doc.Directives.ForName(dd.Name) == nil {
			combined.Directives = append(combined.Directives, dd)
		}
	}
	for _, def := range doc.Definitions {
		combined.Definitions = append(combined.Definitions, cloneDefinition(def))
	}
	for _, def := range doc.Extensions {
		combined.Extensions = append(combined.Extensions, cloneDefinition(def))
	}
	if _, err := validator.ValidateSchemaDocument(combined); err != nil {
		return err
	}
	return nil
}

// cloneDefinition copies a definition one level deep: enough that appending
// fields to the clone can never write into the original's backing array.
func cloneDefinition(def *Definition) *Definition {
	out := *def
	out.Fields = append(FieldList(nil), def.Fields...)
	return &out
}

// MergeDocuments appends the definitions of src to dst. Used when compiling a
// schema from multiple SDL files.
func MergeDocuments(dst, src *SchemaDocument) {
	dst.Schema = append(dst.Schema, src.Schema...)
	dst.SchemaExtension = append(dst.SchemaExtension, src.SchemaExtension...)
	dst.Directives = append(dst.Directives, src.Directives...)
	dst.Definitions = append(dst.Definitions, src.Definitions...)
	dst.Extensions = append(dst.Extensions, src.Extensions...)
}
