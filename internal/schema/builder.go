package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/gqlkit/gqlschema/internal/language"
)

// Options controls how much structural validation Build and Extend perform
// beyond the inline duplicate and reference checks.
type Options struct {
	// AssumeValid skips all structural pre-validation of the document.
	AssumeValid bool
	// AssumeValidSDL skips only the SDL-specific structural validation pass.
	AssumeValidSDL bool
}

// Build constructs a schema from a parsed SDL document. References between
// types are resolved by name through the schema registry, so definitions may
// be mutually recursive and appear in any order. The three built-in
// directives are included unless redeclared, and the specified scalar types
// are always present.
func Build(doc *language.SchemaDocument, opts Options) (*Schema, error) {
	if !opts.AssumeValid && !opts.AssumeValidSDL {
		if err := language.ValidateSDL(doc); err != nil {
			return nil, err
		}
	}
	s, err := Extend(emptySchema(), doc, Options{AssumeValid: opts.AssumeValid, AssumeValidSDL: true})
	if err != nil {
		return nil, err
	}

	// A fresh build without an explicit schema block roots operations at the
	// conventionally named types. An explicit block pins all three roots: a
	// type merely named Mutation does not become a root behind its back.
	if len(doc.Schema) == 0 {
		if s.QueryType == "" {
			if _, ok := s.Types["Query"]; ok {
				s.QueryType = "Query"
			}
		}
		if s.MutationType == "" {
			if _, ok := s.Types["Mutation"]; ok {
				s.MutationType = "Mutation"
			}
		}
		if s.SubscriptionType == "" {
			if _, ok := s.Types["Subscription"]; ok {
				s.SubscriptionType = "Subscription"
			}
		}
	}
	return s, nil
}

// BuildSource parses and builds a schema from SDL text.
func BuildSource(name, sdl string, opts Options) (*Schema, error) {
	doc, err := language.ParseSchema(name, sdl)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts)
}

// MustBuildSource is BuildSource for statically known SDL, panicking on error.
func MustBuildSource(name, sdl string) *Schema {
	s, err := BuildSource(name, sdl, Options{})
	if err != nil {
		panic(err)
	}
	return s
}

// buildDefinition constructs a named type from its AST definition.
func buildDefinition(def *language.Definition) *Type {
	switch def.Kind {
	case language.Object:
		return buildCompositeType(def, TypeKindObject)
	case language.Interface:
		return buildCompositeType(def, TypeKindInterface)
	case language.Union:
		return &Type{
			Name:        def.Name,
			Kind:        TypeKindUnion,
			Description: def.Description,
			Members:     append([]string(nil), def.Types...),
			Position:    def.Position,
		}
	case language.Enum:
		t := &Type{
			Name:        def.Name,
			Kind:        TypeKindEnum,
			Description: def.Description,
			Position:    def.Position,
		}
		for _, v := range def.EnumValues {
			t.EnumValues = append(t.EnumValues, buildEnumValue(v))
		}
		return t
	case language.Scalar:
		t := &Type{
			Name:        def.Name,
			Kind:        TypeKindScalar,
			Description: def.Description,
			Position:    def.Position,
		}
		t.SpecifiedByURL = directiveArgValue(def.Directives, "specifiedBy", "url")
		return t
	case language.InputObject:
		t := &Type{
			Name:        def.Name,
			Kind:        TypeKindInputObject,
			Description: def.Description,
			OneOf:       def.Directives.ForName("oneOf") != nil,
			Position:    def.Position,
		}
		for _, f := range def.Fields {
			t.InputFields = append(t.InputFields, buildInputValue(f))
		}
		return t
	default:
		panic(fmt.Sprintf("schema: unexpected definition kind %q", def.Kind))
	}
}

func buildCompositeType(def *language.Definition, kind TypeKind) *Type {
	t := &Type{
		Name:        def.Name,
		Kind:        kind,
		Description: def.Description,
		Interfaces:  append([]string(nil), def.Interfaces...),
		Position:    def.Position,
	}
	for _, f := range def.Fields {
		t.Fields = append(t.Fields, buildField(f))
	}
	return t
}

func buildField(def *language.FieldDefinition) *Field {
	f := &Field{
		Name:        def.Name,
		Description: def.Description,
		Type:        refFromAST(def.Type),
		Position:    def.Position,
	}
	f.IsDeprecated, f.DeprecationReason = deprecationOf(def.Directives)
	for _, a := range def.Arguments {
		f.Arguments = append(f.Arguments, buildArgument(a))
	}
	return f
}

func buildArgument(def *language.ArgumentDefinition) *InputValue {
	v := &InputValue{
		Name:        def.Name,
		Description: def.Description,
		Type:        refFromAST(def.Type),
		Position:    def.Position,
	}
	if def.DefaultValue != nil {
		v.Default = &DefaultValue{Literal: def.DefaultValue}
	}
	v.IsDeprecated, v.DeprecationReason = deprecationOf(def.Directives)
	return v
}

// buildInputValue constructs an input object field from its AST field
// definition.
func buildInputValue(def *language.FieldDefinition) *InputValue {
	v := &InputValue{
		Name:        def.Name,
		Description: def.Description,
		Type:        refFromAST(def.Type),
		Position:    def.Position,
	}
	if def.DefaultValue != nil {
		v.Default = &DefaultValue{Literal: def.DefaultValue}
	}
	v.IsDeprecated, v.DeprecationReason = deprecationOf(def.Directives)
	return v
}

func buildEnumValue(def *language.EnumValueDefinition) *EnumValue {
	v := &EnumValue{
		Name:        def.Name,
		Description: def.Description,
		Value:       def.Name,
	}
	v.IsDeprecated, v.DeprecationReason = deprecationOf(def.Directives)
	return v
}

func buildDirective(def *language.DirectiveDefinition) *Directive {
	d := &Directive{
		Name:         def.Name,
		Description:  def.Description,
		IsRepeatable: def.IsRepeatable,
		Position:     def.Position,
	}
	for _, a := range def.Arguments {
		d.Arguments = append(d.Arguments, buildArgument(a))
	}
	for _, loc := range def.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	return d
}

// refFromAST converts an AST type node into a registry reference.
func refFromAST(t *language.Type) *TypeRef {
	var ref *TypeRef
	if t.NamedType != "" {
		ref = NamedType(t.NamedType)
	} else {
		ref = ListType(refFromAST(t.Elem))
	}
	if t.NonNull {
		ref = NonNullType(ref)
	}
	return ref
}

// deprecationOf reads the @deprecated directive off a definition.
func deprecationOf(directives language.DirectiveList) (bool, string) {
	d := directives.ForName("deprecated")
	if d == nil {
		return false, ""
	}
	if arg := d.Arguments.ForName("reason"); arg != nil {
		return true, arg.Value.Raw
	}
	return true, DefaultDeprecationReason
}

// directiveArgValue returns the raw value of a string argument on a
// directive, or "" when either is absent.
func directiveArgValue(directives language.DirectiveList, directive, arg string) string {
	d := directives.ForName(directive)
	if d == nil {
		return ""
	}
	a := d.Arguments.ForName(arg)
	if a == nil {
		return ""
	}
	return a.Value.Raw
}

// CheckReferences verifies the registry invariant: every type reference
// reachable from a field, argument, interface list, union member list, root
// operation type or directive resolves to a registered type. A dangling name
// is a build-time error.
func CheckReferences(s *Schema) error {
	check := func(name string, pos *language.Position, context string) error {
		if _, ok := s.Types[name]; !ok {
			return gqlerror.ErrorPosf(pos, "Unknown type %q referenced by %s.", name, context)
		}
		return nil
	}
	for _, root := range []struct {
		op   string
		name string
	}{
		{"query", s.QueryType},
		{"mutation", s.MutationType},
		{"subscription", s.SubscriptionType},
	} {
		if root.name == "" {
			continue
		}
		if _, ok := s.Types[root.name]; !ok {
			return gqlerror.Errorf("Unknown type %q referenced as the %s root type.", root.name, root.op)
		}
	}
	for _, name := range s.TypeNames() {
		t := s.Types[name]
		for _, f := range t.Fields {
			if err := check(f.Type.NamedTypeName(), f.Position, fmt.Sprintf("field %q", t.Name+"."+f.Name)); err != nil {
				return err
			}
			for _, a := range f.Arguments {
				if err := check(a.Type.NamedTypeName(), a.Position, fmt.Sprintf("argument %q of field %q", a.Name, t.Name+"."+f.Name)); err != nil {
					return err
				}
			}
		}
		for _, f := range t.InputFields {
			if err := check(f.Type.NamedTypeName(), f.Position, fmt.Sprintf("input field %q", t.Name+"."+f.Name)); err != nil {
				return err
			}
		}
		for _, i := range t.Interfaces {
			if err := check(i, t.Position, fmt.Sprintf("the interfaces of type %q", t.Name)); err != nil {
				return err
			}
		}
		for _, m := range t.Members {
			if err := check(m, t.Position, fmt.Sprintf("union type %q", t.Name)); err != nil {
				return err
			}
		}
	}
	for _, d := range s.Directives {
		for _, a := range d.Arguments {
			if err := check(a.Type.NamedTypeName(), a.Position, fmt.Sprintf("argument %q of directive %q", a.Name, "@"+d.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}
