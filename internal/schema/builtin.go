package schema

import "strings"

// The five specified scalar types are process-wide singletons shared by every
// schema. They are consulted read-only and are never extension or
// redefinition targets.
var stringType = &Type{
	Name:        "String",
	Kind:        TypeKindScalar,
	Description: "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
}

var intType = &Type{
	Name:        "Int",
	Kind:        TypeKindScalar,
	Description: "The `Int` scalar type represents non-fractional signed whole numeric values.",
}

var floatType = &Type{
	Name:        "Float",
	Kind:        TypeKindScalar,
	Description: "The `Float` scalar type represents signed double-precision fractional values.",
}

var booleanType = &Type{
	Name:        "Boolean",
	Kind:        TypeKindScalar,
	Description: "The `Boolean` scalar type represents `true` or `false`.",
}

var idType = &Type{
	Name:        "ID",
	Kind:        TypeKindScalar,
	Description: "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
}

var specifiedScalarTypes = map[string]*Type{
	"String":  stringType,
	"Int":     intType,
	"Float":   floatType,
	"Boolean": booleanType,
	"ID":      idType,
}

// IsSpecifiedScalarName reports whether name is one of the five built-in
// scalar types.
func IsSpecifiedScalarName(name string) bool {
	_, ok := specifiedScalarTypes[name]
	return ok
}

// SpecifiedScalarType returns the shared singleton for a built-in scalar
// name, or nil.
func SpecifiedScalarType(name string) *Type {
	return specifiedScalarTypes[name]
}

// IsIntrospectionName reports whether name belongs to the introspection meta
// type namespace.
func IsIntrospectionName(name string) bool {
	return strings.HasPrefix(name, "__")
}

var includeDirective = &Directive{
	Name:        "include",
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Arguments: []*InputValue{
		{
			Name:        "if",
			Description: "Included when true.",
			Type:        NonNullType(NamedType("Boolean")),
		},
	},
	Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
}

var skipDirective = &Directive{
	Name:        "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Arguments: []*InputValue{
		{
			Name:        "if",
			Description: "Skipped when true.",
			Type:        NonNullType(NamedType("Boolean")),
		},
	},
	Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
}

// DefaultDeprecationReason is used when @deprecated carries no reason.
const DefaultDeprecationReason = "No longer supported"

var deprecatedDirective = &Directive{
	Name:        "deprecated",
	Description: "Marks an element of a GraphQL schema as no longer supported.",
	Arguments: []*InputValue{
		{
			Name:        "reason",
			Description: "Explains why this element was deprecated, usually also including a suggestion for how to access supported similar data. Formatted using the Markdown syntax, as specified by [CommonMark](https://commonmark.org/).",
			Type:        NamedType("String"),
			Default:     &DefaultValue{Value: DefaultDeprecationReason, HasValue: true, Raw: `"No longer supported"`},
		},
	},
	Locations: []string{"FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INPUT_FIELD_DEFINITION", "ENUM_VALUE"},
}

var builtinDirectives = []*Directive{includeDirective, skipDirective, deprecatedDirective}

// BuiltInDirectives returns the three directives every schema carries
// implicitly. The result is a fresh slice over the shared singletons.
func BuiltInDirectives() []*Directive {
	return append([]*Directive(nil), builtinDirectives...)
}

// IsBuiltInDirectiveName reports whether name is one of the three directives
// every schema carries implicitly.
func IsBuiltInDirectiveName(name string) bool {
	switch name {
	case "include", "skip", "deprecated":
		return true
	}
	return false
}

// emptySchema returns a fresh schema holding only the built-in scalar types
// and directives. Every build starts from one.
func emptySchema() *Schema {
	types := make(map[string]*Type, len(specifiedScalarTypes))
	for name, t := range specifiedScalarTypes {
		types[name] = t
	}
	return &Schema{
		Types:      types,
		Directives: append([]*Directive(nil), builtinDirectives...),
	}
}
