package schema

import (
	"sort"
	"sync"

	language "github.com/gqlkit/gqlschema/internal/language"
)

// Schema is the root aggregate of a resolved type graph: every reachable named
// type keyed by name, the root operation types, and the directive list.
// Schemas are immutable once built; Extend and Sort always produce a new one.
type Schema struct {
	Description      string
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // all named types keyed by name
	Directives       []*Directive     // ordered, built-ins first
}

// GetQueryType returns the root query type (may be nil if absent).
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent).
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent).
func (s *Schema) GetSubscriptionType() *Type { return s.Types[s.SubscriptionType] }

// Directive returns the directive with the given name, or nil.
func (s *Schema) Directive(name string) *Directive {
	for _, d := range s.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// TypeNames returns all registered type names in lexicographic order. Diffing
// and rendering iterate through this for deterministic output.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeKind discriminates the six named type variants.
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// Type is a named GraphQL type. Type-to-type edges are name references
// resolved through Schema.Types, so mutually recursive definitions need no
// construction ordering; CheckReferences rejects dangling names at build time.
type Type struct {
	Name        string
	Kind        TypeKind
	Description string

	Fields      []*Field      // OBJECT, INTERFACE
	Interfaces  []string      // OBJECT, INTERFACE: implemented interface names
	Members     []string      // UNION: member object type names
	EnumValues  []*EnumValue  // ENUM
	InputFields []*InputValue // INPUT_OBJECT

	SpecifiedByURL string // SCALAR
	OneOf          bool   // INPUT_OBJECT: exactly one non-null field allowed

	// ParseValue and ParseLiteral plug in custom scalar behavior. When nil the
	// specified scalar rules (or pass-through for custom scalars) apply. Set
	// them before the schema is first used for coercion.
	ParseValue   func(value any) (any, error)              `json:"-"`
	ParseLiteral func(value *language.Value) (any, error) `json:"-"`

	// Extensions records the extension definitions merged into this type, in
	// merge order.
	Extensions []*language.Definition `json:"-"`
	Position   *language.Position     `json:"-"`
}

// Field returns the field with the given name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// InputField returns the input field with the given name, or nil.
func (t *Type) InputField(name string) *InputValue {
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EnumValue returns the enum value with the given name, or nil.
func (t *Type) EnumValue(name string) *EnumValue {
	for _, v := range t.EnumValues {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// HasMember reports whether name is a member of this union type.
func (t *Type) HasMember(name string) bool {
	for _, m := range t.Members {
		if m == name {
			return true
		}
	}
	return false
}

// Implements reports whether the type lists name among its interfaces.
func (t *Type) Implements(name string) bool {
	for _, i := range t.Interfaces {
		if i == name {
			return true
		}
	}
	return false
}

// Field is a field on an object or interface type.
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue
	IsDeprecated      bool
	DeprecationReason string
	Position          *language.Position `json:"-"`
}

// Argument returns the argument with the given name, or nil.
func (f *Field) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// InputValue is an argument definition or an input object field.
type InputValue struct {
	Name              string
	Description       string
	Type              *TypeRef
	Default           *DefaultValue // nil when no default is declared
	IsDeprecated      bool
	DeprecationReason string
	Position          *language.Position `json:"-"`
}

// Required reports whether a value must be provided: non-null type and no
// declared default.
func (v *InputValue) Required() bool {
	return v.Type.IsNonNull() && v.Default == nil
}

// EnumValue is a single value of an enum type. Value carries the opaque
// internal representation; it defaults to the value's name.
type EnumValue struct {
	Name              string
	Description       string
	Value             any `json:"-"`
	IsDeprecated      bool
	DeprecationReason string
}

// Directive is a directive definition attached to a schema.
type Directive struct {
	Name         string
	Description  string
	Locations    []string
	Arguments    []*InputValue
	IsRepeatable bool
	Position     *language.Position `json:"-"`
}

// Argument returns the argument with the given name, or nil.
func (d *Directive) Argument(name string) *InputValue {
	for _, a := range d.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// DefaultValue is a declared default for an argument or input field: either a
// literal AST fragment, its SDL text (when rebuilt from an introspection
// response), or an already-coerced internal value. The coerced form is
// memoized on first use; the cell is single-assignment and safe under
// concurrent first access.
type DefaultValue struct {
	Literal  *language.Value `json:"-"`
	Raw      string          // SDL text of the literal, introspection-sourced
	Value    any             `json:"-"` // pre-coerced internal value
	HasValue bool            `json:"-"`

	once   sync.Once
	cached any
	ok     bool
}

// Coerced returns the memoized coerced form of the default, computing it with
// compute on first access. Every later call returns the first result,
// regardless of the compute function passed.
func (d *DefaultValue) Coerced(compute func() (any, bool)) (any, bool) {
	d.once.Do(func() {
		if d.HasValue {
			d.cached, d.ok = d.Value, true
			return
		}
		d.cached, d.ok = compute()
	})
	return d.cached, d.ok
}

// String returns the SDL text of the default value.
func (d *DefaultValue) String() string {
	if d.Literal != nil {
		return d.Literal.String()
	}
	return d.Raw
}
