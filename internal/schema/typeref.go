package schema

// TypeRefKind discriminates a type reference: a named type, or one of the two
// structural wrappers.
type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

// TypeRef is a reference to a type: either a named type, or a List/NonNull
// wrapper around another reference. Wrapper identity is structural; named
// references resolve through the schema registry.
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef `json:",omitempty"` // LIST and NON_NULL
	Named  string   `json:",omitempty"` // NAMED
}

// NamedType returns a reference to the named type.
func NamedType(name string) *TypeRef { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// ListType wraps t in a List.
func ListType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindList, OfType: t} }

// NonNullType wraps t in a NonNull. NonNull never wraps NonNull.
func NonNullType(t *TypeRef) *TypeRef {
	if t.Kind == TypeRefKindNonNull {
		panic("schema: NonNull cannot wrap NonNull")
	}
	return &TypeRef{Kind: TypeRefKindNonNull, OfType: t}
}

// IsNonNull reports whether the outermost wrapper is NonNull.
func (t *TypeRef) IsNonNull() bool { return t != nil && t.Kind == TypeRefKindNonNull }

// IsList reports whether the reference is a list, looking through an
// outermost NonNull.
func (t *TypeRef) IsList() bool {
	if t == nil {
		return false
	}
	if t.Kind == TypeRefKindList {
		return true
	}
	return t.Kind == TypeRefKindNonNull && t.OfType != nil && t.OfType.Kind == TypeRefKindList
}

// Unwrap removes one layer of wrapping, or returns t itself for a named
// reference.
func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// NamedTypeName returns the innermost named type of the reference.
func (t *TypeRef) NamedTypeName() string {
	for t != nil {
		if t.Named != "" {
			return t.Named
		}
		t = t.OfType
	}
	return ""
}

// String renders the reference in SDL notation, e.g. "[Int!]!".
func (t *TypeRef) String() string {
	switch t.Kind {
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	default:
		return t.Named
	}
}

// EqualRefs reports structural equality of two references.
func EqualRefs(a, b *TypeRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind && a.Named == b.Named && EqualRefs(a.OfType, b.OfType)
}
