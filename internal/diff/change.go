// Package diff compares two schema versions and classifies every structural
// difference as breaking, dangerous, or safe.
package diff

// Criticality is the three-tier classification of a schema change.
type Criticality int

const (
	Breaking Criticality = iota
	Dangerous
	Safe
)

func (c Criticality) String() string {
	switch c {
	case Breaking:
		return "BREAKING"
	case Dangerous:
		return "DANGEROUS"
	case Safe:
		return "SAFE"
	default:
		panic("diff: unknown criticality")
	}
}

// ChangeType is the closed enumeration of structural change kinds.
type ChangeType string

// Breaking changes.
const (
	TypeRemoved                 ChangeType = "TYPE_REMOVED"
	TypeChangedKind             ChangeType = "TYPE_CHANGED_KIND"
	TypeRemovedFromUnion        ChangeType = "TYPE_REMOVED_FROM_UNION"
	ValueRemovedFromEnum        ChangeType = "VALUE_REMOVED_FROM_ENUM"
	RequiredInputFieldAdded     ChangeType = "REQUIRED_INPUT_FIELD_ADDED"
	ImplementedInterfaceRemoved ChangeType = "IMPLEMENTED_INTERFACE_REMOVED"
	FieldRemoved                ChangeType = "FIELD_REMOVED"
	FieldChangedKind            ChangeType = "FIELD_CHANGED_KIND"
	RequiredArgAdded            ChangeType = "REQUIRED_ARG_ADDED"
	ArgRemoved                  ChangeType = "ARG_REMOVED"
	ArgChangedKind              ChangeType = "ARG_CHANGED_KIND"
	DirectiveRemoved            ChangeType = "DIRECTIVE_REMOVED"
	DirectiveArgRemoved         ChangeType = "DIRECTIVE_ARG_REMOVED"
	RequiredDirectiveArgAdded   ChangeType = "REQUIRED_DIRECTIVE_ARG_ADDED"
	DirectiveRepeatableRemoved  ChangeType = "DIRECTIVE_REPEATABLE_REMOVED"
	DirectiveLocationRemoved    ChangeType = "DIRECTIVE_LOCATION_REMOVED"
)

// Dangerous changes.
const (
	ValueAddedToEnum          ChangeType = "VALUE_ADDED_TO_ENUM"
	TypeAddedToUnion          ChangeType = "TYPE_ADDED_TO_UNION"
	OptionalInputFieldAdded   ChangeType = "OPTIONAL_INPUT_FIELD_ADDED"
	OptionalArgAdded          ChangeType = "OPTIONAL_ARG_ADDED"
	ImplementedInterfaceAdded ChangeType = "IMPLEMENTED_INTERFACE_ADDED"
	ArgDefaultValueChange     ChangeType = "ARG_DEFAULT_VALUE_CHANGE"
)

// Safe changes.
const (
	TypeAdded                 ChangeType = "TYPE_ADDED"
	FieldAdded                ChangeType = "FIELD_ADDED"
	DirectiveAdded            ChangeType = "DIRECTIVE_ADDED"
	OptionalDirectiveArgAdded ChangeType = "OPTIONAL_DIRECTIVE_ARG_ADDED"
	DirectiveRepeatableAdded  ChangeType = "DIRECTIVE_REPEATABLE_ADDED"
	DirectiveLocationAdded    ChangeType = "DIRECTIVE_LOCATION_ADDED"
	FieldChangedKindSafe      ChangeType = "FIELD_CHANGED_KIND_SAFE"
	ArgChangedKindSafe        ChangeType = "ARG_CHANGED_KIND_SAFE"
	DescriptionChanged        ChangeType = "DESCRIPTION_CHANGED"
)

var criticalityOf = map[ChangeType]Criticality{
	TypeRemoved:                 Breaking,
	TypeChangedKind:             Breaking,
	TypeRemovedFromUnion:        Breaking,
	ValueRemovedFromEnum:        Breaking,
	RequiredInputFieldAdded:     Breaking,
	ImplementedInterfaceRemoved: Breaking,
	FieldRemoved:                Breaking,
	FieldChangedKind:            Breaking,
	RequiredArgAdded:            Breaking,
	ArgRemoved:                  Breaking,
	ArgChangedKind:              Breaking,
	DirectiveRemoved:            Breaking,
	DirectiveArgRemoved:         Breaking,
	RequiredDirectiveArgAdded:   Breaking,
	DirectiveRepeatableRemoved:  Breaking,
	DirectiveLocationRemoved:    Breaking,

	ValueAddedToEnum:          Dangerous,
	TypeAddedToUnion:          Dangerous,
	OptionalInputFieldAdded:   Dangerous,
	OptionalArgAdded:          Dangerous,
	ImplementedInterfaceAdded: Dangerous,
	ArgDefaultValueChange:     Dangerous,

	TypeAdded:                 Safe,
	FieldAdded:                Safe,
	DirectiveAdded:            Safe,
	OptionalDirectiveArgAdded: Safe,
	DirectiveRepeatableAdded:  Safe,
	DirectiveLocationAdded:    Safe,
	FieldChangedKindSafe:      Safe,
	ArgChangedKindSafe:        Safe,
	DescriptionChanged:        Safe,
}

// Criticality returns the classification bucket of the change type.
func (t ChangeType) Criticality() Criticality {
	c, ok := criticalityOf[t]
	if !ok {
		panic("diff: unknown change type " + string(t))
	}
	return c
}

// Change is one structural difference between two schema versions.
type Change struct {
	Type        ChangeType
	Description string
}

// Criticality returns the classification bucket of the change.
func (c Change) Criticality() Criticality { return c.Type.Criticality() }
