package diff

import (
	"fmt"
	"sort"

	schema "github.com/gqlkit/gqlschema/internal/schema"
)

// SchemaChanges compares two schema versions and returns every structural
// difference, in deterministic order. Built-in scalars, introspection types
// and built-in directives are outside the comparison.
func SchemaChanges(oldSchema, newSchema *schema.Schema) []Change {
	var changes []Change
	changes = append(changes, findTypeChanges(oldSchema, newSchema)...)
	changes = append(changes, findDirectiveChanges(oldSchema, newSchema)...)
	return changes
}

// BreakingChanges filters SchemaChanges down to the breaking ones.
func BreakingChanges(oldSchema, newSchema *schema.Schema) []Change {
	return filter(SchemaChanges(oldSchema, newSchema), Breaking)
}

// DangerousChanges filters SchemaChanges down to the dangerous ones.
func DangerousChanges(oldSchema, newSchema *schema.Schema) []Change {
	return filter(SchemaChanges(oldSchema, newSchema), Dangerous)
}

// SafeChanges filters SchemaChanges down to the safe ones.
func SafeChanges(oldSchema, newSchema *schema.Schema) []Change {
	return filter(SchemaChanges(oldSchema, newSchema), Safe)
}

func filter(changes []Change, c Criticality) []Change {
	var out []Change
	for _, change := range changes {
		if change.Criticality() == c {
			out = append(out, change)
		}
	}
	return out
}

func findTypeChanges(oldSchema, newSchema *schema.Schema) []Change {
	var changes []Change

	for _, name := range oldSchema.TypeNames() {
		if !comparableType(name) {
			continue
		}
		oldType := oldSchema.Types[name]
		newType := newSchema.Types[name]
		if newType == nil {
			changes = append(changes, Change{
				Type:        TypeRemoved,
				Description: fmt.Sprintf("`%s` was removed.", name),
			})
			continue
		}
		if oldType.Kind != newType.Kind {
			changes = append(changes, Change{
				Type: TypeChangedKind,
				Description: fmt.Sprintf("`%s` changed from %s to %s.",
					name, kindDisplay(oldType.Kind), kindDisplay(newType.Kind)),
			})
			continue
		}
		if oldType.Description != newType.Description {
			changes = append(changes, Change{
				Type:        DescriptionChanged,
				Description: fmt.Sprintf("Description of `%s` changed.", name),
			})
		}
		switch oldType.Kind {
		case schema.TypeKindEnum:
			changes = append(changes, findEnumChanges(oldType, newType)...)
		case schema.TypeKindUnion:
			changes = append(changes, findUnionChanges(oldType, newType)...)
		case schema.TypeKindInputObject:
			changes = append(changes, findInputObjectChanges(oldType, newType)...)
		case schema.TypeKindObject, schema.TypeKindInterface:
			changes = append(changes, findFieldChanges(oldType, newType)...)
			changes = append(changes, findImplementedInterfaceChanges(oldType, newType)...)
		}
	}

	for _, name := range newSchema.TypeNames() {
		if !comparableType(name) {
			continue
		}
		if oldSchema.Types[name] == nil {
			changes = append(changes, Change{
				Type:        TypeAdded,
				Description: fmt.Sprintf("`%s` was added.", name),
			})
		}
	}

	return changes
}

func findEnumChanges(oldType, newType *schema.Type) []Change {
	var changes []Change
	for _, v := range oldType.EnumValues {
		nv := newType.EnumValue(v.Name)
		if nv == nil {
			changes = append(changes, Change{
				Type:        ValueRemovedFromEnum,
				Description: fmt.Sprintf("Enum value `%s` was removed from enum `%s`.", v.Name, oldType.Name),
			})
			continue
		}
		if v.Description != nv.Description {
			changes = append(changes, Change{
				Type:        DescriptionChanged,
				Description: fmt.Sprintf("Description of enum value `%s.%s` changed.", oldType.Name, v.Name),
			})
		}
	}
	for _, v := range newType.EnumValues {
		if oldType.EnumValue(v.Name) == nil {
			changes = append(changes, Change{
				Type:        ValueAddedToEnum,
				Description: fmt.Sprintf("Enum value `%s` was added to enum `%s`.", v.Name, newType.Name),
			})
		}
	}
	return changes
}

func findUnionChanges(oldType, newType *schema.Type) []Change {
	var changes []Change
	for _, m := range oldType.Members {
		if !newType.HasMember(m) {
			changes = append(changes, Change{
				Type:        TypeRemovedFromUnion,
				Description: fmt.Sprintf("`%s` was removed from union type `%s`.", m, oldType.Name),
			})
		}
	}
	for _, m := range newType.Members {
		if !oldType.HasMember(m) {
			changes = append(changes, Change{
				Type:        TypeAddedToUnion,
				Description: fmt.Sprintf("`%s` was added to union type `%s`.", m, newType.Name),
			})
		}
	}
	return changes
}

func findInputObjectChanges(oldType, newType *schema.Type) []Change {
	var changes []Change
	for _, f := range oldType.InputFields {
		nf := newType.InputField(f.Name)
		if nf == nil {
			changes = append(changes, Change{
				Type:        FieldRemoved,
				Description: fmt.Sprintf("`%s.%s` was removed.", oldType.Name, f.Name),
			})
			continue
		}
		if !safeInputTypeChange(f.Type, nf.Type) {
			changes = append(changes, Change{
				Type: FieldChangedKind,
				Description: fmt.Sprintf("`%s.%s` changed type from `%s` to `%s`.",
					oldType.Name, f.Name, f.Type, nf.Type),
			})
		} else if !schema.EqualRefs(f.Type, nf.Type) {
			changes = append(changes, Change{
				Type: FieldChangedKindSafe,
				Description: fmt.Sprintf("`%s.%s` changed type from `%s` to `%s`.",
					oldType.Name, f.Name, f.Type, nf.Type),
			})
		}
		if f.Description != nf.Description {
			changes = append(changes, Change{
				Type:        DescriptionChanged,
				Description: fmt.Sprintf("Description of `%s.%s` changed.", oldType.Name, f.Name),
			})
		}
	}
	for _, f := range newType.InputFields {
		if oldType.InputField(f.Name) != nil {
			continue
		}
		if f.Required() {
			changes = append(changes, Change{
				Type: RequiredInputFieldAdded,
				Description: fmt.Sprintf("A required field `%s` on input type `%s` was added.",
					f.Name, newType.Name),
			})
		} else {
			changes = append(changes, Change{
				Type: OptionalInputFieldAdded,
				Description: fmt.Sprintf("An optional field `%s` on input type `%s` was added.",
					f.Name, newType.Name),
			})
		}
	}
	return changes
}

func findFieldChanges(oldType, newType *schema.Type) []Change {
	var changes []Change
	for _, f := range oldType.Fields {
		nf := newType.Field(f.Name)
		if nf == nil {
			changes = append(changes, Change{
				Type:        FieldRemoved,
				Description: fmt.Sprintf("`%s.%s` was removed.", oldType.Name, f.Name),
			})
			continue
		}
		if !safeOutputTypeChange(f.Type, nf.Type) {
			changes = append(changes, Change{
				Type: FieldChangedKind,
				Description: fmt.Sprintf("`%s.%s` changed type from `%s` to `%s`.",
					oldType.Name, f.Name, f.Type, nf.Type),
			})
		} else if !schema.EqualRefs(f.Type, nf.Type) {
			changes = append(changes, Change{
				Type: FieldChangedKindSafe,
				Description: fmt.Sprintf("`%s.%s` changed type from `%s` to `%s`.",
					oldType.Name, f.Name, f.Type, nf.Type),
			})
		}
		if f.Description != nf.Description {
			changes = append(changes, Change{
				Type:        DescriptionChanged,
				Description: fmt.Sprintf("Description of `%s.%s` changed.", oldType.Name, f.Name),
			})
		}
		changes = append(changes, findArgChanges(oldType.Name, f, nf)...)
	}
	for _, f := range newType.Fields {
		if oldType.Field(f.Name) == nil {
			changes = append(changes, Change{
				Type:        FieldAdded,
				Description: fmt.Sprintf("`%s.%s` was added.", newType.Name, f.Name),
			})
		}
	}
	return changes
}

func findArgChanges(typeName string, oldField, newField *schema.Field) []Change {
	var changes []Change
	for _, a := range oldField.Arguments {
		na := newField.Argument(a.Name)
		if na == nil {
			changes = append(changes, Change{
				Type: ArgRemoved,
				Description: fmt.Sprintf("`%s.%s` arg `%s` was removed.",
					typeName, oldField.Name, a.Name),
			})
			continue
		}
		if !safeInputTypeChange(a.Type, na.Type) {
			changes = append(changes, Change{
				Type: ArgChangedKind,
				Description: fmt.Sprintf("`%s.%s` arg `%s` changed type from `%s` to `%s`.",
					typeName, oldField.Name, a.Name, a.Type, na.Type),
			})
		} else if !schema.EqualRefs(a.Type, na.Type) {
			changes = append(changes, Change{
				Type: ArgChangedKindSafe,
				Description: fmt.Sprintf("`%s.%s` arg `%s` changed type from `%s` to `%s`.",
					typeName, oldField.Name, a.Name, a.Type, na.Type),
			})
		}
		if defaultChanged(a, na) {
			changes = append(changes, Change{
				Type: ArgDefaultValueChange,
				Description: fmt.Sprintf("`%s.%s` arg `%s` has changed defaultValue.",
					typeName, oldField.Name, a.Name),
			})
		}
		if a.Description != na.Description {
			changes = append(changes, Change{
				Type: DescriptionChanged,
				Description: fmt.Sprintf("Description of arg `%s` on `%s.%s` changed.",
					a.Name, typeName, oldField.Name),
			})
		}
	}
	for _, a := range newField.Arguments {
		if oldField.Argument(a.Name) != nil {
			continue
		}
		if a.Required() {
			changes = append(changes, Change{
				Type: RequiredArgAdded,
				Description: fmt.Sprintf("A required arg `%s` on `%s.%s` was added.",
					a.Name, typeName, newField.Name),
			})
		} else {
			changes = append(changes, Change{
				Type: OptionalArgAdded,
				Description: fmt.Sprintf("An optional arg `%s` on `%s.%s` was added.",
					a.Name, typeName, newField.Name),
			})
		}
	}
	return changes
}

func findImplementedInterfaceChanges(oldType, newType *schema.Type) []Change {
	var changes []Change
	for _, i := range oldType.Interfaces {
		if !newType.Implements(i) {
			changes = append(changes, Change{
				Type:        ImplementedInterfaceRemoved,
				Description: fmt.Sprintf("`%s` no longer implements interface `%s`.", oldType.Name, i),
			})
		}
	}
	for _, i := range newType.Interfaces {
		if !oldType.Implements(i) {
			changes = append(changes, Change{
				Type:        ImplementedInterfaceAdded,
				Description: fmt.Sprintf("`%s` implements new interface `%s`.", newType.Name, i),
			})
		}
	}
	return changes
}

func findDirectiveChanges(oldSchema, newSchema *schema.Schema) []Change {
	var changes []Change

	for _, d := range sortedDirectives(oldSchema) {
		nd := newSchema.Directive(d.Name)
		if nd == nil {
			changes = append(changes, Change{
				Type:        DirectiveRemoved,
				Description: fmt.Sprintf("`@%s` was removed.", d.Name),
			})
			continue
		}
		if d.Description != nd.Description {
			changes = append(changes, Change{
				Type:        DescriptionChanged,
				Description: fmt.Sprintf("Description of `@%s` changed.", d.Name),
			})
		}
		changes = append(changes, findDirectiveArgChanges(d, nd)...)
		if d.IsRepeatable && !nd.IsRepeatable {
			changes = append(changes, Change{
				Type:        DirectiveRepeatableRemoved,
				Description: fmt.Sprintf("Repeatable flag was removed from `@%s`.", d.Name),
			})
		} else if !d.IsRepeatable && nd.IsRepeatable {
			changes = append(changes, Change{
				Type:        DirectiveRepeatableAdded,
				Description: fmt.Sprintf("Repeatable flag was added to `@%s`.", d.Name),
			})
		}
		for _, loc := range d.Locations {
			if !hasLocation(nd, loc) {
				changes = append(changes, Change{
					Type:        DirectiveLocationRemoved,
					Description: fmt.Sprintf("%s was removed from `@%s`.", loc, d.Name),
				})
			}
		}
		for _, loc := range nd.Locations {
			if !hasLocation(d, loc) {
				changes = append(changes, Change{
					Type:        DirectiveLocationAdded,
					Description: fmt.Sprintf("%s was added to `@%s`.", loc, d.Name),
				})
			}
		}
	}

	for _, d := range sortedDirectives(newSchema) {
		if oldSchema.Directive(d.Name) == nil {
			changes = append(changes, Change{
				Type:        DirectiveAdded,
				Description: fmt.Sprintf("`@%s` was added.", d.Name),
			})
		}
	}

	return changes
}

func findDirectiveArgChanges(oldDir, newDir *schema.Directive) []Change {
	var changes []Change
	for _, a := range oldDir.Arguments {
		na := newDir.Argument(a.Name)
		if na == nil {
			changes = append(changes, Change{
				Type:        DirectiveArgRemoved,
				Description: fmt.Sprintf("`%s` was removed from `@%s`.", a.Name, oldDir.Name),
			})
			continue
		}
		if a.Description != na.Description {
			changes = append(changes, Change{
				Type:        DescriptionChanged,
				Description: fmt.Sprintf("Description of arg `%s` on `@%s` changed.", a.Name, oldDir.Name),
			})
		}
	}
	for _, a := range newDir.Arguments {
		if oldDir.Argument(a.Name) != nil {
			continue
		}
		if a.Required() {
			changes = append(changes, Change{
				Type: RequiredDirectiveArgAdded,
				Description: fmt.Sprintf("A required arg `%s` on directive `@%s` was added.",
					a.Name, newDir.Name),
			})
		} else {
			changes = append(changes, Change{
				Type: OptionalDirectiveArgAdded,
				Description: fmt.Sprintf("An optional arg `%s` on directive `@%s` was added.",
					a.Name, newDir.Name),
			})
		}
	}
	return changes
}

// safeOutputTypeChange reports whether a field in output position may change
// from oldRef to newRef without breaking existing clients. Tightening the
// guarantee by adding NonNull is safe in output position.
func safeOutputTypeChange(oldRef, newRef *schema.TypeRef) bool {
	switch oldRef.Kind {
	case schema.TypeRefKindList:
		return (newRef.Kind == schema.TypeRefKindList && safeOutputTypeChange(oldRef.OfType, newRef.OfType)) ||
			(newRef.Kind == schema.TypeRefKindNonNull && safeOutputTypeChange(oldRef, newRef.OfType))
	case schema.TypeRefKindNonNull:
		return newRef.Kind == schema.TypeRefKindNonNull && safeOutputTypeChange(oldRef.OfType, newRef.OfType)
	default:
		return (newRef.Kind == schema.TypeRefKindNamed && oldRef.Named == newRef.Named) ||
			(newRef.Kind == schema.TypeRefKindNonNull && safeOutputTypeChange(oldRef, newRef.OfType))
	}
}

// safeInputTypeChange reports whether an argument or input field may change
// from oldRef to newRef without breaking existing clients. The direction is
// the opposite of output position: relaxing an old NonNull is safe, adding
// one is not.
func safeInputTypeChange(oldRef, newRef *schema.TypeRef) bool {
	switch oldRef.Kind {
	case schema.TypeRefKindList:
		return newRef.Kind == schema.TypeRefKindList && safeInputTypeChange(oldRef.OfType, newRef.OfType)
	case schema.TypeRefKindNonNull:
		if newRef.Kind == schema.TypeRefKindNonNull {
			return safeInputTypeChange(oldRef.OfType, newRef.OfType)
		}
		return safeInputTypeChange(oldRef.OfType, newRef)
	default:
		return newRef.Kind == schema.TypeRefKindNamed && oldRef.Named == newRef.Named
	}
}

func defaultChanged(oldArg, newArg *schema.InputValue) bool {
	if (oldArg.Default == nil) != (newArg.Default == nil) {
		return true
	}
	if oldArg.Default == nil {
		return false
	}
	return oldArg.Default.String() != newArg.Default.String()
}

func comparableType(name string) bool {
	return !schema.IsSpecifiedScalarName(name) && !schema.IsIntrospectionName(name)
}

func sortedDirectives(s *schema.Schema) []*schema.Directive {
	var out []*schema.Directive
	for _, d := range s.Directives {
		if !schema.IsBuiltInDirectiveName(d.Name) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func hasLocation(d *schema.Directive, loc string) bool {
	for _, l := range d.Locations {
		if l == loc {
			return true
		}
	}
	return false
}

func kindDisplay(k schema.TypeKind) string {
	switch k {
	case schema.TypeKindScalar:
		return "a Scalar type"
	case schema.TypeKindObject:
		return "an Object type"
	case schema.TypeKindInterface:
		return "an Interface type"
	case schema.TypeKindUnion:
		return "a Union type"
	case schema.TypeKindEnum:
		return "an Enum type"
	case schema.TypeKindInputObject:
		return "an Input type"
	default:
		return string(k)
	}
}
