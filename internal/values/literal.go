package values

import (
	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/gqlkit/gqlschema/internal/language"
	schema "github.com/gqlkit/gqlschema/internal/schema"
)

// Variables holds coerced variable values, distinguishing a variable that was
// provided (possibly as an explicit null) from one that is absent entirely.
type Variables struct {
	values  map[string]any
	defined map[string]bool
}

// NewVariables returns an empty variable set.
func NewVariables() *Variables {
	return &Variables{values: map[string]any{}, defined: map[string]bool{}}
}

// Set records a coerced value for a variable.
func (v *Variables) Set(name string, value any) {
	v.values[name] = value
	v.defined[name] = true
}

// Lookup returns the value of a variable and whether it was provided at all.
func (v *Variables) Lookup(name string) (any, bool) {
	if v == nil || !v.defined[name] {
		return nil, false
	}
	return v.values[name], true
}

// Has reports whether the variable belongs to this set. Fragment-scoped
// variable sources answer true for their own definitions even when no value
// was supplied, shadowing the operation's variable of the same name.
func (v *Variables) Has(name string) bool {
	return v != nil && v.defined[name]
}

// CoerceVariableValues coerces the raw input map against an operation's
// variable definitions, producing the variable set the literal pipeline
// consumes. The first violation aborts with a descriptive error.
func CoerceVariableValues(s *schema.Schema, defs language.VariableDefinitionList, input map[string]any) (*Variables, error) {
	coerced := NewVariables()
	for _, def := range defs {
		t := refFromAST(def.Type)
		value, provided := input[def.Variable]
		if !provided {
			if def.DefaultValue != nil {
				dv, ok := coerceLiteral(s, def.DefaultValue, t, nil, nil, nil, nil)
				if !ok {
					return nil, gqlerror.ErrorPosf(def.Position,
						"Variable $%s has an invalid default value.", def.Variable)
				}
				coerced.Set(def.Variable, dv)
			} else if t.IsNonNull() {
				return nil, gqlerror.ErrorPosf(def.Position,
					"Variable $%s of required type %q was not provided.", def.Variable, t.String())
			}
			continue
		}
		if value == nil && t.IsNonNull() {
			return nil, gqlerror.ErrorPosf(def.Position,
				"Variable $%s of non-null type %q must not be null.", def.Variable, t.String())
		}
		var coerceErr *gqlerror.Error
		cv, ok := coerceValue(s, value, t, nil, func(path language.Path, invalid any, err *gqlerror.Error) {
			if coerceErr == nil {
				coerceErr = err
			}
		})
		if !ok {
			msg := "invalid value"
			if coerceErr != nil {
				msg = coerceErr.Message
			}
			return nil, gqlerror.ErrorPosf(def.Position,
				"Variable $%s got invalid value: %s", def.Variable, msg)
		}
		coerced.Set(def.Variable, cv)
	}
	return coerced, nil
}

// CoerceInputLiteral coerces a literal AST value node against a declared
// input type, substituting variables from vars. fragVars, when non-nil, is a
// fragment-scoped variable source consulted before vars for the variables it
// defines. ok is false when the literal does not conform or a required
// variable is missing.
func CoerceInputLiteral(s *schema.Schema, v *language.Value, t *schema.TypeRef, vars, fragVars *Variables) (any, bool) {
	return coerceLiteral(s, v, t, vars, fragVars, nil, nil)
}

func coerceLiteral(s *schema.Schema, v *language.Value, t *schema.TypeRef, vars, fragVars *Variables, path language.Path, onError CoerceErrorFn) (any, bool) {
	if v == nil {
		return nil, false
	}

	if v.Kind == language.Variable {
		value, provided := lookupVariable(v.Raw, vars, fragVars)
		if !provided {
			if t.IsNonNull() {
				report(onError, path, v, "Variable $%s of required type %q was not provided.", v.Raw, t.String())
				return nil, false
			}
			// List items and object fields intercept missing variables before
			// recursing here; anywhere else a missing nullable variable
			// substitutes null.
			return nil, true
		}
		if value == nil && t.IsNonNull() {
			report(onError, path, v, "Variable $%s must not be null for non-null type %q.", v.Raw, t.String())
			return nil, false
		}
		// Variable values are coerced up front.
		return value, true
	}

	if t.Kind == schema.TypeRefKindNonNull {
		if v.Kind == language.NullValue {
			report(onError, path, v, "Expected non-nullable type %q not to be null.", t.String())
			return nil, false
		}
		return coerceLiteral(s, v, t.OfType, vars, fragVars, path, onError)
	}

	if v.Kind == language.NullValue {
		return nil, true
	}

	if t.Kind == schema.TypeRefKindList {
		if v.Kind != language.ListValue {
			// A non-list literal coerces as a list of one.
			item, ok := coerceLiteral(s, v, t.OfType, vars, fragVars, path, onError)
			if !ok {
				return nil, false
			}
			return []any{item}, true
		}
		coerced := make([]any, 0, len(v.Children))
		valid := true
		for i, child := range v.Children {
			itemPath := appendPath(path, language.PathIndex(i))
			if missingVariable(child.Value, vars, fragVars) {
				// A missing variable inside a list item becomes null when the
				// item type tolerates it.
				if t.OfType.IsNonNull() {
					report(onError, itemPath, child.Value,
						"Variable $%s of required item type %q was not provided.", child.Value.Raw, t.OfType.String())
					valid = false
					continue
				}
				coerced = append(coerced, nil)
				continue
			}
			item, ok := coerceLiteral(s, child.Value, t.OfType, vars, fragVars, itemPath, onError)
			if !ok {
				valid = false
				continue
			}
			coerced = append(coerced, item)
		}
		if !valid {
			return nil, false
		}
		return coerced, true
	}

	named := s.Types[t.Named]
	if named == nil {
		panic("values: reference to unregistered type " + t.Named)
	}
	switch named.Kind {
	case schema.TypeKindInputObject:
		return coerceInputObjectLiteral(s, v, named, vars, fragVars, path, onError)
	case schema.TypeKindScalar, schema.TypeKindEnum:
		cv, err := parseLeafLiteral(named, v)
		if err != nil {
			reportWrapped(onError, path, v, err)
			return nil, false
		}
		return cv, true
	default:
		report(onError, path, v, "Type %q is not a valid input type.", named.Name)
		return nil, false
	}
}

func coerceInputObjectLiteral(s *schema.Schema, v *language.Value, t *schema.Type, vars, fragVars *Variables, path language.Path, onError CoerceErrorFn) (any, bool) {
	if v.Kind != language.ObjectValue {
		report(onError, path, v, "Expected type %q to be an object.", t.Name)
		return nil, false
	}

	byName := make(map[string]*language.Value, len(v.Children))
	for _, child := range v.Children {
		byName[child.Name] = child.Value
	}

	coerced := make(map[string]any, len(byName))
	valid := true
	for _, f := range t.InputFields {
		fv, present := byName[f.Name]
		if !present || missingVariable(fv, vars, fragVars) {
			if f.Default != nil {
				if dv, ok := coercedDefault(s, f); ok {
					coerced[f.Name] = dv
				}
			} else if f.Type.IsNonNull() {
				report(onError, path, v, "Field %q of required type %q was not provided.", f.Name, f.Type.String())
				valid = false
			}
			continue
		}
		cv, ok := coerceLiteral(s, fv, f.Type, vars, fragVars, appendPath(path, language.PathName(f.Name)), onError)
		if !ok {
			valid = false
			continue
		}
		coerced[f.Name] = cv
	}

	for _, child := range v.Children {
		if t.InputField(child.Name) == nil {
			report(onError, path, v, "Field %q is not defined by type %q.%s",
				child.Name, t.Name, didYouMean(suggestionList(child.Name, inputFieldNames(t))))
			valid = false
		}
	}

	if t.OneOf && valid {
		if len(coerced) != 1 {
			report(onError, path, v, "Exactly one key must be specified for OneOf type %q.", t.Name)
			return nil, false
		}
		for key, value := range coerced {
			if value == nil {
				report(onError, appendPath(path, language.PathName(key)), v, "Field %q must be non-null.", key)
				return nil, false
			}
		}
	}

	if !valid {
		return nil, false
	}
	return coerced, true
}

// parseLeafLiteral coerces a literal at a leaf type: the scalar's own literal
// parser when plugged, the specified scalar literal rules for built-ins, and
// enum name syntax for enums.
func parseLeafLiteral(t *schema.Type, v *language.Value) (any, error) {
	switch t.Kind {
	case schema.TypeKindScalar:
		if t.ParseLiteral != nil {
			return safeParse(func() (any, error) { return t.ParseLiteral(v) })
		}
		return coerceScalarLiteral(t.Name, v)
	case schema.TypeKindEnum:
		if v.Kind != language.EnumValue {
			return nil, gqlerror.Errorf("Enum %q cannot represent non-enum value: %s.%s",
				t.Name, v.String(), didYouMean(suggestionList(v.Raw, enumValueNames(t))))
		}
		if ev := t.EnumValue(v.Raw); ev != nil {
			if ev.Value != nil {
				return ev.Value, nil
			}
			return ev.Name, nil
		}
		return nil, gqlerror.Errorf("Value %q does not exist in %q enum.%s",
			v.Raw, t.Name, didYouMean(suggestionList(v.Raw, enumValueNames(t))))
	default:
		panic("values: type " + t.Name + " is not a leaf type")
	}
}

// lookupVariable resolves a variable name, preferring a fragment-scoped
// source that defines it over the operation's variables.
func lookupVariable(name string, vars, fragVars *Variables) (any, bool) {
	if fragVars.Has(name) {
		return fragVars.Lookup(name)
	}
	return vars.Lookup(name)
}

// missingVariable reports whether the node is a variable with no value in
// either source.
func missingVariable(v *language.Value, vars, fragVars *Variables) bool {
	if v == nil || v.Kind != language.Variable {
		return false
	}
	_, provided := lookupVariable(v.Raw, vars, fragVars)
	return !provided
}

// refFromAST converts an AST type node into a registry reference. Variable
// definitions carry AST types rather than schema references.
func refFromAST(t *language.Type) *schema.TypeRef {
	var ref *schema.TypeRef
	if t.NamedType != "" {
		ref = schema.NamedType(t.NamedType)
	} else {
		ref = schema.ListType(refFromAST(t.Elem))
	}
	if t.NonNull {
		ref = schema.NonNullType(ref)
	}
	return ref
}
