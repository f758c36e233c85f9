package values

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/gqlkit/gqlschema/internal/language"
	schema "github.com/gqlkit/gqlschema/internal/schema"
)

// CoerceErrorFn receives every coercion failure with the structured path to
// the offending value, the value itself, and the error. The error wraps the
// original scalar parse failure when there is one.
type CoerceErrorFn func(path language.Path, invalidValue any, err *gqlerror.Error)

// CoerceInputValue coerces a runtime value against a declared input type.
// ok reports whether the value conforms; on failure the coerced result is
// nil and every violation found is delivered to onError (which may be nil).
// Coercion has no side effects beyond memoizing default-value coercion.
func CoerceInputValue(s *schema.Schema, value any, t *schema.TypeRef, onError CoerceErrorFn) (any, bool) {
	return coerceValue(s, value, t, nil, onError)
}

func coerceValue(s *schema.Schema, value any, t *schema.TypeRef, path language.Path, onError CoerceErrorFn) (any, bool) {
	if t.Kind == schema.TypeRefKindNonNull {
		if value == nil {
			report(onError, path, value, "Expected non-nullable type %q not to be null.", t.String())
			return nil, false
		}
		return coerceValue(s, value, t.OfType, path, onError)
	}

	// Explicit null against a nullable type is a valid null.
	if value == nil {
		return nil, true
	}

	if t.Kind == schema.TypeRefKindList {
		if items, ok := value.([]any); ok {
			coerced := make([]any, 0, len(items))
			valid := true
			for i, item := range items {
				cv, ok := coerceValue(s, item, t.OfType, appendPath(path, language.PathIndex(i)), onError)
				if !ok {
					valid = false
					continue
				}
				coerced = append(coerced, cv)
			}
			if !valid {
				return nil, false
			}
			return coerced, true
		}
		// A non-list value coerces as a list of one.
		cv, ok := coerceValue(s, value, t.OfType, path, onError)
		if !ok {
			return nil, false
		}
		return []any{cv}, true
	}

	named := s.Types[t.Named]
	if named == nil {
		panic(fmt.Sprintf("values: reference to unregistered type %q", t.Named))
	}
	switch named.Kind {
	case schema.TypeKindInputObject:
		return coerceInputObjectValue(s, value, named, path, onError)
	case schema.TypeKindScalar, schema.TypeKindEnum:
		cv, err := parseLeafValue(named, value)
		if err != nil {
			reportWrapped(onError, path, value, err)
			return nil, false
		}
		return cv, true
	default:
		report(onError, path, value, "Type %q is not a valid input type.", named.Name)
		return nil, false
	}
}

func coerceInputObjectValue(s *schema.Schema, value any, t *schema.Type, path language.Path, onError CoerceErrorFn) (any, bool) {
	fields, ok := value.(map[string]any)
	if !ok {
		report(onError, path, value, "Expected type %q to be an object.", t.Name)
		return nil, false
	}

	coerced := make(map[string]any, len(fields))
	valid := true
	for _, f := range t.InputFields {
		fv, present := fields[f.Name]
		if !present {
			if f.Default != nil {
				if dv, ok := coercedDefault(s, f); ok {
					coerced[f.Name] = dv
				}
			} else if f.Type.IsNonNull() {
				report(onError, path, value, "Field %q of required type %q was not provided.", f.Name, f.Type.String())
				valid = false
			}
			continue
		}
		cv, ok := coerceValue(s, fv, f.Type, appendPath(path, language.PathName(f.Name)), onError)
		if !ok {
			valid = false
			continue
		}
		coerced[f.Name] = cv
	}

	for _, key := range sortedKeys(fields) {
		if t.InputField(key) == nil {
			report(onError, path, value, "Field %q is not defined by type %q.%s",
				key, t.Name, didYouMean(suggestionList(key, inputFieldNames(t))))
			valid = false
		}
	}

	if t.OneOf && valid {
		if len(coerced) != 1 {
			report(onError, path, value, "Exactly one key must be specified for OneOf type %q.", t.Name)
			return nil, false
		}
		for key, v := range coerced {
			if v == nil {
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

// parseLeafValue coerces a runtime value at a leaf type: the scalar's own
// parse function when plugged, the specified scalar rules for built-ins, and
// name lookup for enums. A panic out of a plugged parse function is caught
// and converted into a coercion failure.
func parseLeafValue(t *schema.Type, value any) (any, error) {
	switch t.Kind {
	case schema.TypeKindScalar:
		if t.ParseValue != nil {
			return safeParse(func() (any, error) { return t.ParseValue(value) })
		}
		return coerceScalarValue(t.Name, value)
	case schema.TypeKindEnum:
		return coerceEnumValue(t, value)
	default:
		panic(fmt.Sprintf("values: type %q is not a leaf type", t.Name))
	}
}

func coerceEnumValue(t *schema.Type, value any) (any, error) {
	name, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("Enum %q cannot represent non-string value: %v.%s",
			t.Name, inspect(value), didYouMean(enumValueNames(t)))
	}
	if ev := t.EnumValue(name); ev != nil {
		if ev.Value != nil {
			return ev.Value, nil
		}
		return ev.Name, nil
	}
	return nil, fmt.Errorf("Value %q does not exist in %q enum.%s",
		name, t.Name, didYouMean(suggestionList(name, enumValueNames(t))))
}

// coercedDefault returns the memoized coerced form of a declared default.
// The first coercion wins; the cell is safe under concurrent first access.
func coercedDefault(s *schema.Schema, v *schema.InputValue) (any, bool) {
	return v.Default.Coerced(func() (any, bool) {
		if v.Default.Literal != nil {
			return coerceLiteral(s, v.Default.Literal, v.Type, nil, nil, nil, nil)
		}
		if v.Default.Raw != "" {
			// Introspection-sourced schemas carry textual defaults; client
			// schemas have no executable behavior, so the text is kept as is.
			return v.Default.Raw, true
		}
		return nil, true
	})
}

func safeParse(parse func() (any, error)) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return parse()
}

func report(onError CoerceErrorFn, path language.Path, value any, format string, args ...any) {
	if onError == nil {
		return
	}
	onError(path, value, gqlerror.Errorf(format, args...))
}

func reportWrapped(onError CoerceErrorFn, path language.Path, value any, cause error) {
	if onError == nil {
		return
	}
	err := gqlerror.Errorf("%s", cause.Error())
	err.Err = cause
	onError(path, value, err)
}

func appendPath(p language.Path, e any) language.Path {
	out := make(language.Path, len(p), len(p)+1)
	copy(out, p)
	switch e := e.(type) {
	case language.PathName:
		return append(out, e)
	case language.PathIndex:
		return append(out, e)
	default:
		panic(fmt.Sprintf("values: invalid path element %T", e))
	}
}

func inputFieldNames(t *schema.Type) []string {
	names := make([]string, len(t.InputFields))
	for i, f := range t.InputFields {
		names[i] = f.Name
	}
	return names
}

func enumValueNames(t *schema.Type) []string {
	names := make([]string, len(t.EnumValues))
	for i, v := range t.EnumValues {
		names[i] = v.Name
	}
	return names
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic error ordering.
	sort.Strings(keys)
	return keys
}
