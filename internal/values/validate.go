package values

import (
	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/gqlkit/gqlschema/internal/language"
	schema "github.com/gqlkit/gqlschema/internal/schema"
)

// ValidateErrorFn receives every violation found during validation together
// with the structured path to the offending value.
type ValidateErrorFn func(err *gqlerror.Error, path language.Path)

// ValidateInputValue checks a runtime value against a declared input type,
// reporting every violation to onError. Unlike coercion it never
// short-circuits: the full value tree is walked so one pass yields a complete
// multi-error report. It produces no value, only diagnostics.
func ValidateInputValue(s *schema.Schema, value any, t *schema.TypeRef, onError ValidateErrorFn) {
	_, _ = coerceValue(s, value, t, nil, adaptValidate(onError))
}

// ValidateInputLiteral checks a literal AST value, with variable substitution
// from vars and the optional fragment-scoped fragVars, reporting every
// violation to onError.
func ValidateInputLiteral(s *schema.Schema, v *language.Value, t *schema.TypeRef, vars, fragVars *Variables, onError ValidateErrorFn) {
	_, _ = coerceLiteral(s, v, t, vars, fragVars, nil, adaptValidate(onError))
}

func adaptValidate(onError ValidateErrorFn) CoerceErrorFn {
	if onError == nil {
		return nil
	}
	return func(path language.Path, invalidValue any, err *gqlerror.Error) {
		onError(err, path)
	}
}
