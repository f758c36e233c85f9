package introspection

import (
	"fmt"

	schema "github.com/gqlkit/gqlschema/internal/schema"
)

// BuildClientSchema reconstructs a schema from an introspection response.
// The result is structurally faithful but carries no executable behavior:
// descriptions, deprecations and defaults survive, scalar parse functions do
// not, and defaults are kept as their SDL text. Built-in scalar types are
// substituted with the shared singletons; introspection meta types are
// skipped.
func BuildClientSchema(resp *Response) (*schema.Schema, error) {
	if resp == nil || resp.Schema == nil {
		return nil, fmt.Errorf("Invalid or incomplete introspection result. Ensure that a full introspection query is used in order to build a client schema.")
	}
	data := resp.Schema

	s := &schema.Schema{
		Description: deref(data.Description),
		Types:       map[string]*schema.Type{},
		Directives:  schema.BuiltInDirectives(),
	}
	for name, t := range builtinScalars() {
		s.Types[name] = t
	}

	for _, td := range data.Types {
		if td.Name == "" {
			return nil, fmt.Errorf("Invalid or incomplete introspection result: unnamed type in types list.")
		}
		if schema.IsIntrospectionName(td.Name) {
			continue
		}
		if schema.IsSpecifiedScalarName(td.Name) {
			continue
		}
		t, err := buildClientType(td)
		if err != nil {
			return nil, err
		}
		s.Types[td.Name] = t
	}

	for _, dd := range data.Directives {
		if schema.IsBuiltInDirectiveName(dd.Name) {
			continue
		}
		d, err := buildClientDirective(dd)
		if err != nil {
			return nil, err
		}
		s.Directives = append(s.Directives, d)
	}

	if data.QueryType != nil {
		s.QueryType = data.QueryType.Name
	}
	if data.MutationType != nil {
		s.MutationType = data.MutationType.Name
	}
	if data.SubscriptionType != nil {
		s.SubscriptionType = data.SubscriptionType.Name
	}

	if err := schema.CheckReferences(s); err != nil {
		return nil, err
	}
	return s, nil
}

func buildClientType(td *TypeData) (*schema.Type, error) {
	t := &schema.Type{
		Name:        td.Name,
		Description: deref(td.Description),
	}
	switch td.Kind {
	case "SCALAR":
		t.Kind = schema.TypeKindScalar
		t.SpecifiedByURL = deref(td.SpecifiedByURL)

	case "OBJECT", "INTERFACE":
		if td.Kind == "OBJECT" {
			t.Kind = schema.TypeKindObject
		} else {
			t.Kind = schema.TypeKindInterface
		}
		if td.Fields == nil {
			return nil, incomplete("fields", td)
		}
		if td.Interfaces == nil {
			return nil, incomplete("interfaces", td)
		}
		for _, fd := range *td.Fields {
			f, err := buildClientField(td.Name, fd)
			if err != nil {
				return nil, err
			}
			t.Fields = append(t.Fields, f)
		}
		for _, ref := range *td.Interfaces {
			t.Interfaces = append(t.Interfaces, ref.Name)
		}

	case "UNION":
		t.Kind = schema.TypeKindUnion
		if td.PossibleTypes == nil {
			return nil, incomplete("possibleTypes", td)
		}
		for _, ref := range *td.PossibleTypes {
			t.Members = append(t.Members, ref.Name)
		}

	case "ENUM":
		t.Kind = schema.TypeKindEnum
		if td.EnumValues == nil {
			return nil, incomplete("enumValues", td)
		}
		for _, vd := range *td.EnumValues {
			t.EnumValues = append(t.EnumValues, &schema.EnumValue{
				Name:              vd.Name,
				Description:       deref(vd.Description),
				Value:             vd.Name,
				IsDeprecated:      vd.IsDeprecated,
				DeprecationReason: deref(vd.DeprecationReason),
			})
		}

	case "INPUT_OBJECT":
		t.Kind = schema.TypeKindInputObject
		t.OneOf = td.IsOneOf
		if td.InputFields == nil {
			return nil, incomplete("inputFields", td)
		}
		for _, vd := range *td.InputFields {
			v, err := buildClientInputValue(td.Name, vd)
			if err != nil {
				return nil, err
			}
			t.InputFields = append(t.InputFields, v)
		}

	default:
		return nil, fmt.Errorf("Invalid or incomplete introspection result: type %q has unknown kind %q.", td.Name, td.Kind)
	}
	return t, nil
}

func buildClientField(typeName string, fd *FieldData) (*schema.Field, error) {
	ref, err := refFromData(fd.Type)
	if err != nil {
		return nil, fmt.Errorf("Introspection result contains an invalid type for field %q of %q: %w", fd.Name, typeName, err)
	}
	f := &schema.Field{
		Name:              fd.Name,
		Description:       deref(fd.Description),
		Type:              ref,
		IsDeprecated:      fd.IsDeprecated,
		DeprecationReason: deref(fd.DeprecationReason),
	}
	for _, ad := range fd.Args {
		a, err := buildClientInputValue(typeName+"."+fd.Name, ad)
		if err != nil {
			return nil, err
		}
		f.Arguments = append(f.Arguments, a)
	}
	return f, nil
}

func buildClientInputValue(owner string, vd *InputValueData) (*schema.InputValue, error) {
	ref, err := refFromData(vd.Type)
	if err != nil {
		return nil, fmt.Errorf("Introspection result contains an invalid type for input value %q of %q: %w", vd.Name, owner, err)
	}
	v := &schema.InputValue{
		Name:              vd.Name,
		Description:       deref(vd.Description),
		Type:              ref,
		IsDeprecated:      vd.IsDeprecated,
		DeprecationReason: deref(vd.DeprecationReason),
	}
	if vd.DefaultValue != nil {
		v.Default = &schema.DefaultValue{Raw: *vd.DefaultValue}
	}
	return v, nil
}

func buildClientDirective(dd *DirectiveData) (*schema.Directive, error) {
	d := &schema.Directive{
		Name:         dd.Name,
		Description:  deref(dd.Description),
		Locations:    append([]string(nil), dd.Locations...),
		IsRepeatable: dd.IsRepeatable,
	}
	for _, ad := range dd.Args {
		a, err := buildClientInputValue("@"+dd.Name, ad)
		if err != nil {
			return nil, err
		}
		d.Arguments = append(d.Arguments, a)
	}
	return d, nil
}

// refFromData converts a wire type reference into a registry reference,
// rejecting malformed wrapper chains.
func refFromData(rd *TypeRefData) (*schema.TypeRef, error) {
	if rd == nil {
		return nil, fmt.Errorf("missing type reference")
	}
	switch rd.Kind {
	case "LIST":
		inner, err := refFromData(rd.OfType)
		if err != nil {
			return nil, err
		}
		return schema.ListType(inner), nil
	case "NON_NULL":
		inner, err := refFromData(rd.OfType)
		if err != nil {
			return nil, err
		}
		if inner.Kind == schema.TypeRefKindNonNull {
			return nil, fmt.Errorf("NON_NULL wrapping NON_NULL")
		}
		return schema.NonNullType(inner), nil
	default:
		if rd.Name == "" {
			return nil, fmt.Errorf("unnamed type reference of kind %q", rd.Kind)
		}
		return schema.NamedType(rd.Name), nil
	}
}

func builtinScalars() map[string]*schema.Type {
	out := map[string]*schema.Type{}
	for _, name := range []string{"String", "Int", "Float", "Boolean", "ID"} {
		out[name] = schema.SpecifiedScalarType(name)
	}
	return out
}

func incomplete(key string, td *TypeData) error {
	return fmt.Errorf("Introspection result missing %s: type %q of kind %q.", key, td.Name, td.Kind)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
