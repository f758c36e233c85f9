package introspection

import (
	schema "github.com/gqlkit/gqlschema/internal/schema"
)

// Introspect serializes a schema into the wire form of the standard
// introspection query. Types come out in lexicographic order, so the result
// is deterministic and round-trips through BuildClientSchema.
func Introspect(s *schema.Schema) *Response {
	w := &writer{schema: s}
	data := &SchemaData{
		Description: optional(s.Description),
	}
	if s.QueryType != "" {
		data.QueryType = w.namedRef(s.QueryType)
	}
	if s.MutationType != "" {
		data.MutationType = w.namedRef(s.MutationType)
	}
	if s.SubscriptionType != "" {
		data.SubscriptionType = w.namedRef(s.SubscriptionType)
	}
	for _, name := range s.TypeNames() {
		data.Types = append(data.Types, w.typeData(s.Types[name]))
	}
	for _, d := range s.Directives {
		data.Directives = append(data.Directives, w.directiveData(d))
	}
	return &Response{Schema: data}
}

type writer struct {
	schema *schema.Schema
}

func (w *writer) typeData(t *schema.Type) *TypeData {
	td := &TypeData{
		Kind:        string(t.Kind),
		Name:        t.Name,
		Description: optional(t.Description),
	}
	switch t.Kind {
	case schema.TypeKindScalar:
		td.SpecifiedByURL = optional(t.SpecifiedByURL)

	case schema.TypeKindObject, schema.TypeKindInterface:
		fields := make([]*FieldData, 0, len(t.Fields))
		for _, f := range t.Fields {
			fields = append(fields, w.fieldData(f))
		}
		td.Fields = &fields
		interfaces := make([]*TypeRefData, 0, len(t.Interfaces))
		for _, i := range t.Interfaces {
			interfaces = append(interfaces, w.namedRef(i))
		}
		td.Interfaces = &interfaces

	case schema.TypeKindUnion:
		members := make([]*TypeRefData, 0, len(t.Members))
		for _, m := range t.Members {
			members = append(members, w.namedRef(m))
		}
		td.PossibleTypes = &members

	case schema.TypeKindEnum:
		values := make([]*EnumValueData, 0, len(t.EnumValues))
		for _, v := range t.EnumValues {
			values = append(values, &EnumValueData{
				Name:              v.Name,
				Description:       optional(v.Description),
				IsDeprecated:      v.IsDeprecated,
				DeprecationReason: optional(v.DeprecationReason),
			})
		}
		td.EnumValues = &values

	case schema.TypeKindInputObject:
		td.IsOneOf = t.OneOf
		fields := make([]*InputValueData, 0, len(t.InputFields))
		for _, f := range t.InputFields {
			fields = append(fields, w.inputValueData(f))
		}
		td.InputFields = &fields
	}
	return td
}

func (w *writer) fieldData(f *schema.Field) *FieldData {
	fd := &FieldData{
		Name:              f.Name,
		Description:       optional(f.Description),
		Type:              w.refData(f.Type),
		Args:              []*InputValueData{},
		IsDeprecated:      f.IsDeprecated,
		DeprecationReason: optional(f.DeprecationReason),
	}
	for _, a := range f.Arguments {
		fd.Args = append(fd.Args, w.inputValueData(a))
	}
	return fd
}

func (w *writer) inputValueData(v *schema.InputValue) *InputValueData {
	vd := &InputValueData{
		Name:              v.Name,
		Description:       optional(v.Description),
		Type:              w.refData(v.Type),
		IsDeprecated:      v.IsDeprecated,
		DeprecationReason: optional(v.DeprecationReason),
	}
	if v.Default != nil {
		text := v.Default.String()
		vd.DefaultValue = &text
	}
	return vd
}

func (w *writer) directiveData(d *schema.Directive) *DirectiveData {
	dd := &DirectiveData{
		Name:         d.Name,
		Description:  optional(d.Description),
		Locations:    append([]string(nil), d.Locations...),
		Args:         []*InputValueData{},
		IsRepeatable: d.IsRepeatable,
	}
	for _, a := range d.Arguments {
		dd.Args = append(dd.Args, w.inputValueData(a))
	}
	return dd
}

func (w *writer) refData(t *schema.TypeRef) *TypeRefData {
	switch t.Kind {
	case schema.TypeRefKindNonNull:
		return &TypeRefData{Kind: "NON_NULL", OfType: w.refData(t.OfType)}
	case schema.TypeRefKindList:
		return &TypeRefData{Kind: "LIST", OfType: w.refData(t.OfType)}
	default:
		return w.namedRef(t.Named)
	}
}

// namedRef emits a reference carrying the registered kind of the target, the
// way a live server reports __Type in reference position.
func (w *writer) namedRef(name string) *TypeRefData {
	kind := "OBJECT"
	if t := w.schema.Types[name]; t != nil {
		kind = string(t.Kind)
	}
	return &TypeRefData{Kind: kind, Name: name}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
