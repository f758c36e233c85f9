package schema

import "sort"

// Sort returns a copy of s with types, directives, fields, arguments, enum
// values, union members, interfaces and input fields in lexicographic order.
// The input schema is not mutated.
func Sort(s *Schema) *Schema {
	out := &Schema{
		Description:      s.Description,
		QueryType:        s.QueryType,
		MutationType:     s.MutationType,
		SubscriptionType: s.SubscriptionType,
		Types:            make(map[string]*Type, len(s.Types)),
	}
	for name, t := range s.Types {
		out.Types[name] = sortType(t)
	}
	out.Directives = append([]*Directive(nil), s.Directives...)
	sort.Slice(out.Directives, func(i, j int) bool { return out.Directives[i].Name < out.Directives[j].Name })
	for i, d := range out.Directives {
		out.Directives[i] = sortDirective(d)
	}
	return out
}

func sortType(t *Type) *Type {
	st := *t
	st.Fields = append([]*Field(nil), t.Fields...)
	sort.Slice(st.Fields, func(i, j int) bool { return st.Fields[i].Name < st.Fields[j].Name })
	for i, f := range st.Fields {
		st.Fields[i] = sortField(f)
	}
	st.Interfaces = sortedStrings(t.Interfaces)
	st.Members = sortedStrings(t.Members)
	st.EnumValues = append([]*EnumValue(nil), t.EnumValues...)
	sort.Slice(st.EnumValues, func(i, j int) bool { return st.EnumValues[i].Name < st.EnumValues[j].Name })
	st.InputFields = sortedInputValues(t.InputFields)
	return &st
}

func sortField(f *Field) *Field {
	sf := *f
	sf.Arguments = sortedInputValues(f.Arguments)
	return &sf
}

func sortDirective(d *Directive) *Directive {
	sd := *d
	sd.Arguments = sortedInputValues(d.Arguments)
	sd.Locations = sortedStrings(d.Locations)
	return &sd
}

func sortedInputValues(vs []*InputValue) []*InputValue {
	out := append([]*InputValue(nil), vs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedStrings(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}
