package schema

import (
	"strings"
)

// Render produces canonical SDL for the schema. Types and directives appear
// in lexicographic order; built-in scalars and directives are omitted.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	if needsSchemaBlock(s) {
		renderDescription(&b, s.Description, "")
		b.WriteString("schema {\n")
		if s.QueryType != "" {
			b.WriteString("  query: " + s.QueryType + "\n")
		}
		if s.MutationType != "" {
			b.WriteString("  mutation: " + s.MutationType + "\n")
		}
		if s.SubscriptionType != "" {
			b.WriteString("  subscription: " + s.SubscriptionType + "\n")
		}
		b.WriteString("}\n\n")
	}

	for _, name := range s.TypeNames() {
		t := s.Types[name]
		if IsSpecifiedScalarName(name) || IsIntrospectionName(name) {
			continue
		}
		switch t.Kind {
		case TypeKindScalar:
			renderScalar(&b, t)
		case TypeKindEnum:
			renderEnum(&b, t)
		case TypeKindInputObject:
			renderInputObject(&b, t)
		case TypeKindObject:
			renderComposite(&b, t, "type")
		case TypeKindInterface:
			renderComposite(&b, t, "interface")
		case TypeKindUnion:
			renderUnion(&b, t)
		default:
			panic("schema: unexpected type kind " + string(t.Kind))
		}
	}

	for _, d := range s.Directives {
		if isBuiltinDirective(d) {
			continue
		}
		renderDirective(&b, d)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// needsSchemaBlock reports whether root types deviate from the conventional
// names, requiring an explicit schema block.
func needsSchemaBlock(s *Schema) bool {
	if s.Description != "" {
		return true
	}
	if s.QueryType != "" && s.QueryType != "Query" {
		return true
	}
	if s.MutationType != "" && s.MutationType != "Mutation" {
		return true
	}
	if s.SubscriptionType != "" && s.SubscriptionType != "Subscription" {
		return true
	}
	return false
}

func renderDescription(b *strings.Builder, desc, indent string) {
	if desc == "" {
		return
	}
	b.WriteString(indent)
	b.WriteString(`"""`)
	if strings.Contains(desc, "\n") {
		b.WriteString("\n")
		for _, line := range strings.Split(desc, "\n") {
			b.WriteString(indent + line + "\n")
		}
		b.WriteString(indent)
	} else {
		b.WriteString(strings.ReplaceAll(desc, `"""`, `\"""`))
	}
	b.WriteString("\"\"\"\n")
}

func renderScalar(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description, "")
	b.WriteString("scalar " + t.Name)
	if t.SpecifiedByURL != "" {
		b.WriteString(` @specifiedBy(url: "` + t.SpecifiedByURL + `")`)
	}
	b.WriteString("\n\n")
}

func renderEnum(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description, "")
	b.WriteString("enum " + t.Name + " {\n")
	for _, v := range t.EnumValues {
		renderDescription(b, v.Description, "  ")
		b.WriteString("  " + v.Name)
		renderDeprecated(b, v.IsDeprecated, v.DeprecationReason)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderInputObject(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description, "")
	b.WriteString("input " + t.Name)
	if t.OneOf {
		b.WriteString(" @oneOf")
	}
	b.WriteString(" {\n")
	for _, f := range t.InputFields {
		renderDescription(b, f.Description, "  ")
		b.WriteString("  ")
		renderInputValue(b, f)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderComposite(b *strings.Builder, t *Type, keyword string) {
	renderDescription(b, t.Description, "")
	b.WriteString(keyword + " " + t.Name)
	if len(t.Interfaces) > 0 {
		b.WriteString(" implements " + strings.Join(t.Interfaces, " & "))
	}
	b.WriteString(" {\n")
	for _, f := range t.Fields {
		renderDescription(b, f.Description, "  ")
		b.WriteString("  " + f.Name)
		renderArguments(b, f.Arguments)
		b.WriteString(": " + f.Type.String())
		renderDeprecated(b, f.IsDeprecated, f.DeprecationReason)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderUnion(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description, "")
	b.WriteString("union " + t.Name + " = " + strings.Join(t.Members, " | "))
	b.WriteString("\n\n")
}

func renderDirective(b *strings.Builder, d *Directive) {
	renderDescription(b, d.Description, "")
	b.WriteString("directive @" + d.Name)
	renderArguments(b, d.Arguments)
	if d.IsRepeatable {
		b.WriteString(" repeatable")
	}
	b.WriteString(" on " + strings.Join(d.Locations, " | "))
	b.WriteString("\n\n")
}

func renderArguments(b *strings.Builder, args []*InputValue) {
	if len(args) == 0 {
		return
	}
	b.WriteString("(")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		renderInputValue(b, a)
	}
	b.WriteString(")")
}

func renderInputValue(b *strings.Builder, v *InputValue) {
	b.WriteString(v.Name + ": " + v.Type.String())
	if v.Default != nil {
		b.WriteString(" = " + v.Default.String())
	}
	renderDeprecated(b, v.IsDeprecated, v.DeprecationReason)
}

func renderDeprecated(b *strings.Builder, deprecated bool, reason string) {
	if !deprecated {
		return
	}
	b.WriteString(" @deprecated")
	if reason != "" && reason != DefaultDeprecationReason {
		b.WriteString(`(reason: "` + reason + `")`)
	}
}
