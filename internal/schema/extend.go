package schema

import (
	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/gqlkit/gqlschema/internal/language"
)

// Extend produces a new schema from s plus the type definitions, directive
// definitions and extension blocks of doc. The input schema is never mutated;
// existing types that gain no extension are shared structurally, every other
// type is rebuilt exactly once. A document contributing nothing returns s
// itself.
func Extend(s *Schema, doc *language.SchemaDocument, opts Options) (*Schema, error) {
	if len(doc.Definitions) == 0 && len(doc.Extensions) == 0 && len(doc.Directives) == 0 &&
		len(doc.Schema) == 0 && len(doc.SchemaExtension) == 0 {
		return s, nil
	}

	// Bucket extension blocks by target type name.
	typeExts := make(map[string][]*language.Definition)
	for _, ext := range doc.Extensions {
		typeExts[ext.Name] = append(typeExts[ext.Name], ext)
	}

	// Register new type definitions, rejecting collisions with the existing
	// schema and duplicates within the document. Definitions reusing a
	// built-in name are dropped: the singleton always wins.
	newDefs := make(map[string]*language.Definition)
	newOrder := make([]string, 0, len(doc.Definitions))
	for _, def := range doc.Definitions {
		if IsSpecifiedScalarName(def.Name) || IsIntrospectionName(def.Name) {
			continue
		}
		if _, exists := s.Types[def.Name]; exists {
			return nil, gqlerror.ErrorPosf(def.Position,
				"Type %q already exists in the schema. It cannot also be defined in this type definition.", def.Name)
		}
		if _, dup := newDefs[def.Name]; dup {
			return nil, gqlerror.ErrorPosf(def.Position, "There can be only one type named %q.", def.Name)
		}
		newDefs[def.Name] = def
		newOrder = append(newOrder, def.Name)
	}

	out := &Schema{
		Description:      s.Description,
		QueryType:        s.QueryType,
		MutationType:     s.MutationType,
		SubscriptionType: s.SubscriptionType,
		Types:            make(map[string]*Type, len(s.Types)+len(newDefs)),
	}

	// Extended copies of every existing type. Built-in scalar and
	// introspection meta types pass through untouched.
	for name, t := range s.Types {
		if IsSpecifiedScalarName(name) || IsIntrospectionName(name) {
			out.Types[name] = t
			continue
		}
		et, err := extendType(t, typeExts[name])
		if err != nil {
			return nil, err
		}
		out.Types[name] = et
	}

	// New top-level definitions, with any extensions targeting them in the
	// same document applied immediately.
	for _, name := range newOrder {
		t := buildDefinition(newDefs[name])
		t, err := extendType(t, typeExts[name])
		if err != nil {
			return nil, err
		}
		out.Types[name] = t
	}

	// Every extension bucket must have found a target by now.
	for _, ext := range doc.Extensions {
		if IsSpecifiedScalarName(ext.Name) || IsIntrospectionName(ext.Name) {
			return nil, gqlerror.ErrorPosf(ext.Position, "Cannot extend built-in type %q.", ext.Name)
		}
		if _, ok := out.Types[ext.Name]; !ok {
			return nil, gqlerror.ErrorPosf(ext.Position, "Cannot extend type %q because it is not defined.", ext.Name)
		}
	}

	// Existing directives pass through; newly defined ones are appended. A
	// redeclared built-in replaces the implicit singleton, any other name
	// collision is fatal.
	out.Directives = append([]*Directive(nil), s.Directives...)
	for _, dd := range doc.Directives {
		existing := out.Directive(dd.Name)
		if existing != nil {
			if IsBuiltInDirectiveName(dd.Name) && isBuiltinDirective(existing) {
				for i, d := range out.Directives {
					if d.Name == dd.Name {
						out.Directives[i] = buildDirective(dd)
					}
				}
				continue
			}
			return nil, gqlerror.ErrorPosf(dd.Position,
				"Directive %q already exists in the schema. It cannot be redefined.", dd.Name)
		}
		out.Directives = append(out.Directives, buildDirective(dd))
	}

	// Root operation types: the old schema's carry over, schema blocks
	// override. Declaring the same operation twice is fatal.
	seenOps := make(map[language.Operation]bool)
	schemaDefs := append(append(language.SchemaDefinitionList(nil), doc.Schema...), doc.SchemaExtension...)
	for _, sd := range schemaDefs {
		if sd.Description != "" {
			out.Description = sd.Description
		}
		for _, op := range sd.OperationTypes {
			if seenOps[op.Operation] {
				return nil, gqlerror.ErrorPosf(op.Position,
					"Type for %s already defined in the schema. It cannot be redefined.", op.Operation)
			}
			seenOps[op.Operation] = true
			switch op.Operation {
			case language.Query:
				out.QueryType = op.Type
			case language.Mutation:
				out.MutationType = op.Type
			case language.Subscription:
				out.SubscriptionType = op.Type
			}
		}
	}

	if !opts.AssumeValid {
		if err := CheckReferences(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ExtendSource parses an SDL fragment and extends s with it.
func ExtendSource(s *Schema, name, sdl string, opts Options) (*Schema, error) {
	doc, err := language.ParseSchema(name, sdl)
	if err != nil {
		return nil, err
	}
	return Extend(s, doc, opts)
}

// extendType returns t merged with its extension blocks, or t itself when
// there are none.
func extendType(t *Type, exts []*language.Definition) (*Type, error) {
	if len(exts) == 0 {
		return t, nil
	}

	et := *t
	et.Fields = append([]*Field(nil), t.Fields...)
	et.Interfaces = append([]string(nil), t.Interfaces...)
	et.Members = append([]string(nil), t.Members...)
	et.EnumValues = append([]*EnumValue(nil), t.EnumValues...)
	et.InputFields = append([]*InputValue(nil), t.InputFields...)
	et.Extensions = append(append([]*language.Definition(nil), t.Extensions...), exts...)

	for _, ext := range exts {
		if kindOf(ext.Kind) != t.Kind {
			return nil, gqlerror.ErrorPosf(ext.Position,
				"Cannot extend non-%s type %q.", kindWord(kindOf(ext.Kind)), t.Name)
		}
		switch t.Kind {
		case TypeKindObject, TypeKindInterface:
			for _, i := range ext.Interfaces {
				if et.Implements(i) {
					return nil, gqlerror.ErrorPosf(ext.Position, "Type %q can only implement %q once.", t.Name, i)
				}
				et.Interfaces = append(et.Interfaces, i)
			}
			for _, fd := range ext.Fields {
				if et.Field(fd.Name) != nil {
					return nil, gqlerror.ErrorPosf(fd.Position,
						"Field %q already exists in the schema. It cannot also be defined in this type extension.",
						t.Name+"."+fd.Name)
				}
				et.Fields = append(et.Fields, buildField(fd))
			}
		case TypeKindUnion:
			for _, m := range ext.Types {
				if et.HasMember(m) {
					return nil, gqlerror.ErrorPosf(ext.Position, "Union type %q can only include type %q once.", t.Name, m)
				}
				et.Members = append(et.Members, m)
			}
		case TypeKindEnum:
			for _, vd := range ext.EnumValues {
				if et.EnumValue(vd.Name) != nil {
					return nil, gqlerror.ErrorPosf(vd.Position,
						"Enum value %q already exists in the schema. It cannot also be defined in this type extension.",
						t.Name+"."+vd.Name)
				}
				et.EnumValues = append(et.EnumValues, buildEnumValue(vd))
			}
		case TypeKindInputObject:
			for _, fd := range ext.Fields {
				if et.InputField(fd.Name) != nil {
					return nil, gqlerror.ErrorPosf(fd.Position,
						"Field %q already exists in the schema. It cannot also be defined in this type extension.",
						t.Name+"."+fd.Name)
				}
				et.InputFields = append(et.InputFields, buildInputValue(fd))
			}
			if ext.Directives.ForName("oneOf") != nil {
				et.OneOf = true
			}
		case TypeKindScalar:
			if url := directiveArgValue(ext.Directives, "specifiedBy", "url"); url != "" {
				et.SpecifiedByURL = url
			}
		}
	}
	return &et, nil
}

func kindOf(k language.DefinitionKind) TypeKind {
	switch k {
	case language.Object:
		return TypeKindObject
	case language.Interface:
		return TypeKindInterface
	case language.Union:
		return TypeKindUnion
	case language.Enum:
		return TypeKindEnum
	case language.Scalar:
		return TypeKindScalar
	case language.InputObject:
		return TypeKindInputObject
	default:
		panic("schema: unexpected definition kind " + string(k))
	}
}

func kindWord(k TypeKind) string {
	switch k {
	case TypeKindObject:
		return "object"
	case TypeKindInterface:
		return "interface"
	case TypeKindUnion:
		return "union"
	case TypeKindEnum:
		return "enum"
	case TypeKindScalar:
		return "scalar"
	case TypeKindInputObject:
		return "input object"
	default:
		panic("schema: unexpected type kind " + string(k))
	}
}

func isBuiltinDirective(d *Directive) bool {
	for _, b := range builtinDirectives {
		if d == b {
			return true
		}
	}
	return false
}
