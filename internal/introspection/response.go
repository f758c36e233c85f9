// Package introspection converts between schemas and the wire form of the
// standard introspection query: parsing a response into a client schema, and
// serializing a schema back into a response.
package introspection

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is the payload of a full introspection query.
type Response struct {
	Schema *SchemaData `json:"__schema"`
}

// SchemaData mirrors the __Schema introspection type.
type SchemaData struct {
	Description      *string          `json:"description,omitempty"`
	QueryType        *TypeRefData     `json:"queryType"`
	MutationType     *TypeRefData     `json:"mutationType,omitempty"`
	SubscriptionType *TypeRefData     `json:"subscriptionType,omitempty"`
	Types            []*TypeData      `json:"types"`
	Directives       []*DirectiveData `json:"directives"`
}

// TypeData mirrors the __Type introspection type for a named type. Fields,
// Interfaces, PossibleTypes, EnumValues and InputFields are pointers to
// slices so that an absent key is distinguishable from an empty list.
type TypeData struct {
	Kind           string             `json:"kind"`
	Name           string             `json:"name"`
	Description    *string            `json:"description,omitempty"`
	Fields         *[]*FieldData      `json:"fields,omitempty"`
	Interfaces     *[]*TypeRefData    `json:"interfaces,omitempty"`
	PossibleTypes  *[]*TypeRefData    `json:"possibleTypes,omitempty"`
	EnumValues     *[]*EnumValueData  `json:"enumValues,omitempty"`
	InputFields    *[]*InputValueData `json:"inputFields,omitempty"`
	SpecifiedByURL *string            `json:"specifiedByURL,omitempty"`
	IsOneOf        bool               `json:"isOneOf,omitempty"`
}

// TypeRefData mirrors __Type in reference position: a named type, or a
// LIST/NON_NULL wrapper around another reference.
type TypeRefData struct {
	Kind   string       `json:"kind"`
	Name   string       `json:"name,omitempty"`
	OfType *TypeRefData `json:"ofType,omitempty"`
}

// FieldData mirrors the __Field introspection type.
type FieldData struct {
	Name              string            `json:"name"`
	Description       *string           `json:"description,omitempty"`
	Args              []*InputValueData `json:"args"`
	Type              *TypeRefData      `json:"type"`
	IsDeprecated      bool              `json:"isDeprecated"`
	DeprecationReason *string           `json:"deprecationReason,omitempty"`
}

// InputValueData mirrors the __InputValue introspection type. DefaultValue
// carries SDL text of the default literal, or nil when none is declared.
type InputValueData struct {
	Name              string       `json:"name"`
	Description       *string      `json:"description,omitempty"`
	Type              *TypeRefData `json:"type"`
	DefaultValue      *string      `json:"defaultValue,omitempty"`
	IsDeprecated      bool         `json:"isDeprecated,omitempty"`
	DeprecationReason *string      `json:"deprecationReason,omitempty"`
}

// EnumValueData mirrors the __EnumValue introspection type.
type EnumValueData struct {
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason,omitempty"`
}

// DirectiveData mirrors the __Directive introspection type.
type DirectiveData struct {
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	Locations    []string          `json:"locations"`
	Args         []*InputValueData `json:"args"`
	IsRepeatable bool              `json:"isRepeatable,omitempty"`
}

// ParseResponse decodes an introspection result from JSON. Both the bare
// payload and a standard GraphQL response envelope ({"data": {...}}) are
// accepted.
func ParseResponse(data []byte) (*Response, error) {
	var envelope struct {
		Data *Response `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("introspection: decoding response: %w", err)
	}
	if envelope.Data != nil && envelope.Data.Schema != nil {
		return envelope.Data, nil
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("introspection: decoding response: %w", err)
	}
	return &resp, nil
}

// MarshalResponse encodes an introspection result as indented JSON.
func MarshalResponse(resp *Response) ([]byte, error) {
	return json.MarshalIndent(resp, "", "  ")
}
