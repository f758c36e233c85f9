// Package values implements input coercion and validation: converting runtime
// values and literal AST nodes into the internal representation a declared
// input type expects, or collecting diagnostics when they do not conform.
package values

import (
	"fmt"
	"math"
	"strconv"

	language "github.com/gqlkit/gqlschema/internal/language"
)

// Specified scalar coercion for runtime values. Inputs follow the JSON data
// model the way decoded request payloads produce them.

func coerceIntValue(value any) (any, error) {
	switch v := value.(type) {
	case int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %v", v)
		}
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %v", v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Int cannot represent non-integer value: %v", v)
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %v", v)
		}
		return int(v), nil
	case float32:
		return coerceIntValue(float64(v))
	default:
		return nil, fmt.Errorf("Int cannot represent non-integer value: %v", inspect(value))
	}
}

func coerceFloatValue(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Float cannot represent non numeric value: %v", v)
		}
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("Float cannot represent non numeric value: %v", inspect(value))
	}
}

func coerceStringValue(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return nil, fmt.Errorf("String cannot represent a non string value: %v", inspect(value))
}

func coerceBooleanValue(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %v", inspect(value))
}

func coerceIDValue(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), nil
		}
	}
	return nil, fmt.Errorf("ID cannot represent value: %v", inspect(value))
}

// coerceScalarValue applies the specified scalar rules for a built-in
// scalar, or passes the value through for a custom scalar without a plugged
// ParseValue.
func coerceScalarValue(name string, value any) (any, error) {
	switch name {
	case "Int":
		return coerceIntValue(value)
	case "Float":
		return coerceFloatValue(value)
	case "String":
		return coerceStringValue(value)
	case "Boolean":
		return coerceBooleanValue(value)
	case "ID":
		return coerceIDValue(value)
	default:
		return value, nil
	}
}

// coerceScalarLiteral applies the specified scalar literal rules: each
// built-in scalar accepts only its own syntax kinds.
func coerceScalarLiteral(name string, v *language.Value) (any, error) {
	switch name {
	case "Int":
		if v.Kind != language.IntValue {
			return nil, fmt.Errorf("Int cannot represent non-integer value: %s", v.String())
		}
		n, err := strconv.ParseInt(v.Raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %s", v.Raw)
		}
		return int(n), nil
	case "Float":
		if v.Kind != language.IntValue && v.Kind != language.FloatValue {
			return nil, fmt.Errorf("Float cannot represent non numeric value: %s", v.String())
		}
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return nil, fmt.Errorf("Float cannot represent non numeric value: %s", v.Raw)
		}
		return f, nil
	case "String":
		if v.Kind != language.StringValue && v.Kind != language.BlockValue {
			return nil, fmt.Errorf("String cannot represent a non string value: %s", v.String())
		}
		return v.Raw, nil
	case "Boolean":
		if v.Kind != language.BooleanValue {
			return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %s", v.String())
		}
		return v.Raw == "true", nil
	case "ID":
		if v.Kind != language.StringValue && v.Kind != language.IntValue {
			return nil, fmt.Errorf("ID cannot represent a non-string and non-integer value: %s", v.String())
		}
		return v.Raw, nil
	default:
		return literalValue(v), nil
	}
}

// literalValue converts a literal AST node into its plain Go representation,
// used for custom scalars without a plugged literal parser.
func literalValue(v *language.Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case language.IntValue:
		n, _ := strconv.ParseInt(v.Raw, 10, 64)
		return int(n)
	case language.FloatValue:
		f, _ := strconv.ParseFloat(v.Raw, 64)
		return f
	case language.StringValue, language.BlockValue, language.EnumValue:
		return v.Raw
	case language.BooleanValue:
		return v.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(v.Children))
		for i, c := range v.Children {
			out[i] = literalValue(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any, len(v.Children))
		for _, c := range v.Children {
			m[c.Name] = literalValue(c.Value)
		}
		return m
	default:
		return nil
	}
}

// inspect renders a runtime value for error messages.
func inspect(value any) string {
	if value == nil {
		return "null"
	}
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
