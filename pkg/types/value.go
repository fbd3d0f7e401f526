// Package types defines the runtime values of the evalexpr language and the
// error type shared by the lexer, parser and evaluator.
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType represents the type of a value.
type ValueType int

const (
	TypeEmpty   ValueType = iota
	TypeString            // string
	TypeFloat             // float64
	TypeInt               // int64
	TypeBoolean           // bool
	TypeTuple             // []Value
)

// String returns the type name used in error messages.
func (t ValueType) String() string {
	switch t {
	case TypeEmpty:
		return "empty"
	case TypeString:
		return "string"
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeBoolean:
		return "boolean"
	case TypeTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// TupleType is the payload of a tuple value.
type TupleType = []Value

// Value is a runtime value of the expression language, stored as a tagged union.
type Value struct {
	typ       ValueType
	stringVal string
	floatVal  float64
	intVal    int64
	boolVal   bool
	tupleVal  TupleType
}

// Empty is the singleton empty value.
var Empty = Value{typ: TypeEmpty}

// NewString creates a string value.
func NewString(v string) Value {
	return Value{typ: TypeString, stringVal: v}
}

// NewFloat creates a float value.
func NewFloat(v float64) Value {
	return Value{typ: TypeFloat, floatVal: v}
}

// NewInt creates an integer value.
func NewInt(v int64) Value {
	return Value{typ: TypeInt, intVal: v}
}

// NewBool creates a boolean value.
func NewBool(v bool) Value {
	return Value{typ: TypeBoolean, boolVal: v}
}

// NewTuple creates a tuple value from a slice of values.
func NewTuple(v TupleType) Value {
	return Value{typ: TypeTuple, tupleVal: v}
}

// Type returns the value's type.
func (v Value) Type() ValueType {
	return v.typ
}

// IsEmpty returns true if the value is the empty value.
func (v Value) IsEmpty() bool {
	return v.typ == TypeEmpty
}

// IsNumber returns true for int and float values.
func (v Value) IsNumber() bool {
	return v.typ == TypeInt || v.typ == TypeFloat
}

// AsString returns the string value. Panics if not a string.
func (v Value) AsString() string {
	if v.typ != TypeString {
		panic(fmt.Sprintf("AsString called on %s value", v.typ))
	}
	return v.stringVal
}

// AsFloat returns the float value. Panics if not a float.
func (v Value) AsFloat() float64 {
	if v.typ != TypeFloat {
		panic(fmt.Sprintf("AsFloat called on %s value", v.typ))
	}
	return v.floatVal
}

// AsInt returns the integer value. Panics if not an int.
func (v Value) AsInt() int64 {
	if v.typ != TypeInt {
		panic(fmt.Sprintf("AsInt called on %s value", v.typ))
	}
	return v.intVal
}

// AsBool returns the boolean value. Panics if not a boolean.
func (v Value) AsBool() bool {
	if v.typ != TypeBoolean {
		panic(fmt.Sprintf("AsBool called on %s value", v.typ))
	}
	return v.boolVal
}

// AsTuple returns the tuple value. Panics if not a tuple.
func (v Value) AsTuple() TupleType {
	if v.typ != TypeTuple {
		panic(fmt.Sprintf("AsTuple called on %s value", v.typ))
	}
	return v.tupleVal
}

// Clone creates a deep copy of the value.
func (v Value) Clone() Value {
	if v.typ != TypeTuple {
		return v // scalar types are value-copied
	}
	return NewTuple(cloneTuple(v.tupleVal))
}

func cloneTuple(t TupleType) TupleType {
	if t == nil {
		return nil
	}
	items := make(TupleType, len(t))
	for i, item := range t {
		items[i] = item.Clone()
	}
	return items
}

// Equal tests deep equality between two values. Unlike the language's ==
// operator it never coerces between int and float.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeEmpty:
		return true
	case TypeString:
		return v.stringVal == other.stringVal
	case TypeFloat:
		return v.floatVal == other.floatVal
	case TypeInt:
		return v.intVal == other.intVal
	case TypeBoolean:
		return v.boolVal == other.boolVal
	case TypeTuple:
		if len(v.tupleVal) != len(other.tupleVal) {
			return false
		}
		for i := range v.tupleVal {
			if !v.tupleVal[i].Equal(other.tupleVal[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns a human-readable representation of the value. Strings are
// quoted so they can be told apart from identifiers in error messages.
func (v Value) String() string {
	switch v.typ {
	case TypeEmpty:
		return "()"
	case TypeString:
		return strconv.Quote(v.stringVal)
	case TypeFloat:
		if v.floatVal == math.Trunc(v.floatVal) && !math.IsInf(v.floatVal, 0) {
			return fmt.Sprintf("%.1f", v.floatVal)
		}
		return fmt.Sprintf("%g", v.floatVal)
	case TypeInt:
		return strconv.FormatInt(v.intVal, 10)
	case TypeBoolean:
		return strconv.FormatBool(v.boolVal)
	case TypeTuple:
		parts := make([]string, len(v.tupleVal))
		for i, item := range v.tupleVal {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return "<unknown>"
}

// ToGoValue converts a Value to a plain Go value suitable for JSON, msgpack
// or protobuf Struct encoding. Tuples become []any and empty becomes nil.
func (v Value) ToGoValue() any {
	switch v.typ {
	case TypeString:
		return v.stringVal
	case TypeFloat:
		return v.floatVal
	case TypeInt:
		return v.intVal
	case TypeBoolean:
		return v.boolVal
	case TypeTuple:
		result := make([]any, len(v.tupleVal))
		for i, item := range v.tupleVal {
			result[i] = item.ToGoValue()
		}
		return result
	}
	return nil
}

// MarshalJSON converts a Value to JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case TypeEmpty:
		return []byte("null"), nil
	case TypeFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			// JSON has no NaN or Inf
			return json.Marshal(v.String())
		}
		return json.Marshal(v.floatVal)
	case TypeTuple:
		items := make([]json.RawMessage, len(v.tupleVal))
		for i, item := range v.tupleVal {
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			items[i] = b
		}
		return json.Marshal(items)
	case TypeString, TypeInt, TypeBoolean:
		return json.Marshal(v.ToGoValue())
	}
	return nil, fmt.Errorf("cannot marshal unknown type %d", v.typ)
}
