// Package wire converts tokens and errors into plain data for JSON, msgpack
// and protobuf Struct encodings. The shapes here are what the HTTP and gRPC
// surfaces return.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lemonberrylabs/evalexpr/pkg/token"
	"github.com/lemonberrylabs/evalexpr/pkg/types"
)

// KindInternal is the ErrorView kind of errors that are not EvalexprErrors.
const KindInternal = "Internal"

// TokenView is the encoded form of a token. Value is set for complex tokens only.
type TokenView struct {
	Kind  string `json:"kind" msgpack:"kind"`
	Value any    `json:"value,omitempty" msgpack:"value,omitempty"`
}

// ErrorView is the encoded form of an error. Details holds every payload field
// of the error kind.
type ErrorView struct {
	Kind    string         `json:"kind" msgpack:"kind"`
	Message string         `json:"message" msgpack:"message"`
	Details map[string]any `json:"details,omitempty" msgpack:"details,omitempty"`
}

// Result is the outcome of one tokenize call: tokens when OK, an error otherwise.
type Result struct {
	OK     bool        `json:"ok" msgpack:"ok"`
	Tokens []TokenView `json:"tokens,omitempty" msgpack:"tokens,omitempty"`
	Error  *ErrorView  `json:"error,omitempty" msgpack:"error,omitempty"`
}

// NewResult builds a Result from the return values of expr.Tokenize.
func NewResult(tokens []token.Token, err error) Result {
	if err != nil {
		return Result{Error: FromError(err)}
	}
	views := make([]TokenView, len(tokens))
	for i, t := range tokens {
		views[i] = FromToken(t)
	}
	return Result{OK: true, Tokens: views}
}

// FromToken converts a token.
func FromToken(t token.Token) TokenView {
	v := TokenView{Kind: t.Kind.String()}
	switch t.Kind {
	case token.Identifier:
		v.Value = t.Text
	case token.Int:
		v.Value = t.IntVal
	case token.Float:
		v.Value = safeFloat(t.FloatVal)
	case token.Boolean:
		v.Value = t.BoolVal
	}
	return v
}

// FromError converts an error. EvalexprErrors keep their full payload; any
// other error becomes KindInternal with its message.
func FromError(err error) *ErrorView {
	var e *types.EvalexprError
	if !errors.As(err, &e) {
		return &ErrorView{Kind: KindInternal, Message: err.Error()}
	}
	return &ErrorView{Kind: e.Kind.String(), Message: e.Error(), Details: details(e)}
}

func details(e *types.EvalexprError) map[string]any {
	switch e.Kind {
	case types.KindWrongOperatorArgumentAmount, types.KindWrongFunctionArgumentAmount:
		return map[string]any{"expected": int64(e.Expected), "actual": int64(e.Actual)}
	case types.KindExpectedString, types.KindExpectedInt, types.KindExpectedFloat,
		types.KindExpectedNumber, types.KindExpectedNumberOrString, types.KindExpectedBoolean,
		types.KindExpectedTuple, types.KindExpectedEmpty:
		return map[string]any{"actual": valueData(e.Value)}
	case types.KindTypeError:
		expected := make([]any, len(e.ExpectedTypes))
		for i, v := range e.ExpectedTypes {
			expected[i] = valueData(v)
		}
		return map[string]any{"expected": expected, "actual": valueData(e.Value)}
	case types.KindVariableIdentifierNotFound, types.KindFunctionIdentifierNotFound:
		return map[string]any{"identifier": e.Identifier}
	case types.KindUnmatchedPartialToken:
		d := map[string]any{"first": partialData(e.First), "second": nil}
		if e.Second != nil {
			d["second"] = partialData(*e.Second)
		}
		return d
	case types.KindAdditionError:
		return operands(e, "augend", "addend")
	case types.KindSubtractionError:
		return operands(e, "minuend", "subtrahend")
	case types.KindNegationError:
		return operands(e, "argument")
	case types.KindMultiplicationError:
		return operands(e, "multiplicand", "multiplier")
	case types.KindDivisionError, types.KindModulationError:
		return operands(e, "dividend", "divisor")
	case types.KindInvalidRegex:
		return map[string]any{"regex": e.Regex, "message": e.Message}
	case types.KindIllegalEscapeSequence:
		return map[string]any{"sequence": e.Message}
	case types.KindCustomMessage:
		return map[string]any{"message": e.Message}
	default:
		return nil
	}
}

func operands(e *types.EvalexprError, names ...string) map[string]any {
	d := make(map[string]any, len(names))
	for i, name := range names {
		if i < len(e.Operands) {
			d[name] = valueData(e.Operands[i])
		}
	}
	return d
}

func partialData(p token.PartialToken) map[string]any {
	return map[string]any{"kind": p.Kind.String(), "text": p.String()}
}

func valueData(v types.Value) map[string]any {
	return map[string]any{"type": v.Type().String(), "value": plain(v)}
}

// plain is Value.ToGoValue with non-finite floats spelled as strings, since
// neither JSON nor protobuf Struct round-trip them reliably.
func plain(v types.Value) any {
	switch v.Type() {
	case types.TypeFloat:
		return safeFloat(v.AsFloat())
	case types.TypeTuple:
		items := v.AsTuple()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = plain(item)
		}
		return out
	default:
		return v.ToGoValue()
	}
}

func safeFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}

// EncodeJSON writes r as JSON.
func EncodeJSON(w io.Writer, r Result) error {
	return json.NewEncoder(w).Encode(r)
}

// EncodeMsgpack writes r as msgpack.
func EncodeMsgpack(w io.Writer, r Result) error {
	return msgpack.NewEncoder(w).Encode(r)
}

// DecodeMsgpack reads a Result written by EncodeMsgpack.
func DecodeMsgpack(r io.Reader) (Result, error) {
	var res Result
	if err := msgpack.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode msgpack result: %w", err)
	}
	return res, nil
}

// Map returns r as nested maps and slices of plain values. Integers that a
// float64 cannot hold exactly are spelled as decimal strings.
func (r Result) Map() map[string]any {
	m := map[string]any{"ok": r.OK}
	if r.Tokens != nil {
		tokens := make([]any, len(r.Tokens))
		for i, t := range r.Tokens {
			tm := map[string]any{"kind": t.Kind}
			if t.Value != nil {
				tm["value"] = structSafe(t.Value)
			}
			tokens[i] = tm
		}
		m["tokens"] = tokens
	}
	if r.Error != nil {
		em := map[string]any{"kind": r.Error.Kind, "message": r.Error.Message}
		if r.Error.Details != nil {
			em["details"] = structSafe(r.Error.Details)
		}
		m["error"] = em
	}
	return m
}

// maxExactInt is the largest magnitude a float64 represents without loss.
const maxExactInt = 1 << 53

// structSafe copies v, replacing int64 values beyond ±2^53 with their decimal
// text. protobuf Struct stores every number as a double.
func structSafe(v any) any {
	switch v := v.(type) {
	case int64:
		if v > maxExactInt || v < -maxExactInt {
			return strconv.FormatInt(v, 10)
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = structSafe(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = structSafe(item)
		}
		return out
	default:
		return v
	}
}

// Struct returns r as a protobuf Struct.
func (r Result) Struct() (*structpb.Struct, error) {
	s, err := structpb.NewStruct(r.Map())
	if err != nil {
		return nil, fmt.Errorf("convert result to struct: %w", err)
	}
	return s, nil
}
