package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lemonberrylabs/evalexpr/pkg/token"
)

// ErrorKind identifies the failure condition of an EvalexprError.
type ErrorKind int

const (
	KindWrongOperatorArgumentAmount ErrorKind = iota
	KindWrongFunctionArgumentAmount
	KindExpectedString
	KindExpectedInt
	KindExpectedFloat
	KindExpectedNumber
	KindExpectedNumberOrString
	KindExpectedBoolean
	KindExpectedTuple
	KindExpectedEmpty
	KindAppendedToLeafNode
	KindPrecedenceViolation
	KindVariableIdentifierNotFound
	KindFunctionIdentifierNotFound
	KindTypeError
	KindUnmatchedLBrace
	KindUnmatchedRBrace
	KindUnmatchedPartialToken
	KindAdditionError
	KindSubtractionError
	KindNegationError
	KindMultiplicationError
	KindDivisionError
	KindModulationError
	KindInvalidRegex
	KindContextNotManipulable
	KindIllegalEscapeSequence
	KindCustomMessage
)

var kindNames = [...]string{
	KindWrongOperatorArgumentAmount: "WrongOperatorArgumentAmount",
	KindWrongFunctionArgumentAmount: "WrongFunctionArgumentAmount",
	KindExpectedString:              "ExpectedString",
	KindExpectedInt:                 "ExpectedInt",
	KindExpectedFloat:               "ExpectedFloat",
	KindExpectedNumber:              "ExpectedNumber",
	KindExpectedNumberOrString:      "ExpectedNumberOrString",
	KindExpectedBoolean:             "ExpectedBoolean",
	KindExpectedTuple:               "ExpectedTuple",
	KindExpectedEmpty:               "ExpectedEmpty",
	KindAppendedToLeafNode:          "AppendedToLeafNode",
	KindPrecedenceViolation:         "PrecedenceViolation",
	KindVariableIdentifierNotFound:  "VariableIdentifierNotFound",
	KindFunctionIdentifierNotFound:  "FunctionIdentifierNotFound",
	KindTypeError:                   "TypeError",
	KindUnmatchedLBrace:             "UnmatchedLBrace",
	KindUnmatchedRBrace:             "UnmatchedRBrace",
	KindUnmatchedPartialToken:       "UnmatchedPartialToken",
	KindAdditionError:               "AdditionError",
	KindSubtractionError:            "SubtractionError",
	KindNegationError:               "NegationError",
	KindMultiplicationError:         "MultiplicationError",
	KindDivisionError:               "DivisionError",
	KindModulationError:             "ModulationError",
	KindInvalidRegex:                "InvalidRegex",
	KindContextNotManipulable:       "ContextNotManipulable",
	KindIllegalEscapeSequence:       "IllegalEscapeSequence",
	KindCustomMessage:               "CustomMessage",
}

// String returns the name of the kind.
func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// EvalexprError is the error returned by every evalexpr subsystem. Kind selects
// the failure condition; only the payload fields documented for that kind are
// set. Values are cloned when the error is built and the error is never
// modified afterwards.
type EvalexprError struct {
	Kind ErrorKind

	// Expected and Actual hold argument counts for the Wrong*ArgumentAmount kinds.
	Expected int
	Actual   int

	// Value is the offending value of the Expected* kinds and TypeError.
	Value Value
	// ExpectedTypes is set for TypeError.
	ExpectedTypes TupleType

	// Operands holds the arithmetic arguments in order: two for binary
	// operations, one for negation.
	Operands []Value

	// Identifier is set for the *IdentifierNotFound kinds.
	Identifier string

	// First and Second are set for UnmatchedPartialToken. Second is nil when
	// First was the last partial token.
	First  token.PartialToken
	Second *token.PartialToken

	// Regex and Message are set for InvalidRegex. Message is also the text of
	// CustomMessage and the sequence of IllegalEscapeSequence.
	Regex   string
	Message string
}

// Error implements the error interface.
// operand returns the i-th arithmetic operand, or Empty if it is missing.
func (e *EvalexprError) operand(i int) Value {
	if i < len(e.Operands) {
		return e.Operands[i]
	}
	return Empty
}

func (e *EvalexprError) Error() string {
	switch e.Kind {
	case KindWrongOperatorArgumentAmount:
		return fmt.Sprintf("expected %d arguments for operator, got %d", e.Expected, e.Actual)
	case KindWrongFunctionArgumentAmount:
		return fmt.Sprintf("expected %d arguments for function, got %d", e.Expected, e.Actual)
	case KindExpectedString:
		return fmt.Sprintf("expected a string, got %s", e.Value)
	case KindExpectedInt:
		return fmt.Sprintf("expected an int, got %s", e.Value)
	case KindExpectedFloat:
		return fmt.Sprintf("expected a float, got %s", e.Value)
	case KindExpectedNumber:
		return fmt.Sprintf("expected a number, got %s", e.Value)
	case KindExpectedNumberOrString:
		return fmt.Sprintf("expected a number or a string, got %s", e.Value)
	case KindExpectedBoolean:
		return fmt.Sprintf("expected a boolean, got %s", e.Value)
	case KindExpectedTuple:
		return fmt.Sprintf("expected a tuple, got %s", e.Value)
	case KindExpectedEmpty:
		return fmt.Sprintf("expected an empty value, got %s", e.Value)
	case KindAppendedToLeafNode:
		return "tried to append a node to a leaf node"
	case KindPrecedenceViolation:
		return "tried to append a node to another node with higher precedence"
	case KindVariableIdentifierNotFound:
		return fmt.Sprintf("variable identifier is not bound to anything by context: %q", e.Identifier)
	case KindFunctionIdentifierNotFound:
		return fmt.Sprintf("function identifier is not bound to anything by context: %q", e.Identifier)
	case KindTypeError:
		names := make([]string, len(e.ExpectedTypes))
		for i, v := range e.ExpectedTypes {
			names[i] = v.String()
		}
		return fmt.Sprintf("expected one of (%s), got %s", strings.Join(names, ", "), e.Value)
	case KindUnmatchedLBrace:
		return "found an unmatched opening parenthesis"
	case KindUnmatchedRBrace:
		return "found an unmatched closing parenthesis"
	case KindUnmatchedPartialToken:
		if e.Second != nil {
			return fmt.Sprintf("found a partial token %q that should not be followed by %q", e.First, *e.Second)
		}
		return fmt.Sprintf("found a partial token %q that should be followed by another partial token", e.First)
	case KindAdditionError:
		return fmt.Sprintf("error adding %s + %s", e.operand(0), e.operand(1))
	case KindSubtractionError:
		return fmt.Sprintf("error subtracting %s - %s", e.operand(0), e.operand(1))
	case KindNegationError:
		return fmt.Sprintf("error negating -%s", e.operand(0))
	case KindMultiplicationError:
		return fmt.Sprintf("error multiplying %s * %s", e.operand(0), e.operand(1))
	case KindDivisionError:
		return fmt.Sprintf("error dividing %s / %s", e.operand(0), e.operand(1))
	case KindModulationError:
		return fmt.Sprintf("error modulating %s %% %s", e.operand(0), e.operand(1))
	case KindInvalidRegex:
		return fmt.Sprintf("regular expression %q is invalid: %s", e.Regex, e.Message)
	case KindContextNotManipulable:
		return "cannot manipulate context"
	case KindIllegalEscapeSequence:
		return fmt.Sprintf("illegal escape sequence: %s", e.Message)
	case KindCustomMessage:
		return e.Message
	default:
		return fmt.Sprintf("unknown error kind %d", int(e.Kind))
	}
}

// KindOf returns the kind of the first EvalexprError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *EvalexprError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Constructors.

// NewWrongOperatorArgumentAmount creates a WrongOperatorArgumentAmount error.
func NewWrongOperatorArgumentAmount(actual, expected int) *EvalexprError {
	return &EvalexprError{Kind: KindWrongOperatorArgumentAmount, Actual: actual, Expected: expected}
}

// NewWrongFunctionArgumentAmount creates a WrongFunctionArgumentAmount error.
func NewWrongFunctionArgumentAmount(actual, expected int) *EvalexprError {
	return &EvalexprError{Kind: KindWrongFunctionArgumentAmount, Actual: actual, Expected: expected}
}

func newExpected(kind ErrorKind, actual Value) *EvalexprError {
	return &EvalexprError{Kind: kind, Value: actual.Clone()}
}

// NewExpectedString creates an ExpectedString error.
func NewExpectedString(actual Value) *EvalexprError {
	return newExpected(KindExpectedString, actual)
}

// NewExpectedInt creates an ExpectedInt error.
func NewExpectedInt(actual Value) *EvalexprError {
	return newExpected(KindExpectedInt, actual)
}

// NewExpectedFloat creates an ExpectedFloat error.
func NewExpectedFloat(actual Value) *EvalexprError {
	return newExpected(KindExpectedFloat, actual)
}

// NewExpectedNumber creates an ExpectedNumber error.
func NewExpectedNumber(actual Value) *EvalexprError {
	return newExpected(KindExpectedNumber, actual)
}

// NewExpectedNumberOrString creates an ExpectedNumberOrString error.
func NewExpectedNumberOrString(actual Value) *EvalexprError {
	return newExpected(KindExpectedNumberOrString, actual)
}

// NewExpectedBoolean creates an ExpectedBoolean error.
func NewExpectedBoolean(actual Value) *EvalexprError {
	return newExpected(KindExpectedBoolean, actual)
}

// NewExpectedTuple creates an ExpectedTuple error.
func NewExpectedTuple(actual Value) *EvalexprError {
	return newExpected(KindExpectedTuple, actual)
}

// NewExpectedEmpty creates an ExpectedEmpty error.
func NewExpectedEmpty(actual Value) *EvalexprError {
	return newExpected(KindExpectedEmpty, actual)
}

// ExpectedType creates the Expected* error matching the type of expected,
// with actual as the value found instead.
func ExpectedType(expected, actual Value) *EvalexprError {
	switch expected.Type() {
	case TypeString:
		return NewExpectedString(actual)
	case TypeInt:
		return NewExpectedInt(actual)
	case TypeFloat:
		return NewExpectedFloat(actual)
	case TypeBoolean:
		return NewExpectedBoolean(actual)
	case TypeTuple:
		return NewExpectedTuple(actual)
	case TypeEmpty:
		return NewExpectedEmpty(actual)
	default:
		panic(fmt.Sprintf("types: unknown value type %d", int(expected.Type())))
	}
}

// NewTypeError creates a TypeError. Use it only when no Expected* kind fits.
func NewTypeError(actual Value, expected TupleType) *EvalexprError {
	return &EvalexprError{Kind: KindTypeError, Value: actual.Clone(), ExpectedTypes: cloneTuple(expected)}
}

// NewAppendedToLeafNode creates an AppendedToLeafNode error.
func NewAppendedToLeafNode() *EvalexprError {
	return &EvalexprError{Kind: KindAppendedToLeafNode}
}

// NewPrecedenceViolation creates a PrecedenceViolation error. It is only ever
// raised as a panic by AssertPrecedence.
func NewPrecedenceViolation() *EvalexprError {
	return &EvalexprError{Kind: KindPrecedenceViolation}
}

// NewVariableIdentifierNotFound creates a VariableIdentifierNotFound error.
func NewVariableIdentifierNotFound(name string) *EvalexprError {
	return &EvalexprError{Kind: KindVariableIdentifierNotFound, Identifier: name}
}

// NewFunctionIdentifierNotFound creates a FunctionIdentifierNotFound error.
func NewFunctionIdentifierNotFound(name string) *EvalexprError {
	return &EvalexprError{Kind: KindFunctionIdentifierNotFound, Identifier: name}
}

// NewUnmatchedLBrace creates an UnmatchedLBrace error.
func NewUnmatchedLBrace() *EvalexprError {
	return &EvalexprError{Kind: KindUnmatchedLBrace}
}

// NewUnmatchedRBrace creates an UnmatchedRBrace error.
func NewUnmatchedRBrace() *EvalexprError {
	return &EvalexprError{Kind: KindUnmatchedRBrace}
}

// NewUnmatchedPartialToken creates an UnmatchedPartialToken error. second is
// nil when first ended the input.
func NewUnmatchedPartialToken(first token.PartialToken, second *token.PartialToken) *EvalexprError {
	e := &EvalexprError{Kind: KindUnmatchedPartialToken, First: first}
	if second != nil {
		s := *second
		e.Second = &s
	}
	return e
}

func newArithmetic(kind ErrorKind, operands ...Value) *EvalexprError {
	ops := make([]Value, len(operands))
	for i, v := range operands {
		ops[i] = v.Clone()
	}
	return &EvalexprError{Kind: kind, Operands: ops}
}

// NewAdditionError creates an AdditionError.
func NewAdditionError(augend, addend Value) *EvalexprError {
	return newArithmetic(KindAdditionError, augend, addend)
}

// NewSubtractionError creates a SubtractionError.
func NewSubtractionError(minuend, subtrahend Value) *EvalexprError {
	return newArithmetic(KindSubtractionError, minuend, subtrahend)
}

// NewNegationError creates a NegationError.
func NewNegationError(argument Value) *EvalexprError {
	return newArithmetic(KindNegationError, argument)
}

// NewMultiplicationError creates a MultiplicationError.
func NewMultiplicationError(multiplicand, multiplier Value) *EvalexprError {
	return newArithmetic(KindMultiplicationError, multiplicand, multiplier)
}

// NewDivisionError creates a DivisionError.
func NewDivisionError(dividend, divisor Value) *EvalexprError {
	return newArithmetic(KindDivisionError, dividend, divisor)
}

// NewModulationError creates a ModulationError.
func NewModulationError(dividend, divisor Value) *EvalexprError {
	return newArithmetic(KindModulationError, dividend, divisor)
}

// NewInvalidRegex creates an InvalidRegex error.
func NewInvalidRegex(regex, message string) *EvalexprError {
	return &EvalexprError{Kind: KindInvalidRegex, Regex: regex, Message: message}
}

// NewContextNotManipulable creates a ContextNotManipulable error.
func NewContextNotManipulable() *EvalexprError {
	return &EvalexprError{Kind: KindContextNotManipulable}
}

// NewIllegalEscapeSequence creates an IllegalEscapeSequence error.
func NewIllegalEscapeSequence(sequence string) *EvalexprError {
	return &EvalexprError{Kind: KindIllegalEscapeSequence, Message: sequence}
}

// NewCustomMessage creates a CustomMessage error.
func NewCustomMessage(msg string) *EvalexprError {
	return &EvalexprError{Kind: KindCustomMessage, Message: msg}
}
