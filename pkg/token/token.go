// Package token defines the lexical tokens of the evalexpr expression language
// and the partial tokens the lexer builds them from.
package token

import (
	"fmt"
	"strconv"
)

// Kind represents the kind of a lexical token.
type Kind int

const (
	// Arithmetic
	Plus    Kind = iota // +
	Minus               // -
	Star                // *
	Slash               // /
	Percent             // %

	// Logic
	Eq  // ==
	Neq // !=
	Gt  // >
	Lt  // <
	Geq // >=
	Leq // <=
	And // &&
	Or  // ||
	Not // !

	// Precedence
	LBrace     // (
	RBrace     // )
	Whitespace // any unicode whitespace

	// Complex tokens
	Identifier // Text
	Float      // FloatVal
	Int        // IntVal
	Boolean    // BoolVal
)

// Token is a finished lexical unit. Only the payload field matching Kind is set,
// so tokens compare with ==.
type Token struct {
	Kind     Kind
	Text     string  // identifier name (Identifier)
	IntVal   int64   // parsed int (Int)
	FloatVal float64 // parsed float (Float)
	BoolVal  bool    // parsed boolean (Boolean)
}

// New returns a token of a kind that carries no payload.
func New(k Kind) Token {
	return Token{Kind: k}
}

// NewIdentifier returns an Identifier token.
func NewIdentifier(name string) Token {
	return Token{Kind: Identifier, Text: name}
}

// NewInt returns an Int token.
func NewInt(v int64) Token {
	return Token{Kind: Int, IntVal: v}
}

// NewFloat returns a Float token.
func NewFloat(v float64) Token {
	return Token{Kind: Float, FloatVal: v}
}

// NewBoolean returns a Boolean token.
func NewBoolean(v bool) Token {
	return Token{Kind: Boolean, BoolVal: v}
}

// IsValue reports whether the token can terminate a value expression.
// The parser uses it to tell unary from binary operators. LBrace is false,
// RBrace is true.
func (t Token) IsValue() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent:
		return false
	case Eq, Neq, Gt, Lt, Geq, Leq, And, Or, Not:
		return false
	case LBrace:
		return false
	case RBrace:
		return true
	case Whitespace:
		return false
	case Identifier, Float, Int, Boolean:
		return true
	default:
		panic(fmt.Sprintf("token: unknown kind %d", int(t.Kind)))
	}
}

// String returns the source spelling of the token.
func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return t.Text
	case Int:
		return strconv.FormatInt(t.IntVal, 10)
	case Float:
		return strconv.FormatFloat(t.FloatVal, 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(t.BoolVal)
	default:
		return t.Kind.Spelling()
	}
}

// Spelling returns the fixed source text of a payload-free kind, or "" for
// complex kinds.
func (k Kind) Spelling() string {
	switch k {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Percent:
		return "%"
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Gt:
		return ">"
	case Lt:
		return "<"
	case Geq:
		return ">="
	case Leq:
		return "<="
	case And:
		return "&&"
	case Or:
		return "||"
	case Not:
		return "!"
	case LBrace:
		return "("
	case RBrace:
		return ")"
	case Whitespace:
		return " "
	default:
		return ""
	}
}

// String returns a debug-friendly name of the kind.
func (k Kind) String() string {
	switch k {
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Star:
		return "Star"
	case Slash:
		return "Slash"
	case Percent:
		return "Percent"
	case Eq:
		return "Eq"
	case Neq:
		return "Neq"
	case Gt:
		return "Gt"
	case Lt:
		return "Lt"
	case Geq:
		return "Geq"
	case Leq:
		return "Leq"
	case And:
		return "And"
	case Or:
		return "Or"
	case Not:
		return "Not"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case Whitespace:
		return "Whitespace"
	case Identifier:
		return "Identifier"
	case Float:
		return "Float"
	case Int:
		return "Int"
	case Boolean:
		return "Boolean"
	default:
		return "Unknown"
	}
}
