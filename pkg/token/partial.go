package token

import "fmt"

// PartialKind represents the kind of a partial token.
type PartialKind int

const (
	PartialResolved        PartialKind = iota // already a Token
	PartialLiteral                            // run of unclassified characters
	PartialEq                                 // =
	PartialExclamationMark                    // !
	PartialGt                                 // >
	PartialLt                                 // <
	PartialAmpersand                          // &
	PartialVerticalBar                        // |
)

// PartialToken is an intermediate lexical unit. Literal runs and the six
// ambiguous operator characters still need merging or lookahead before they
// become tokens.
type PartialToken struct {
	Kind    PartialKind
	Token   Token  // set for PartialResolved
	Literal string // set for PartialLiteral
}

// Resolved wraps a finished token.
func Resolved(t Token) PartialToken {
	return PartialToken{Kind: PartialResolved, Token: t}
}

// Literal returns a literal run.
func Literal(s string) PartialToken {
	return PartialToken{Kind: PartialLiteral, Literal: s}
}

// Ambiguous returns the partial token of an ambiguous operator character kind.
func Ambiguous(k PartialKind) PartialToken {
	if k == PartialResolved || k == PartialLiteral {
		panic(fmt.Sprintf("token: %s is not an ambiguous partial kind", k))
	}
	return PartialToken{Kind: k}
}

// String returns the source text the partial token was built from.
func (p PartialToken) String() string {
	switch p.Kind {
	case PartialResolved:
		return p.Token.String()
	case PartialLiteral:
		return p.Literal
	case PartialEq:
		return "="
	case PartialExclamationMark:
		return "!"
	case PartialGt:
		return ">"
	case PartialLt:
		return "<"
	case PartialAmpersand:
		return "&"
	case PartialVerticalBar:
		return "|"
	default:
		panic(fmt.Sprintf("token: unknown partial kind %d", int(p.Kind)))
	}
}

func (k PartialKind) String() string {
	switch k {
	case PartialResolved:
		return "Token"
	case PartialLiteral:
		return "Literal"
	case PartialEq:
		return "Eq"
	case PartialExclamationMark:
		return "ExclamationMark"
	case PartialGt:
		return "Gt"
	case PartialLt:
		return "Lt"
	case PartialAmpersand:
		return "Ampersand"
	case PartialVerticalBar:
		return "VerticalBar"
	default:
		return "Unknown"
	}
}
