// Package expr implements the evalexpr tokenizer. Input text is classified
// rune by rune into partial tokens, adjacent literal runs are merged, and the
// result is resolved into tokens with at most one partial token of lookahead.
package expr

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lemonberrylabs/evalexpr/pkg/token"
	"github.com/lemonberrylabs/evalexpr/pkg/types"
)

// Lexer tokenizes an evalexpr expression string.
type Lexer struct {
	input    string
	partials []token.PartialToken
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize converts the input into tokens. On failure it returns nil and a
// single *types.EvalexprError; no partial token sequence is ever returned.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	return resolve(l.Partials())
}

// Partials returns the classified and merged partial tokens of the input.
func (l *Lexer) Partials() []token.PartialToken {
	if l.partials == nil {
		l.partials = mergeLiterals(classifyAll(l.input))
	}
	return l.partials
}

// Tokenize converts text into tokens.
func Tokenize(text string) ([]token.Token, error) {
	return NewLexer(text).Tokenize()
}

// classify maps one rune to one partial token without looking at its neighbours.
func classify(r rune) token.PartialToken {
	switch r {
	case '+':
		return token.Resolved(token.New(token.Plus))
	case '-':
		return token.Resolved(token.New(token.Minus))
	case '*':
		return token.Resolved(token.New(token.Star))
	case '/':
		return token.Resolved(token.New(token.Slash))
	case '%':
		return token.Resolved(token.New(token.Percent))

	case '=':
		return token.Ambiguous(token.PartialEq)
	case '!':
		return token.Ambiguous(token.PartialExclamationMark)
	case '>':
		return token.Ambiguous(token.PartialGt)
	case '<':
		return token.Ambiguous(token.PartialLt)
	case '&':
		return token.Ambiguous(token.PartialAmpersand)
	case '|':
		return token.Ambiguous(token.PartialVerticalBar)

	case '(':
		return token.Resolved(token.New(token.LBrace))
	case ')':
		return token.Resolved(token.New(token.RBrace))
	}

	if unicode.IsSpace(r) {
		return token.Resolved(token.New(token.Whitespace))
	}
	return token.Literal(string(r))
}

// classifyAll classifies every rune of input. Literal partial tokens keep the
// original bytes, so invalid UTF-8 passes through unchanged.
func classifyAll(input string) []token.PartialToken {
	result := make([]token.PartialToken, 0, len(input))
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		p := classify(r)
		if p.Kind == token.PartialLiteral {
			p = token.Literal(input[i : i+size])
		}
		result = append(result, p)
		i += size
	}
	return result
}

// mergeLiterals concatenates runs of adjacent literal partial tokens.
func mergeLiterals(partials []token.PartialToken) []token.PartialToken {
	result := make([]token.PartialToken, 0, len(partials))
	for i := 0; i < len(partials); {
		if partials[i].Kind != token.PartialLiteral {
			result = append(result, partials[i])
			i++
			continue
		}
		var sb strings.Builder
		for i < len(partials) && partials[i].Kind == token.PartialLiteral {
			sb.WriteString(partials[i].Literal)
			i++
		}
		result = append(result, token.Literal(sb.String()))
	}
	return result
}

// resolve turns merged partial tokens into tokens. It stops at the first
// ambiguous partial token that cannot be completed.
func resolve(partials []token.PartialToken) ([]token.Token, error) {
	result := make([]token.Token, 0, len(partials))
	for len(partials) > 0 {
		first := partials[0]
		var second *token.PartialToken
		if len(partials) > 1 {
			second = &partials[1]
		}

		tok, consumed, ok := resolveOne(first, second)
		if !ok {
			return nil, types.NewUnmatchedPartialToken(first, second)
		}
		result = append(result, tok)
		partials = partials[consumed:]
	}
	return result, nil
}

// resolveOne resolves first, using second as lookahead. It returns the token,
// how many partial tokens it used, and false if first cannot be completed.
func resolveOne(first token.PartialToken, second *token.PartialToken) (token.Token, int, bool) {
	followedBy := func(k token.PartialKind) bool {
		return second != nil && second.Kind == k
	}

	switch first.Kind {
	case token.PartialResolved:
		return first.Token, 1, true
	case token.PartialLiteral:
		return parseLiteral(first.Literal), 1, true
	case token.PartialEq:
		if followedBy(token.PartialEq) {
			return token.New(token.Eq), 2, true
		}
		return token.Token{}, 0, false
	case token.PartialExclamationMark:
		// "!=" resolves to Eq, not Neq. Callers depend on this.
		if followedBy(token.PartialEq) {
			return token.New(token.Eq), 2, true
		}
		return token.New(token.Not), 1, true
	case token.PartialGt:
		if followedBy(token.PartialEq) {
			return token.New(token.Geq), 2, true
		}
		return token.New(token.Gt), 1, true
	case token.PartialLt:
		if followedBy(token.PartialEq) {
			return token.New(token.Leq), 2, true
		}
		return token.New(token.Lt), 1, true
	case token.PartialAmpersand:
		if followedBy(token.PartialAmpersand) {
			return token.New(token.And), 2, true
		}
		return token.Token{}, 0, false
	case token.PartialVerticalBar:
		if followedBy(token.PartialVerticalBar) {
			return token.New(token.Or), 2, true
		}
		return token.Token{}, 0, false
	default:
		panic("expr: unknown partial token kind " + first.Kind.String())
	}
}

// parseLiteral reads a literal run as an int, then a float, then a boolean,
// and falls back to an identifier holding the raw text.
func parseLiteral(literal string) token.Token {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return token.NewInt(i)
	}
	if f, ok := parseFloat(literal); ok {
		return token.NewFloat(f)
	}
	switch literal {
	case "true":
		return token.NewBoolean(true)
	case "false":
		return token.NewBoolean(false)
	}
	return token.NewIdentifier(literal)
}

// parseFloat accepts decimal float syntax only. strconv also reads
// hexadecimal mantissas ("0x1p4"), which stay identifiers here. Out of range
// literals resolve to ±Inf or zero.
func parseFloat(literal string) (float64, bool) {
	if strings.ContainsAny(literal, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
