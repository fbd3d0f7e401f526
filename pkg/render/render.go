// Package render formats token streams and tokenizer errors for terminals.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/lemonberrylabs/evalexpr/pkg/token"
	"github.com/lemonberrylabs/evalexpr/pkg/types"
)

// Options control the output.
type Options struct {
	Color bool
}

type palette struct {
	index, kind, value, operator, err, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		index:    color.New(color.Faint),
		kind:     color.New(color.FgCyan),
		value:    color.New(color.FgGreen),
		operator: color.New(color.FgYellow),
		err:      color.New(color.FgRed, color.Bold),
		note:     color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.index, p.kind, p.value, p.operator, p.err, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Tokens writes one line per token: position, kind, source text, and a
// "value" marker for tokens that can end a value expression.
func Tokens(w io.Writer, tokens []token.Token, opts Options) error {
	p := newPalette(opts.Color)

	texts := make([]string, len(tokens))
	width := 0
	for i, t := range tokens {
		texts[i] = displayText(t)
		if n := runewidth.StringWidth(texts[i]); n > width {
			width = n
		}
	}

	for i, t := range tokens {
		text := runewidth.FillRight(texts[i], width)
		if isComplex(t.Kind) {
			text = p.value.Sprint(text)
		} else {
			text = p.operator.Sprint(text)
		}
		marker := ""
		if t.IsValue() {
			marker = "  " + p.note.Sprint("value")
		}
		if _, err := fmt.Fprintf(w, "%s  %s  %s%s\n",
			p.index.Sprintf("%3d", i+1), p.kind.Sprintf("%-10s", t.Kind), text, marker); err != nil {
			return err
		}
	}
	return nil
}

// Error writes err as a headline followed by a note line per payload field
// that helps locate the problem.
func Error(w io.Writer, err error, opts Options) error {
	p := newPalette(opts.Color)

	var e *types.EvalexprError
	if !errors.As(err, &e) {
		_, werr := fmt.Fprintf(w, "%s %s\n", p.err.Sprint("error:"), err)
		return werr
	}

	if _, werr := fmt.Fprintf(w, "%s %s\n", p.err.Sprintf("error[%s]:", e.Kind), e.Error()); werr != nil {
		return werr
	}
	if e.Kind != types.KindUnmatchedPartialToken {
		return nil
	}
	second := "end of input"
	if e.Second != nil {
		second = strconv.Quote(e.Second.String())
	}
	_, werr := fmt.Fprintf(w, "  %s %q is followed by %s\n", p.note.Sprint("note:"), e.First.String(), second)
	return werr
}

func displayText(t token.Token) string {
	switch t.Kind {
	case token.Whitespace:
		return "␠"
	case token.Identifier:
		return strconv.Quote(t.Text)
	default:
		return t.String()
	}
}

func isComplex(k token.Kind) bool {
	switch k {
	case token.Identifier, token.Float, token.Int, token.Boolean:
		return true
	}
	return false
}
