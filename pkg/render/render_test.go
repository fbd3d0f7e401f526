package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lemonberrylabs/evalexpr/pkg/expr"
	"github.com/lemonberrylabs/evalexpr/pkg/types"
)

func TestTokensListsEveryToken(t *testing.T) {
	tokens, err := expr.Tokenize("a >= 1")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	var buf bytes.Buffer
	if err := Tokens(&buf, tokens, Options{}); err != nil {
		t.Fatalf("Tokens: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), buf.String())
	}

	wantKinds := []string{"Identifier", "Whitespace", "Geq", "Whitespace", "Int"}
	for i, kind := range wantKinds {
		if !strings.Contains(lines[i], kind) {
			t.Errorf("line %d = %q, want kind %s", i, lines[i], kind)
		}
	}
	if !strings.Contains(lines[0], `"a"`) || !strings.HasSuffix(lines[0], "value") {
		t.Errorf("identifier line = %q", lines[0])
	}
	if strings.HasSuffix(lines[2], "value") {
		t.Errorf("operator line should not be marked as value: %q", lines[2])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("output contains escape codes with color disabled")
	}
}

func TestTokensAlignsWideText(t *testing.T) {
	tokens, err := expr.Tokenize("日本 x")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var buf bytes.Buffer
	if err := Tokens(&buf, tokens, Options{}); err != nil {
		t.Fatalf("Tokens: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// `"日本"` is 6 cells wide, so `"x"` gets 3 cells of padding.
	if !strings.Contains(lines[2], `"x"     value`) {
		t.Errorf("line = %q", lines[2])
	}
}

func TestTokensColor(t *testing.T) {
	tokens, _ := expr.Tokenize("1")
	var buf bytes.Buffer
	if err := Tokens(&buf, tokens, Options{Color: true}); err != nil {
		t.Fatalf("Tokens: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected escape codes, got %q", buf.String())
	}
}

func TestErrorUnmatchedPartialToken(t *testing.T) {
	_, err := expr.Tokenize("a & b")
	var buf bytes.Buffer
	if werr := Error(&buf, err, Options{}); werr != nil {
		t.Fatalf("Error: %v", werr)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "error[UnmatchedPartialToken]:") {
		t.Errorf("headline = %q", out)
	}
	if !strings.Contains(out, `note: "&" is followed by " "`) {
		t.Errorf("note missing: %q", out)
	}

	_, err = expr.Tokenize("|")
	buf.Reset()
	_ = Error(&buf, err, Options{})
	if !strings.Contains(buf.String(), "end of input") {
		t.Errorf("note missing end of input: %q", buf.String())
	}
}

func TestErrorOtherKinds(t *testing.T) {
	var buf bytes.Buffer
	_ = Error(&buf, types.NewVariableIdentifierNotFound("x"), Options{})
	if !strings.HasPrefix(buf.String(), "error[VariableIdentifierNotFound]:") || strings.Contains(buf.String(), "note:") {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	_ = Error(&buf, errors.New("boom"), Options{})
	if buf.String() != "error: boom\n" {
		t.Errorf("got %q", buf.String())
	}
}
