package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lemonberrylabs/evalexpr/pkg/wire"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	for _, k := range []string{"HOST", "PORT", "GRPC_PORT", "EVALEXPR_COLOR", "EVALEXPR_MAX_INPUT"} {
		t.Setenv(k, "")
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestTokenizePretty(t *testing.T) {
	out, _, err := execute(t, "", "tokenize", "1 + x")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[4], "Identifier") {
		t.Errorf("last line = %q", lines[4])
	}
}

func TestTokenizeFromStdin(t *testing.T) {
	out, _, err := execute(t, "a && b\n", "tokenize", "--format", "json")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var res wire.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if !res.OK || len(res.Tokens) != 5 {
		t.Errorf("got %+v, want 5 tokens without a trailing newline token", res)
	}
}

func TestTokenizeFailure(t *testing.T) {
	out, errOut, err := execute(t, "", "tokenize", "a = b")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	if !strings.Contains(errOut, "error[UnmatchedPartialToken]") {
		t.Errorf("stderr = %q", errOut)
	}

	out, _, err = execute(t, "", "tokenize", "--format", "json", "&")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	var res wire.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.OK || res.Error == nil || res.Error.Kind != "UnmatchedPartialToken" {
		t.Errorf("got %+v", res)
	}
}

func TestTokenizeMsgpack(t *testing.T) {
	out, _, err := execute(t, "", "tokenize", "--format", "msgpack", "x >= 1")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	res, err := wire.DecodeMsgpack(strings.NewReader(out))
	if err != nil {
		t.Fatalf("DecodeMsgpack: %v", err)
	}
	if !res.OK || len(res.Tokens) != 5 || res.Tokens[2].Kind != "Geq" {
		t.Errorf("got %+v", res)
	}
}

func TestTokenizeUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "", "tokenize", "--format", "xml", "1")
	if err == nil || errors.Is(err, errReported) {
		t.Fatalf("err = %v, want unknown format error", err)
	}
}

func TestColorFlag(t *testing.T) {
	out, _, err := execute(t, "", "--color", "on", "tokenize", "1")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected colored output, got %q", out)
	}

	if _, _, err := execute(t, "", "--color", "sometimes", "tokenize", "1"); err == nil {
		t.Error("expected error for invalid color mode")
	}
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evalexpr.toml")
	if err := os.WriteFile(path, []byte("color = \"on\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "", "--config", path, "tokenize", "1")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("config color=on not applied: %q", out)
	}
}
