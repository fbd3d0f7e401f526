package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HOST", "PORT", "GRPC_PORT", "EVALEXPR_COLOR", "EVALEXPR_MAX_INPUT"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
	if cfg.HTTPAddr() != "0.0.0.0:8787" || cfg.GRPCAddr() != "0.0.0.0:8788" {
		t.Errorf("addrs = %s, %s", cfg.HTTPAddr(), cfg.GRPCAddr())
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "evalexpr.yaml", `
http:
  host: 127.0.0.1
  port: 9000
grpc:
  port: 9001
color: "off"
max_input_bytes: 128
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{HTTP: HTTP{Host: "127.0.0.1", Port: 9000}, GRPC: GRPC{Port: 9001}, Color: ColorOff, MaxInputBytes: 128}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "evalexpr.toml", `
color = "on"

[http]
port = 8000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Color != ColorOn || cfg.HTTP.Port != 8000 {
		t.Errorf("got %+v", cfg)
	}
	if cfg.HTTP.Host != "0.0.0.0" || cfg.GRPC.Port != 8788 {
		t.Errorf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "evalexpr.yml", "http:\n  port: 9000\n")
	t.Setenv("PORT", "9500")
	t.Setenv("EVALEXPR_COLOR", "off")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9500 || cfg.Color != ColorOff {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(writeFile(t, "evalexpr.json", "{}")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "http: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}
	if _, err := Load(writeFile(t, "color.yaml", "color: rainbow\n")); err == nil {
		t.Error("expected error for invalid color")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	t.Setenv("GRPC_PORT", "not-a-number")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric GRPC_PORT")
	}
}
