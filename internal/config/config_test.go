package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("PONG_TEST_VALUE", "set")
	if got := GetEnv("PONG_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv() = %q, want set", got)
	}
	if got := GetEnv("PONG_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, want fallback", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"on", false, true},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Setenv("PONG_TEST_BOOL", tt.value)
		if got := GetEnvBool("PONG_TEST_BOOL", tt.fallback); got != tt.want {
			t.Errorf("GetEnvBool(%q, %v) = %v, want %v", tt.value, tt.fallback, got, tt.want)
		}
	}
	if !GetEnvBool("PONG_TEST_BOOL_MISSING", true) {
		t.Errorf("unset variable did not return fallback")
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("PONG_TEST_LIST", " https://a.example, ,https://b.example ")
	got := GetEnvList("PONG_TEST_LIST")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("GetEnvList() = %q", got)
	}
	if got := GetEnvList("PONG_TEST_LIST_MISSING"); got != nil {
		t.Errorf("GetEnvList() on unset = %q, want nil", got)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "session", "abc")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line passed a warn logger: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "session=abc") || !strings.Contains(out, "pong") {
		t.Errorf("warn line = %q", out)
	}

	if _, err := NewLogger(&buf, "loud"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}

	def, err := NewLogger(&buf, "")
	if err != nil {
		t.Fatal(err)
	}
	if def.GetLevel() != log.InfoLevel {
		t.Errorf("default level = %v, want info", def.GetLevel())
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("PONG_DOTENV_A=from-file\nPONG_DOTENV_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PONG_DOTENV_B", "from-env")
	// Registers A for restoration; Load only sets it if it is unset.
	t.Setenv("PONG_DOTENV_A", "")
	os.Unsetenv("PONG_DOTENV_A")

	if err := LoadDotEnv(nil, filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() = %v", err)
	}
	if got := os.Getenv("PONG_DOTENV_A"); got != "from-file" {
		t.Errorf("PONG_DOTENV_A = %q, want from-file", got)
	}
	if got := os.Getenv("PONG_DOTENV_B"); got != "from-env" {
		t.Errorf("PONG_DOTENV_B = %q, want the existing value", got)
	}
}
