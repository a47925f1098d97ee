package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSettings(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		wantValid bool
		wantText  string
	}{
		{"empty file uses defaults", "", true, "Listen: localhost:8080"},
		{"fixed seed", "[game]\nseed = 7\n", true, "Fixed seed: 7"},
		{"ngrok", "[ngrok]\nenabled = true\ndomain = \"cards.example.com\"\n", true, "ngrok: cards.example.com"},
		{"bad port", "[server]\nport = 0\n", false, "port"},
		{"unknown key", "[server]\nhots = \"x\"\n", false, "hots"},
		{"syntax error", "[server\n", false, ""},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, dir, fmt.Sprintf("case%d.toml", i), tt.content)
			result := validateFile(path)

			if result.Valid != tt.wantValid {
				t.Fatalf("Expected valid=%v, got %v: %v", tt.wantValid, result.Valid, result.Messages)
			}
			if tt.wantText != "" && !strings.Contains(strings.Join(result.Messages, "\n"), tt.wantText) {
				t.Errorf("Expected %q in %v", tt.wantText, result.Messages)
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "good.toml", "[server]\nport = 9000\n")

	var out bytes.Buffer
	ok, err := validateDir(&out, dir)
	if err != nil || !ok {
		t.Fatalf("Expected valid dir, got ok=%v err=%v\n%s", ok, err, out.String())
	}
	if !strings.Contains(out.String(), "All settings files are valid") {
		t.Errorf("Unexpected report:\n%s", out.String())
	}

	writeSettings(t, dir, "bad.toml", "[sessions]\nttl = \"-5m\"\n")
	out.Reset()
	ok, err = validateDir(&out, dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Error("Expected an invalid file to fail the directory")
	}
	if !strings.Contains(out.String(), "bad.toml") || !strings.Contains(out.String(), "❌ INVALID") {
		t.Errorf("Unexpected report:\n%s", out.String())
	}
}

func TestValidateDirEmptyAndMissing(t *testing.T) {
	var out bytes.Buffer
	ok, err := validateDir(&out, t.TempDir())
	if err != nil || !ok {
		t.Errorf("Empty dir should be valid, got ok=%v err=%v", ok, err)
	}

	if _, err := validateDir(&out, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
