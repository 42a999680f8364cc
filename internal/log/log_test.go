// ABOUTME: Tests for the logging package
// ABOUTME: Validates level filtering, level parsing, and output redirection

package log

import (
	"bytes"
	"strings"
	"testing"
)

// Tests touching the global level or writer run sequentially.

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	saved := GetLevel()
	t.Cleanup(func() {
		restore()
		SetLevel(saved)
	})
	return &buf
}

func TestSetLevel(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}
	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Errorf("expected LevelError, got %v", GetLevel())
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelInfo)

	Debug("hidden %s", "x")
	Info("shown %d", 1)

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug line emitted at info level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[INFO] shown 1\n") {
		t.Errorf("info line missing: %q", buf.String())
	}
}

func TestAllLevelsAtDebug(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelDebug)

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	want := "[DEBUG] d\n[INFO] i\n[WARN] w\n[ERROR] e\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelError)

	Warn("quiet")
	Error("loud")

	if buf.String() != "[ERROR] loud\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSetOutputRestore(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)
	SetLevel(LevelInfo)

	var outer, inner bytes.Buffer
	restoreOuter := SetOutput(&outer)
	defer restoreOuter()

	restoreInner := SetOutput(&inner)
	Info("one")
	restoreInner()
	Info("two")

	if inner.String() != "[INFO] one\n" || outer.String() != "[INFO] two\n" {
		t.Errorf("inner=%q outer=%q", inner.String(), outer.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "INFO"},
		{in: "debug", want: "DEBUG"},
		{in: " WARN ", want: "WARN"},
		{in: "warning", want: "WARN"},
		{in: "error", want: "ERROR"},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %s", tt.in, got, tt.want)
			}
		})
	}
}
