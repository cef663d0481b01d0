package cmd

import (
	"testing"
)

func TestApplyColorMode_Always(t *testing.T) {
	origMode := colorMode
	origRed := colorRed
	t.Cleanup(func() {
		colorMode = origMode
		colorRed = origRed
	})

	// Force disable first
	disableColors()
	if colorRed != "" {
		t.Fatal("expected colors disabled")
	}

	colorMode = "always"
	applyColorMode("never")

	if colorRed == "" {
		t.Error("--color=always should win over the configured mode")
	}
}

func TestApplyColorMode_Never(t *testing.T) {
	origMode := colorMode
	origRed := colorRed
	t.Cleanup(func() {
		colorMode = origMode
		colorRed = origRed
	})

	enableColors()
	colorMode = ""
	applyColorMode("never")

	if colorRed != "" {
		t.Error("configured ui.color=never should disable colors")
	}
	if textStyles().Title.Render("x") != "x" {
		t.Error("plain styles expected when colors are disabled")
	}
}

func TestApplyColorMode_Auto(t *testing.T) {
	origMode := colorMode
	origRed := colorRed
	t.Cleanup(func() {
		colorMode = origMode
		colorRed = origRed
	})

	colorMode = "auto"
	applyColorMode("always")

	// In test, stdout is a pipe, so auto should disable colors
	if colorRed != "" {
		t.Error("--color=auto should disable colors when stdout is not a TTY")
	}
}

func TestShouldDisableColors_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !shouldDisableColors() {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestTermWidth_Columns(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	// stdout is not a terminal under go test, so $COLUMNS wins.
	if got := termWidth(); got != 132 {
		t.Errorf("termWidth() = %d, want 132", got)
	}

	t.Setenv("COLUMNS", "bogus")
	if got := termWidth(); got != 80 {
		t.Errorf("termWidth() = %d, want 80", got)
	}
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"  rust  ", "rust", false},
		{"ru\x1bst", "rust", false},
		{"a\tb", "a b", false},
		{"line\nbreak", "", true},
	}
	for _, tt := range tests {
		got, err := sanitizeQuery(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("sanitizeQuery(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("sanitizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := make([]byte, maxQueryLen+10)
	for i := range long {
		long[i] = 'a'
	}
	got, err := sanitizeQuery(string(long))
	if err != nil || len(got) != maxQueryLen {
		t.Errorf("sanitizeQuery(long) len = %d, err = %v", len(got), err)
	}
}
