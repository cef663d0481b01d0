package cmd

import (
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runger/marks/internal/render"
)

// ANSI color codes for terminal output.
// These are initialized in init() and may be disabled on certain platforms.
var (
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorCyan   = "\033[0;36m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

// colorMode is set by --color; empty defers to ui.color.
var colorMode string

func init() {
	// Disable colors if not a terminal or on Windows without ANSI support
	if shouldDisableColors() || !isTerminal(os.Stdout.Fd()) {
		disableColors()
	}
}

func enableColors() {
	colorRed = "\033[0;31m"
	colorGreen = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorCyan = "\033[0;36m"
	colorDim = "\033[2m"
	colorBold = "\033[1m"
	colorReset = "\033[0m"
}

func disableColors() {
	colorRed = ""
	colorGreen = ""
	colorYellow = ""
	colorCyan = ""
	colorDim = ""
	colorBold = ""
	colorReset = ""
}

// applyColorMode resolves the effective color mode from --color, falling
// back to the configured mode, and updates the ANSI codes and the lipgloss
// profile used for stdout.
func applyColorMode(configured string) {
	mode := colorMode
	if mode == "" {
		mode = configured
	}
	switch mode {
	case "always":
		enableColors()
		if lipgloss.ColorProfile() == termenv.Ascii {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}
	case "never":
		disableColors()
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		if shouldDisableColors() || !isTerminal(os.Stdout.Fd()) {
			disableColors()
		} else {
			enableColors()
		}
	}
}

// textStyles returns the render palette matching the current color state.
func textStyles() render.Styles {
	if colorReset == "" {
		return render.PlainStyles()
	}
	return render.DefaultStyles()
}

func shouldDisableColors() bool {
	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return true
	}

	// Check TERM=dumb
	if os.Getenv("TERM") == "dumb" {
		return true
	}

	// On Windows, check if ANSI is supported
	if runtime.GOOS == "windows" {
		if os.Getenv("WT_SESSION") != "" {
			return false // Windows Terminal supports ANSI
		}
		if os.Getenv("TERM_PROGRAM") != "" {
			return false // Modern terminal emulator
		}
		// Disable by default on older Windows consoles
		return os.Getenv("ANSICON") == "" && os.Getenv("ConEmuANSI") != "ON"
	}

	return false
}

// termWidth returns the width of stdout, $COLUMNS, or 80.
func termWidth() int {
	if w := getTermWidthIoctl(os.Stdout.Fd()); w > 0 {
		return w
	}
	if w := columnsFromEnv(); w > 0 {
		return w
	}
	return 80
}
