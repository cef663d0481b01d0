//go:build windows

package cmd

import (
	"errors"
	"os"
)

// getTermWidthIoctl returns 0 on Windows; width detection falls back to $COLUMNS.
func getTermWidthIoctl(fd uintptr) int {
	return 0
}

// isTerminal assumes a console on Windows; NO_COLOR and TERM still apply.
func isTerminal(fd uintptr) bool {
	return true
}

// openTTY is unsupported on Windows.
func openTTY() (*os.File, error) {
	return nil, errors.New("interactive mode needs a Unix terminal; use 'marks search'")
}
