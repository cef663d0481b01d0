//go:build !windows

package cmd

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// getTermWidthIoctl returns the terminal width via ioctl, or 0 if unavailable.
func getTermWidthIoctl(fd uintptr) int {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 0
	}
	return int(ws.Col)
}

// isTerminal reports whether fd refers to a terminal.
func isTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	return err == nil
}

// openTTY opens the controlling terminal for the interactive view, so
// stdout stays free for the chosen URL.
func openTTY() (*os.File, error) {
	if os.Getenv("TERM") == "dumb" {
		return nil, fmt.Errorf("TERM=dumb is not supported")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("no TTY available: %w", err)
	}
	if w := getTermWidthIoctl(tty.Fd()); w > 0 && w < minTermWidth {
		tty.Close()
		return nil, fmt.Errorf("terminal too narrow (%d columns, need at least %d)", w, minTermWidth)
	}
	return tty, nil
}
