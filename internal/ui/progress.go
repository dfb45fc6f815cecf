package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/cirrus/internal/engine"
)

// maxKeyWidth bounds how much of a long key the progress line shows.
const maxKeyWidth = 60

var (
	okMark    = color.New(color.FgGreen).Sprint("✓")
	skipMark  = color.New(color.FgHiBlack).Sprint("⊘")
	dryMark   = color.New(color.FgYellow).Sprint("→")
	errMark   = color.New(color.FgRed).Sprint("✗")
	errDetail = color.New(color.FgRed)
)

// DisplayKey shortens a key for progress output, keeping the tail since
// the filename is the interesting part.
func DisplayKey(key string) string {
	if runewidth.StringWidth(key) <= maxKeyWidth {
		return key
	}
	return "..." + runewidth.TruncateLeft(key, runewidth.StringWidth(key)-(maxKeyWidth-3), "")
}

// PrintProgress renders one "[i/N]" line for a completed outcome.
func PrintProgress(i, n int, o engine.Outcome) {
	key := DisplayKey(o.Key)
	switch o.Status {
	case engine.StatusUpdated:
		fmt.Printf("[%d/%d] %s %s\n", i, n, okMark, key)
	case engine.StatusAlreadyCorrect:
		fmt.Printf("[%d/%d] %s %s (already correct)\n", i, n, skipMark, key)
	case engine.StatusWouldUpdate:
		before := o.Before
		if before == "" {
			before = "none"
		}
		fmt.Printf("[%d/%d] %s %s (would update, current: %s)\n", i, n, dryMark, key, before)
	case engine.StatusError:
		fmt.Printf("[%d/%d] %s %s\n", i, n, errMark, key)
		errDetail.Printf("    error: %v\n", o.Err)
	}
}
