package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"git.sr.ht/~petros/astro/text"
)

const footerHeight = 1

type Footer struct {
	width int
}

func (f Footer) Resize(width int) Footer {
	f.width = width
	return f
}

const footerKeys = "Go (g) Home (h) Bookmark (b) Back (←) Forward (→) Quit (q)"

// View renders the key hints and the scroll position on one line.
func (f Footer) View(scroll, histStatus string) string {
	lead := fmt.Sprintf("[%s] ", text.Color(footerKeys, text.Slink))
	tail := fmt.Sprintf("┤ %s │ %s ├", histStatus, scroll)
	gap := f.width - runewidth.StringWidth("["+footerKeys+"] ") - runewidth.StringWidth(tail)
	if gap < 0 {
		gap = 0
	}
	return lead + strings.Repeat("─", gap) + tail
}
