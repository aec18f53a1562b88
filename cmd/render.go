package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	colorize "github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

var (
	redCard   = colorize.New(colorize.FgRed, colorize.Bold)
	blackCard = colorize.New(colorize.FgHiWhite, colorize.Bold)
	heading   = colorize.New(colorize.FgCyan)
	dim       = colorize.New(colorize.Faint)
)

// terminalWidth returns the width of w if it is a terminal
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80 // Default if we can't get terminal width
}

// cardLabel returns the coloured short label of a card
func cardLabel(c card.Card) string {
	if c.Suit.Red() {
		return redCard.Sprint(c.Short())
	}
	return blackCard.Sprint(c.Short())
}

// renderBoard draws the piles of a snapshot, one pile per line
func renderBoard(w io.Writer, snap board.Snapshot, width int) {
	if len(snap.Piles) == 0 {
		fmt.Fprintln(w, "No cards on the table. Type 'deal' to start.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading.Sprint("Foundations"))
	for _, p := range snap.Piles {
		if p.Kind.Kind != board.KindFoundation {
			continue
		}
		var hint string
		if p.Next != nil {
			hint = dim.Sprintf("next %s", p.Next.Short())
		} else {
			hint = dim.Sprint("complete")
		}
		top := dim.Sprint("empty")
		if n := len(p.Cards); n > 0 {
			top = cardLabel(p.Cards[n-1])
		}
		fmt.Fprintf(w, "  %-8s %2d/13  top %s  %s\n", p.ID, len(p.Cards), top, hint)
	}

	fmt.Fprintln(w, heading.Sprint("Tableau"))
	for _, p := range snap.Piles {
		if p.Kind.Kind == board.KindTableau {
			writePile(w, string(p.ID), p.Cards, width)
		}
	}

	fmt.Fprintln(w, heading.Sprint("Utility"))
	for _, p := range snap.Piles {
		if p.Kind.Kind == board.KindUtility {
			writePile(w, string(p.ID), p.Cards, width)
		}
	}
	fmt.Fprintf(w, "  %-8s %d\n", "undealt", snap.Undealt)
	fmt.Fprintln(w)
}

// writePile prints a labelled pile, wrapping cards to the width
func writePile(w io.Writer, label string, cards []card.Card, width int) {
	prefix := fmt.Sprintf("  %-8s ", label)
	if len(cards) == 0 {
		fmt.Fprintln(w, prefix+dim.Sprint("-"))
		return
	}

	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = cardLabel(c)
	}

	for i, line := range wrapLabels(labels, width-len(prefix)) {
		if i == 0 {
			fmt.Fprintln(w, prefix+line)
		} else {
			fmt.Fprintln(w, strings.Repeat(" ", len(prefix))+line)
		}
	}
}

// wrapLabels joins labels with spaces into lines no wider than width,
// measuring the visible width only
func wrapLabels(labels []string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	var result []string
	var current string
	currentWidth := 0

	for _, l := range labels {
		lw := visibleWidth(l)
		if currentWidth == 0 {
			current, currentWidth = l, lw
		} else if currentWidth+1+lw <= width {
			current += " " + l
			currentWidth += 1 + lw
		} else {
			result = append(result, current)
			current, currentWidth = l, lw
		}
	}
	if currentWidth > 0 {
		result = append(result, current)
	}
	return result
}

// visibleWidth counts the runes of s outside ANSI escape sequences
func visibleWidth(s string) int {
	return utf8.RuneCountInString(stripAnsi(s))
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
