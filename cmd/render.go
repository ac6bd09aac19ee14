package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/joker"
	"github.com/arcanaland/rummy/internal/validator"
)

// trueColor is set when the terminal can take 24-bit escape codes.
var trueColor bool

// setupColor turns colors off when stdout is not a terminal or the user
// asked for plain output.
func setupColor(disabled bool) {
	isTerm := term.IsTerminal(int(os.Stdout.Fd()))
	colorize.NoColor = disabled || !isTerm || os.Getenv("NO_COLOR") != ""
	trueColor = !colorize.NoColor
}

var (
	redCard   = colorize.New(colorize.FgHiRed, colorize.Bold)
	blackCard = colorize.New(colorize.FgHiWhite, colorize.Bold)
	jokerCard = colorize.New(colorize.FgHiYellow, colorize.Bold, colorize.Underline)
	label     = colorize.New(colorize.FgCyan)
)

// cardString renders a card in short notation, colored by suit, with
// jokers marked.
func cardString(c card.Card, d joker.Designation) string {
	text := c.DisplayRank() + c.DisplaySuit()
	switch {
	case d.IsJoker(c):
		return jokerCard.Sprint(text + "*")
	case c.Suit.Red():
		return redCard.Sprint(text)
	default:
		return blackCard.Sprint(text)
	}
}

func cardsString(cards []card.Card, d joker.Designation) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = cardString(c, d)
	}
	return strings.Join(parts, " ")
}

func meldString(m validator.Meld, d joker.Designation) string {
	kind := m.Kind.String()
	if m.Tanala {
		kind = "tanala"
	}
	if m.Pure && m.Kind != validator.PureRun {
		kind += " (pure)"
	}
	return fmt.Sprintf("%-16s %s", kind, cardsString(m.Cards, d))
}

// terminalWidth returns the width of stdout, or 80 when unknown.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// visibleWidth is the number of terminal cells s takes once colors are
// stripped.
func visibleWidth(s string) int {
	return runewidth.StringWidth(pterm.RemoveColorFromString(s))
}

// printWrapped writes cards after a label, wrapping at the terminal width
// with continuation lines indented under the first card.
func printWrapped(w io.Writer, title string, cards []card.Card, d joker.Designation) {
	prefix := label.Sprint(title)
	indent := strings.Repeat(" ", visibleWidth(prefix))
	width := terminalWidth()

	line := prefix
	lineWidth := visibleWidth(prefix)
	first := true
	for _, c := range cards {
		s := cardString(c, d)
		sw := visibleWidth(s)
		if !first && lineWidth+1+sw > width {
			fmt.Fprintln(w, line)
			line, lineWidth = indent, len(indent)
			first = true
		}
		if !first {
			line += " "
			lineWidth++
		}
		line += s
		lineWidth += sw
		first = false
	}
	fmt.Fprintln(w, line)
}

// scoreColor shades a keep score from red (discard) to green (keep) on a
// perceptual blend.
func scoreColor(score, lo, hi float64) colorful.Color {
	bad, _ := colorful.Hex("#d7263d")
	good, _ := colorful.Hex("#2ec4b6")
	t := 0.5
	if hi > lo {
		t = (score - lo) / (hi - lo)
	}
	t = max(0, min(1, t))
	return bad.BlendHcl(good, t).Clamped()
}

// ansiColorString formats text with a 24-bit foreground color.
func ansiColorString(text string, c colorful.Color) string {
	if !trueColor {
		return text
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, text)
}
