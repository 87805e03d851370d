// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photoui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/lightbox-labs/lightbox/lib/tui"
)

// searchPrompt precedes the search text on the first screen row.
const searchPrompt = "Search: "

// SearchBox is the single-line search field. It holds raw text only;
// trimming and the minimum length are the normalizer's business.
type SearchBox struct {
	Text string

	// Active is true when the field has keyboard focus.
	Active bool
}

// HandleRune appends a typed character. Returns true if the text
// changed.
func (search *SearchBox) HandleRune(character rune) bool {
	search.Text += string(character)
	return true
}

// HandleBackspace removes the last character. Returns true if the text
// changed.
func (search *SearchBox) HandleBackspace() bool {
	if len(search.Text) == 0 {
		return false
	}
	runes := []rune(search.Text)
	search.Text = string(runes[:len(runes)-1])
	return true
}

// View renders the field in at most width columns. When the text does
// not fit, its tail stays visible so the cursor never scrolls away.
func (search *SearchBox) View(theme tui.Theme, width int) string {
	promptStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	textStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	cursor := ""
	if search.Active {
		promptStyle = promptStyle.Foreground(theme.Accent).Bold(true)
		cursor = lipgloss.NewStyle().Foreground(theme.Accent).Render("▎")
	}

	available := width - ansi.StringWidth(searchPrompt) - 1
	text := search.Text
	if overflow := ansi.StringWidth(text) - available; overflow > 0 && available > 0 {
		text = "…" + ansi.TruncateLeft(text, overflow+1, "")
	}
	if text == "" && !search.Active {
		return promptStyle.Render(searchPrompt) +
			lipgloss.NewStyle().Foreground(theme.HelpText).Render("press / to search")
	}
	return promptStyle.Render(searchPrompt) + textStyle.Render(text) + cursor
}
