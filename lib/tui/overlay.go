// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines, the first placed at (anchorX, anchorY). Escape
// sequences in the view survive on both sides of the overlay.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}
		viewLine := viewLines[row]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
			// A short line leaves a gap before the anchor.
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				result.WriteString(strings.Repeat(" ", gap))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}
		viewLines[row] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// CenterOverlay splices overlayLines into the middle of a view that
// is width columns by height rows.
func CenterOverlay(view string, overlayLines []string, width, height int) string {
	if len(overlayLines) == 0 {
		return view
	}
	overlayWidth := ansi.StringWidth(overlayLines[0])
	anchorX := max((width-overlayWidth)/2, 0)
	anchorY := max((height-len(overlayLines))/2, 0)
	return SpliceOverlay(view, overlayLines, anchorX, anchorY)
}

// RenderBox draws a bordered box innerWidth columns wide around a
// title and body lines, returning one string per screen row. Body
// lines wider than the box are truncated with an ellipsis.
func RenderBox(theme Theme, title string, body []string, innerWidth int) []string {
	background := lipgloss.NewStyle().Background(theme.ModalBackground)
	border := background.Foreground(theme.BorderColor)
	text := background.Foreground(theme.ModalForeground)
	heading := text.Bold(true)

	horizontal := strings.Repeat("─", innerWidth+2)
	lines := []string{border.Render("╭" + horizontal + "╮")}
	row := func(content string, style lipgloss.Style) {
		content = Truncate(content, innerWidth)
		lines = append(lines, border.Render("│")+
			PadOverlayLine(style.Render(content), innerWidth, innerWidth+2, background)+
			border.Render("│"))
	}
	row(title, heading)
	row("", text)
	for _, line := range body {
		row(line, text)
	}
	lines = append(lines, border.Render("╰"+horizontal+"╯"))
	return lines
}

// PadOverlayLine pads styled content to innerWidth and adds one
// column of background on each side, for totalWidth = innerWidth+2.
func PadOverlayLine(styledContent string, innerWidth, totalWidth int, backgroundStyle lipgloss.Style) string {
	rightPad := max(innerWidth-ansi.StringWidth(styledContent), 0)
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+totalWidth-innerWidth-1))
}

// Truncate shortens text to width display columns, marking the cut
// with an ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
