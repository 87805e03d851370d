// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for Lightbox's terminal UI. All
// colors are ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Accent marks the focused input and the scrollbar thumb.
	Accent lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Owner is the color of photo owner IDs in the list.
	Owner lipgloss.Color

	// Status bar severities.
	ErrorForeground lipgloss.Color
	WarnForeground  lipgloss.Color

	// Modal box.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
	LinkForeground  lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	Accent: lipgloss.Color("220"), // amber

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Owner: lipgloss.Color("141"), // light purple

	ErrorForeground: lipgloss.Color("196"),
	WarnForeground:  lipgloss.Color("208"),

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"),
	LinkForeground:  lipgloss.Color("75"),
}
