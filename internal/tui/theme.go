package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The TUI must stay readable on both light and dark terminal backgrounds, so
// colors are adaptive and "faint" is only applied on dark backgrounds (faint
// on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceBg  lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorControlBg  lipgloss.TerminalColor = ac("252", "238")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorErrorFg    lipgloss.TerminalColor = ac("160", "203")
	colorOKFg       lipgloss.TerminalColor = ac("28", "42")
	colorWarnFg     lipgloss.TerminalColor = ac("130", "214")
	colorAccentFg   lipgloss.TerminalColor = ac("26", "39")
)

func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	if lipgloss.HasDarkBackground() {
		st = st.Faint(true)
	}
	return st
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

func styleOK() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorOKFg)
}

func styleWarn() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorWarnFg)
}

func styleTabActive() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true).
		Padding(0, 1)
}

func styleTab() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
}

// hasColor reports whether the terminal supports color at all; plain
// monochrome terminals skip recommendation badges.
func hasColor() bool {
	return termenv.ColorProfile() != termenv.Ascii
}
