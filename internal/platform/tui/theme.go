package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// Theme contains all configurable visual styles.
type Theme struct {
	// Palette maps screen colors to terminal styles.
	Palette map[core.Color]lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuBadge       lipgloss.Style

	// Panel frames the scoreboard table.
	Panel    lipgloss.Style
	HelpText lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: map[core.Color]lipgloss.Style{
			core.ColorDefault:      lipgloss.NewStyle(),
			core.ColorRed:          fg("1"),
			core.ColorGreen:        fg("2"),
			core.ColorYellow:       fg("3"),
			core.ColorBlue:         fg("4"),
			core.ColorMagenta:      fg("5"),
			core.ColorCyan:         fg("6"),
			core.ColorWhite:        fg("7"),
			core.ColorBrightRed:    fg("9").Bold(true),
			core.ColorBrightGreen:  fg("10").Bold(true),
			core.ColorBrightYellow: fg("11").Bold(true),
			core.ColorBrightBlue:   fg("12").Bold(true),
			core.ColorBrightWhite:  fg("15").Bold(true),
			core.ColorOrange:       fg("208"),
			core.ColorBrown:        fg("130"),
			core.ColorGray:         fg("245"),
			core.ColorDarkGray:     fg("238"),
		},

		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuItemLocked:  fg("240"),
		MenuDescription: fg("245"),
		MenuBadge:       fg("208"),

		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		HelpText: fg("241"),
	}
}

// NeonTheme returns a neon-style theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.Palette[core.ColorRed] = fg("199")
	theme.Palette[core.ColorGreen] = fg("118")
	theme.Palette[core.ColorBlue] = fg("87")
	theme.Palette[core.ColorYellow] = fg("227")
	theme.MenuTitle = fg("199").Bold(true)
	theme.Panel = theme.Panel.BorderForeground(lipgloss.Color("99"))
	return theme
}

// MonochromeTheme returns a grayscale theme. Cube colors differ by shade.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Palette[core.ColorRed] = fg("255")
	theme.Palette[core.ColorGreen] = fg("250")
	theme.Palette[core.ColorBlue] = fg("245")
	theme.Palette[core.ColorYellow] = fg("240")
	theme.Palette[core.ColorOrange] = fg("255").Bold(true)
	theme.MenuTitle = fg("255").Bold(true)
	theme.MenuItemActive = fg("255").Bold(true)
	return theme
}

// ThemeNames lists the names accepted by ThemeByName.
func ThemeNames() []string {
	return []string{"default", "neon", "mono"}
}

// ThemeByName returns a theme by name. Empty selects the default.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "neon":
		return NeonTheme(), nil
	case "mono":
		return MonochromeTheme(), nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want one of %v)", name, ThemeNames())
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
