// Package themes defines the color schemes for the terminal form.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Label          lipgloss.Style
	FocusedLabel   lipgloss.Style
	Value          lipgloss.Style
	Muted          lipgloss.Style
	Button         lipgloss.Style
	FocusedButton  lipgloss.Style
	ResultBox      lipgloss.Style
	StatusError    lipgloss.Style
	StatusPending  lipgloss.Style
	RiskHigh       lipgloss.Style
	RiskLow        lipgloss.Style
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style
	Primary        lipgloss.Color
	Border         lipgloss.Color
}

func newTheme(primary, secondary, success, warning, danger, info, fg, muted, border lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Border:  border,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(20),
		FocusedLabel: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Width(20),
		Value: lipgloss.NewStyle().
			Foreground(fg),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Button: lipgloss.NewStyle().
			Foreground(fg).
			Background(border).
			Padding(0, 2),
		FocusedButton: lipgloss.NewStyle().
			Foreground(fg).
			Background(primary).
			Bold(true).
			Padding(0, 2),
		ResultBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 2).
			MarginRight(2),

		StatusError: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(secondary).
			Italic(true),

		RiskHigh: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),
		RiskLow: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),

		PriorityHigh: lipgloss.NewStyle().
			Foreground(danger),
		PriorityMedium: lipgloss.NewStyle().
			Foreground(warning),
		PriorityLow: lipgloss.NewStyle().
			Foreground(info),
	}
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#7c3aed"), // primary
	lipgloss.Color("#a78bfa"), // secondary
	lipgloss.Color("#10b981"), // success
	lipgloss.Color("#f59e0b"), // warning
	lipgloss.Color("#ef4444"), // error
	lipgloss.Color("#3b82f6"), // info
	lipgloss.Color("#fafafa"), // foreground
	lipgloss.Color("#737373"), // muted
	lipgloss.Color("#404040"), // border
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#f5c2e7"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#89dceb"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
