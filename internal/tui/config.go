package tui

import (
	"github.com/Veraticus/churn/internal/model"
	"github.com/Veraticus/churn/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Initial        model.CustomerData
	Width          int
	Height         int
	CreditScoreMax int
	ShowHelp       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Initial:        model.DefaultCustomer(),
		Width:          100,
		Height:         40,
		CreditScoreMax: model.DefaultCreditScoreMax,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithCreditScoreMax sets the upper bound of the credit score input.
// Zero or less leaves it unbounded.
func WithCreditScoreMax(limit int) Option {
	return func(c *Config) {
		c.CreditScoreMax = limit
	}
}

// WithInitial sets the values the form starts with and resets to.
func WithInitial(customer model.CustomerData) Option {
	return func(c *Config) {
		c.Initial = customer
	}
}

// WithHelp shows the full key help on start.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
