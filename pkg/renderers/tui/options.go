package tui

import (
	"github.com/fatih/color"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

// DefaultMaxAttempts bounds how many times Run submits before giving up.
const DefaultMaxAttempts = 3

// Theme colours the lines printed between prompts. A nil colour prints plain
// text.
type Theme struct {
	ErrorPrefix string
	Error       *color.Color
	Success     *color.Color
	Notice      *color.Color
}

// DefaultTheme prints errors in red, success in green and notices in yellow.
func DefaultTheme() Theme {
	return Theme{
		ErrorPrefix: "  ✗ ",
		Error:       color.New(color.FgRed),
		Success:     color.New(color.FgGreen, color.Bold),
		Notice:      color.New(color.FgYellow),
	}
}

// PlainTheme disables colours.
func PlainTheme() Theme {
	return Theme{ErrorPrefix: "  - "}
}

func (t Theme) errorLine(msg string) string {
	return paint(t.Error, t.ErrorPrefix+msg)
}

func (t Theme) successLine(msg string) string {
	return paint(t.Success, msg)
}

func (t Theme) noticeLine(msg string) string {
	return paint(t.Notice, msg)
}

func paint(c *color.Color, msg string) string {
	if c == nil {
		return msg
	}
	return c.Sprint(msg)
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithMaxAttempts sets how many submits Run performs before returning
// ErrAttemptsExhausted. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithTheme applies colours and prefixes to printed messages.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLocalizer sets the translator used for labels and status lines.
func WithLocalizer(loc i18n.Localizer) Option {
	return func(r *Renderer) {
		r.loc = loc
	}
}
