package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrAttemptsExhausted is returned when the form is still invalid after the
	// configured number of submit attempts.
	ErrAttemptsExhausted = errors.New("tui: submit attempts exhausted")
)
