package ui

import "github.com/fatih/color"

// Styling helpers for operator-facing output. Color is dropped automatically
// when output is not a terminal or NO_COLOR is set.
var (
	Bold    = color.New(color.Bold).SprintFunc()
	Success = color.New(color.FgGreen).SprintFunc()
	Info    = color.New(color.FgCyan).SprintFunc()
	Warn    = color.New(color.FgYellow).SprintFunc()
	Error   = color.New(color.FgRed).SprintFunc()
	Dim     = color.New(color.Faint).SprintFunc()
	Heading = color.New(color.Bold, color.FgCyan).SprintFunc()
)
