// Package ui holds the terminal styling shared by the commands.
package ui

import (
	"github.com/pterm/pterm"
)

func Green(a any) string {
	return pterm.Green(a)
}

func Cyan(a any) string {
	return pterm.Cyan(a)
}

// Highlight renders a in bold.
func Highlight(a any) string {
	return pterm.Bold.Sprint(a)
}
