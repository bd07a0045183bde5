// Package ui holds terminal presentation helpers shared by the report and
// list commands.
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme switches the palette to the brighter variants that stay
// readable on dark terminal backgrounds.
var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Blue(a any) string {
	if DarkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}
