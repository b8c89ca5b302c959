package ui

import (
	"strings"

	"github.com/common-nighthawk/go-figure"
)

// Banner renders text as large ASCII art, colored as a warning.
func Banner(text string) string {
	art := figure.NewFigure(text, "standard", true).String()
	art = strings.TrimRight(art, "\n")
	if NoColor() {
		return art + "\n"
	}
	return Warning.color.Sprint(art) + "\n"
}
