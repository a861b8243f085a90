package cmd

import (
	"fmt"

	"github.com/fatih/color"
)

const headerRule = "════════════════════════════════════════════════════════════"

// printHeader prints a section banner in the style used across commands.
func printHeader(title string) {
	fmt.Println()
	color.Cyan(headerRule)
	color.Cyan("  %s", title)
	color.Cyan(headerRule)
	fmt.Println()
}
