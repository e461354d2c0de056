package bringup

import (
	"fmt"
	"io"
	"strings"

	fcolor "github.com/fatih/color"
)

const bannerWidth = 80

// PrintBanner writes the closing congratulations for project name.
func PrintBanner(out io.Writer, name string) {
	rule := strings.Repeat("=", bannerWidth)
	green := fcolor.New(fcolor.FgGreen)
	blue := fcolor.New(fcolor.FgBlue)
	magenta := fcolor.New(fcolor.FgMagenta)

	_, _ = fmt.Fprintln(out)
	_, _ = green.Fprintln(out, rule)
	_, _ = green.Fprintf(out, "🚀 Congratulations! Your project %q has been successfully set up by SaaSFoundry!\n", name)
	_, _ = blue.Fprintln(out, "🌍 It's now ready to become the next SaaS that will conquer the world!")
	_, _ = magenta.Fprintln(out,
		`🧠 "What are we going to do tonight, Brain?" "The same thing we do every night, Pinky - try to take over the world!"`)
	_, _ = green.Fprintln(out, rule)
	_, _ = fmt.Fprintln(out)
}
