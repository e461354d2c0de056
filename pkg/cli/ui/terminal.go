// Package ui holds terminal helpers shared by the commands.
package ui

import (
	"fmt"
	"io"

	"github.com/saasfoundry/sf/pkg/utils/notify"
)

// SetTerminalTitle sets the window title of the terminal behind out.
// Nothing is written when out is not a terminal.
func SetTerminalTitle(out io.Writer, title string) {
	if !notify.IsTerminal(out) {
		return
	}

	// OSC 0 sets icon name and window title, BEL terminates it.
	_, _ = fmt.Fprintf(out, "\033]0;%s\007", title)
}
