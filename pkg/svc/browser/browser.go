// Package browser opens URLs in the user's default browser.
package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/saasfoundry/sf/pkg/cmd/runner"
	"github.com/saasfoundry/sf/pkg/svc/platform"
)

// ErrEmptyURL is returned when Open is called without a URL.
var ErrEmptyURL = errors.New("url is required")

// Opener opens URLs with the platform's launcher.
type Opener struct {
	runner   runner.CommandRunner
	platform platform.Platform
}

// NewOpener creates an Opener for the given platform.
func NewOpener(cmdRunner runner.CommandRunner, target platform.Platform) *Opener {
	return &Opener{runner: cmdRunner, platform: target}
}

// Open launches the browser on url without waiting for it to exit.
func (o *Opener) Open(ctx context.Context, url string) error {
	if url == "" {
		return ErrEmptyURL
	}

	cmd := Command(o.platform, url)

	err := o.runner.Start(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}

	return nil
}

// Command returns the launcher invocation opening url on target.
func Command(target platform.Platform, url string) runner.Command {
	switch target {
	case platform.Darwin:
		return runner.Command{Name: "open", Args: []string{url}}
	case platform.Windows:
		return runner.Command{Name: "cmd.exe", Args: []string{"/C", "start", "", url}}
	case platform.WSL:
		return runner.Command{Name: "wslview", Args: []string{url}}
	case platform.Linux:
		return runner.Command{Name: "xdg-open", Args: []string{url}}
	default:
		return runner.Command{Name: "xdg-open", Args: []string{url}}
	}
}
