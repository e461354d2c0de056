// Package platform identifies the desktop environment sf runs on.
package platform

import (
	"os"
	"runtime"
)

// Platform names a family of desktop environments with the same launch conventions.
type Platform string

const (
	// Darwin is macOS.
	Darwin Platform = "darwin"
	// Windows is native Windows.
	Windows Platform = "windows"
	// WSL is Linux running under the Windows Subsystem for Linux.
	WSL Platform = "wsl"
	// Linux is any other Linux or Unix desktop.
	Linux Platform = "linux"
)

// WSLDistroEnv is set by WSL in every Linux process it starts.
const WSLDistroEnv = "WSL_DISTRO_NAME"

// Detect maps an operating system name and environment lookup to a Platform.
func Detect(goos string, getenv func(string) string) Platform {
	switch goos {
	case "darwin":
		return Darwin
	case "windows":
		return Windows
	case "linux":
		if getenv != nil && getenv(WSLDistroEnv) != "" {
			return WSL
		}

		return Linux
	default:
		return Linux
	}
}

// Current returns the Platform of the running process.
func Current() Platform {
	return Detect(runtime.GOOS, os.Getenv)
}
