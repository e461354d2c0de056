package terminal

import (
	"strings"

	"github.com/saasfoundry/sf/pkg/svc/platform"
)

// Placeholders substituted in Strategy argv templates.
const (
	// DirPlaceholder is the absolute directory.
	DirPlaceholder = "{dir}"
	// ScriptPlaceholder is the shell script changing into the directory and running the command.
	ScriptPlaceholder = "{script}"
	// AppleScriptPlaceholder is the script escaped for an AppleScript string literal.
	AppleScriptPlaceholder = "{applescript}"
)

// Shell selects how a script is assembled.
type Shell int

const (
	// Posix joins steps with "; " after a quoted cd.
	Posix Shell = iota
	// Cmd joins steps with " & " after cd /d and leaves out POSIX-only steps.
	Cmd
)

// Step is one command of a terminal script.
type Step struct {
	Run string
	// PosixOnly marks a step using POSIX shell syntax, such as redirections to /dev/null.
	PosixOnly bool
}

// Strategy is one way of opening a terminal.
type Strategy struct {
	Name string
	// Executable must resolve on PATH for the strategy to be tried.
	Executable string
	// Probe must exit successfully for the strategy to be tried.
	Probe []string
	// Argv is the launch command with placeholders.
	Argv []string
	Shell Shell
	// Detach starts the launcher without waiting, for emulators that block until closed.
	Detach bool
}

// Table maps each platform to its strategies in fallback order.
type Table map[platform.Platform][]Strategy

const keepShellOpen = "; exec bash"

func linuxStrategies() []Strategy {
	return []Strategy{
		{
			Name:       "gnome-terminal",
			Executable: "gnome-terminal",
			Argv: []string{
				"gnome-terminal", "--tab", "--working-directory=" + DirPlaceholder,
				"--", "bash", "-c", ScriptPlaceholder + keepShellOpen,
			},
		},
		{
			Name:       "konsole",
			Executable: "konsole",
			Argv: []string{
				"konsole", "--new-tab", "--workdir", DirPlaceholder,
				"-e", "bash", "-c", ScriptPlaceholder + keepShellOpen,
			},
			Detach: true,
		},
		{
			Name:       "xterm",
			Executable: "xterm",
			Argv:       []string{"xterm", "-e", "bash", "-c", ScriptPlaceholder + keepShellOpen},
			Detach:     true,
		},
	}
}

// DefaultTable returns the launch strategies known for every platform.
func DefaultTable() Table {
	wsl := append([]Strategy{
		{
			Name:       "windows terminal",
			Executable: "wt.exe",
			Argv: []string{
				"wt.exe", "-w", "0", "nt", "wsl.exe", "--cd", DirPlaceholder,
				"--", "bash", "-c", ScriptPlaceholder + keepShellOpen,
			},
		},
	}, linuxStrategies()...)

	return Table{
		platform.Darwin: {
			{
				Name:  "iTerm",
				Probe: []string{"osascript", "-e", `tell application "iTerm" to version`},
				Argv: []string{
					"osascript",
					"-e", `tell application "iTerm"`,
					"-e", `tell current window to create tab with default profile`,
					"-e", `tell current session of current window to write text "` + AppleScriptPlaceholder + `"`,
					"-e", `end tell`,
				},
			},
			{
				Name: "Terminal",
				Argv: []string{
					"osascript",
					"-e", `tell application "Terminal" to do script "` + AppleScriptPlaceholder + `"`,
					"-e", `tell application "Terminal" to activate`,
				},
			},
		},
		platform.Windows: {
			{
				Name:       "windows terminal",
				Executable: "wt.exe",
				Argv:       []string{"wt.exe", "-w", "0", "nt", "-d", DirPlaceholder, "cmd.exe", "/K", ScriptPlaceholder},
				Shell:      Cmd,
			},
			{
				Name:  "cmd",
				Argv:  []string{"cmd.exe", "/C", "start", "cmd.exe", "/K", ScriptPlaceholder},
				Shell: Cmd,
			},
		},
		platform.WSL:   wsl,
		platform.Linux: linuxStrategies(),
	}
}

// Script returns the shell script opening dir and running steps in order. Steps run
// regardless of the outcome of the previous one.
func Script(shell Shell, dir string, steps []Step) string {
	lines := make([]string, 0, len(steps)+1)

	if shell == Cmd {
		lines = append(lines, `cd /d "`+dir+`"`)
	} else {
		lines = append(lines, "cd "+quotePosix(dir))
	}

	for _, step := range steps {
		if step.Run == "" || (shell == Cmd && step.PosixOnly) {
			continue
		}

		lines = append(lines, step.Run)
	}

	if shell == Cmd {
		return strings.Join(lines, " & ")
	}

	return strings.Join(lines, "; ")
}

// Render substitutes the placeholders of argv.
func Render(argv []string, shell Shell, dir string, steps []Step) []string {
	script := Script(shell, dir, steps)
	replacer := strings.NewReplacer(
		DirPlaceholder, dir,
		ScriptPlaceholder, script,
		AppleScriptPlaceholder, escapeAppleScript(script),
	)

	out := make([]string, 0, len(argv))
	for _, arg := range argv {
		out = append(out, replacer.Replace(arg))
	}

	return out
}

func quotePosix(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

func escapeAppleScript(value string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
}
