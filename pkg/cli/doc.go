// Package cli groups the command-line layer of sf.
//
//   - cli/cmd: the cobra commands
//   - cli/wizard: the decision flow asking the project questions
//   - cli/ui: prompts, error formatting and terminal helpers
package cli
