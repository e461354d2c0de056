// Package cmd provides the command-line interface of sf.
//
// The root command delegates to:
//   - new: asks the project questions, generates the project and brings it up
//   - db: starts, stops or resets the development database of a generated project
package cmd
