// Package utils provides small utility packages shared across sf:
//
//   - envvar: ${VAR} expansion of setting values
//   - notify: formatted messages and the progress spinner
//   - timer: execution time tracking for single and multi-stage operations
package utils
