// Package envvar expands ${VAR} and ${VAR:-default} placeholders in setting values.
package envvar

import (
	"os"
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// Lookup resolves a variable. os.LookupEnv is the usual one.
type Lookup func(name string) (string, bool)

// Expand replaces placeholders in value from the process environment.
func Expand(value string) string {
	return ExpandWith(value, os.LookupEnv)
}

// ExpandWith replaces ${VAR} with the value of VAR, and ${VAR:-default} with default
// when VAR is unset or empty. An unset VAR without a default expands to "".
func ExpandWith(value string, lookup Lookup) string {
	if !strings.Contains(value, "${") {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)

		resolved, ok := lookup(groups[1])
		if ok && resolved != "" {
			return resolved
		}

		return groups[2]
	})
}
