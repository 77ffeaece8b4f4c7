// Package envvar expands environment variable placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"
)

// pattern matches ${NAME} and ${NAME:-fallback}.
// Groups: 1 = variable name, 2 = ":-" marker, 3 = fallback.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-([^}]*))?\}`)

// Expand replaces ${NAME} placeholders with the variable's value. An unset
// variable expands to its fallback when one is given, else to "".
func Expand(value string) string {
	return ExpandWith(value, os.LookupEnv)
}

// ExpandWith is Expand over a custom lookup.
func ExpandWith(value string, lookup func(string) (string, bool)) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)

		if envValue, ok := lookup(groups[1]); ok {
			return envValue
		}

		return groups[3]
	})
}
