package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${NAME}, ${NAME:-default}, and ${NAME:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR} references with environment values and
// returns the substituted content plus the references it could not resolve.
// ${VAR:-default} falls back to the default when VAR is unset or empty.
// ${VAR:?message} records the message instead of a bare name when VAR is
// unset or empty. Plain ${VAR} is left unchanged when unset so the TOML
// error points at the original text.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1]

		if name, def, ok := strings.Cut(expr, ":-"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			return def
		}

		if name, msg, ok := strings.Cut(expr, ":?"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			missing = append(missing, name+": "+msg)
			return match
		}

		if value, ok := os.LookupEnv(expr); ok {
			return value
		}
		missing = append(missing, expr)
		return match
	})
	return result, missing
}
