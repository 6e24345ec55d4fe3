// FILE: lixenwraith/settings/helper.go
package settings

import "strings"

// LookupFunc reads one key from an environment-like store. The second
// return reports presence, distinguishing an empty value from an
// absent one.
type LookupFunc func(key string) (string, bool)

// TransformFunc converts a setting name to an environment variable
// name. If nil, the default transformation (upper-case, underscores
// preserved, optional prefix) is used.
type TransformFunc func(name string) string

// defaultEnvTransform builds the standard setting-to-environment name
// transformer: "db_host" becomes "DB_HOST", or "APP_DB_HOST" with the
// prefix "APP_".
func defaultEnvTransform(prefix string) TransformFunc {
	return func(name string) string {
		env := strings.ToUpper(name)
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}

// flagName converts a setting name to its long-flag form:
// "log_level" becomes "log-level".
func flagName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// isValidName checks that a setting name is a flat identifier: a
// letter or underscore followed by letters, digits, or underscores.
// Dots and dashes are rejected; the namespace is flat and dashes are
// reserved for the command-line form.
func isValidName(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter && r != '_' {
			return false
		}
		if !isLetter && !isDigit && r != '_' {
			return false
		}
	}
	return true
}

// toSnakeCase converts a Go field name to the setting naming
// convention: "MaxRetries" becomes "max_retries", "DBHost" becomes
// "db_host".
func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
				nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
				if prevLower || nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
