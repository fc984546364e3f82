package utils

import (
	"regexp"
	"strings"
)

var forbiddenSQL = regexp.MustCompile(`(?i)\b(DROP|DELETE|UPDATE|ALTER|TRUNCATE|INSERT|GRANT|REVOKE|CREATE)\b`)

// ValidateSQL reports whether query is a read-only statement that may be run
// against a chart data source.
func ValidateSQL(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	lower := strings.ToLower(query)
	if !strings.HasPrefix(lower, "select") && !strings.HasPrefix(lower, "with") {
		return false
	}
	if strings.Contains(strings.TrimRight(query, "; \n\t"), ";") {
		return false
	}
	return !forbiddenSQL.MatchString(query)
}
