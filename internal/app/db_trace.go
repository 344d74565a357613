package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

// traceQuery collapses a statement to one line and caps it for span attributes.
func traceQuery(query string) string {
	query = sqlWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(query) <= maxTracedQueryLength {
		return query
	}
	return query[:maxTracedQueryLength] + "..."
}
