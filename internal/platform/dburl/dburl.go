// Package dburl normalizes Postgres connection strings for the API and the migrator.
package dburl

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// Normalize appends disable_prepared_binary_result=yes to URL-style DSNs when asked to,
// keeping an explicit value if one is present. Poolers in transaction mode need it.
func Normalize(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// Name extracts the database name from either a URL or a key=value DSN.
func Name(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		value, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if value = strings.Trim(value, `"'`); value != "" {
			return value
		}
	}
	return ""
}

// Redact hides the password of a URL-style DSN for logging.
func Redact(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" {
		return "<dsn>"
	}
	return parsed.Redacted()
}
