package polytrans

import (
	"strings"
	"unicode/utf8"
)

// QueryPolicy controls how ValidateQuery treats empty and oversized input.
type QueryPolicy struct {
	AllowEmpty      bool
	AllowOverLength bool
	MaxLength       int // In characters; 0 means DefaultLimitOfLength
}

// QueryPolicyFromOptions derives the query policy carried by request options.
func QueryPolicyFromOptions(opts Options) QueryPolicy {
	return QueryPolicy{
		AllowEmpty:      opts.IgnoreEmptyQuery,
		AllowOverLength: opts.IgnoreOverLength,
		MaxLength:       opts.LimitOfLength,
	}
}

// ValidateQuery trims text and enforces the policy. A query whose length reaches
// MaxLength is rejected, or truncated to MaxLength-1 characters when AllowOverLength
// is set; truncated reports the latter so the caller can warn.
func ValidateQuery(text string, p QueryPolicy) (query string, truncated bool, err error) {
	limit := p.MaxLength
	if limit <= 0 {
		limit = DefaultLimitOfLength
	}

	query = strings.TrimSpace(text)
	if query == "" {
		if p.AllowEmpty {
			return "", false, nil
		}
		return "", false, &QueryError{Kind: ErrEmptyQuery}
	}

	length := utf8.RuneCountInString(query)
	if length < limit {
		return query, false, nil
	}
	if !p.AllowOverLength {
		return "", false, &QueryError{Kind: ErrQueryTooLong, Length: length, Limit: limit}
	}

	return truncateRunes(query, limit-1), true, nil
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
