package search

import "strings"

// Query is a normalized search query.
type Query struct {
	// Normalized is the lowercased, trimmed input. Inner whitespace is kept as typed.
	Normalized string
	// Tokens are the whitespace-separated words of Normalized.
	Tokens []string
}

// Normalize lowercases and trims raw and splits it into tokens.
func Normalize(raw string) Query {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	return Query{Normalized: normalized, Tokens: strings.Fields(normalized)}
}

// Empty reports whether the query should short-circuit without touching any backend.
func (q Query) Empty() bool {
	return q.Normalized == ""
}

// ContentPattern is the value sent as $q to the content backend. A single token
// is wrapped as *term* for contains matching; longer queries go through as the
// literal phrase.
func (q Query) ContentPattern() string {
	if len(q.Tokens) == 1 {
		return "*" + q.Tokens[0] + "*"
	}
	return q.Normalized
}
