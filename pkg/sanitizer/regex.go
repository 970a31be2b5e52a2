package sanitizer

import "regexp"

// Pre-compiled regular expressions for performance
var (
	// Markup removal
	htmlCommentRegex = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockTagRegex    = regexp.MustCompile(`(?is)<(script|style|iframe|object|embed|noscript|template)\b[^>]*>.*?</(script|style|iframe|object|embed|noscript|template)\s*>`)
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	danglingTagRegex = regexp.MustCompile(`<[a-zA-Z!/?][^<>]*$`)

	// Terminal escape sequences
	ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
)
