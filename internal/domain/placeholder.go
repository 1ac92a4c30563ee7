package domain

import "regexp"

// Placeholder tokens are ALL-CAPS sentinel strings marking fields that await
// generated content. The pattern is part of the wire contract: any string
// matching it is treated as "not yet generated".
var placeholderPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// IsPlaceholder reports whether s is an unfilled placeholder token.
func IsPlaceholder(s string) bool {
	return placeholderPattern.MatchString(s)
}
