package scenario

import (
	"encoding/json"
	"strings"
)

// Finish reasons that indicate the backend stopped emitting before the
// response was complete.
var truncatedFinishReasons = map[string]bool{
	"length":     true,
	"max_tokens": true,
	"truncated":  true,
}

const parseTailChars = 120

// ParseResponse strips Markdown code-fence wrappers and parses the generator
// output as a JSON object. A truncating finish reason fails even when the
// text parses, because truncated JSON can be syntactically valid yet
// semantically incomplete.
func ParseResponse(text, finishReason string) (map[string]any, error) {
	if truncatedFinishReasons[strings.ToLower(finishReason)] {
		return nil, &TruncationError{FinishReason: finishReason, Length: len(text)}
	}

	cleaned := stripCodeFences(text)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &ParseError{Err: err, Length: len(cleaned), Tail: tail(cleaned, parseTailChars)}
	}
	return parsed, nil
}

// stripCodeFences removes a ```json ... ``` wrapper if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
