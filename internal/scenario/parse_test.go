package scenario

import (
	"errors"
	"strings"
	"testing"
)

func TestParseResponsePlainJSON(t *testing.T) {
	parsed, err := ParseResponse(`{"title": "Payment Freeze"}`, "stop")
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if parsed["title"] != "Payment Freeze" {
		t.Errorf("title = %v", parsed["title"])
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	for _, text := range []string{
		"```json\n{\"title\": \"Fenced\"}\n```",
		"```\n{\"title\": \"Fenced\"}\n```",
		"  \n```json\n{\"title\": \"Fenced\"}\n```\n  ",
	} {
		parsed, err := ParseResponse(text, "stop")
		if err != nil {
			t.Fatalf("ParseResponse(%q): %v", text, err)
		}
		if parsed["title"] != "Fenced" {
			t.Errorf("title = %v for %q", parsed["title"], text)
		}
	}
}

// A truncating finish reason fails the parse even when the text happens to
// be valid JSON.
func TestParseResponseRejectsTruncation(t *testing.T) {
	for _, reason := range []string{"length", "max_tokens", "truncated", "LENGTH"} {
		_, err := ParseResponse(`{"complete": true}`, reason)
		var truncErr *TruncationError
		if !errors.As(err, &truncErr) {
			t.Fatalf("finish reason %q: expected TruncationError, got %v", reason, err)
		}
	}
}

func TestParseResponseMalformedKeepsTail(t *testing.T) {
	text := `{"title": "Cut off mid` + strings.Repeat("x", 300)
	_, err := ParseResponse(text, "stop")

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Length != len(text) {
		t.Errorf("Length = %d, want %d", parseErr.Length, len(text))
	}
	if len(parseErr.Tail) != parseTailChars {
		t.Errorf("Tail length = %d, want %d", len(parseErr.Tail), parseTailChars)
	}
	if !strings.HasSuffix(text, parseErr.Tail) {
		t.Error("Tail is not the end of the input")
	}
}

func TestParseResponseRejectsNonObject(t *testing.T) {
	if _, err := ParseResponse(`[1, 2, 3]`, "stop"); err == nil {
		t.Fatal("expected error for a non-object response")
	}
}
