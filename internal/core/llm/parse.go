package llm

import (
	"regexp"
	"strings"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// stripCodeFence removes a surrounding markdown code fence from a model
// reply, with or without a language tag.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the first brace-delimited object in s, or ""
// when none is present. The match is greedy so nested objects survive.
func extractJSONObject(s string) string {
	return jsonObjectPattern.FindString(s)
}

// splitParagraphs splits text on blank-line boundaries, dropping empties.
var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

func splitParagraphs(text string) []string {
	var out []string
	for _, part := range blankLinePattern.Split(text, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
