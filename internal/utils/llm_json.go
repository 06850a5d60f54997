package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseLLMJSON extracts and parses a JSON object from model output that may be:
// - pure JSON
// - JSON wrapped in markdown code fences (```json ... ```)
// - JSON with surrounding prose
// - JSON with trailing commas
func ParseLLMJSON(input string, target interface{}) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty input")
	}

	// Direct parse first (most common case)
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if extracted := extractFromMarkdown(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if extracted := extractJSONObject(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
		// Last resort: strip trailing commas inside the extracted object
		if err := json.Unmarshal([]byte(stripTrailingCommas(extracted)), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", truncateString(input, 100))
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedAnyRe  = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	trailingRe   = regexp.MustCompile(`,\s*([}\]])`)
)

// extractFromMarkdown extracts JSON from markdown code fences
func extractFromMarkdown(input string) string {
	if matches := fencedJSONRe.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	if matches := fencedAnyRe.FindStringSubmatch(input); len(matches) > 1 {
		content := strings.TrimSpace(matches[1])
		if strings.HasPrefix(content, "{") {
			return content
		}
	}
	return ""
}

// extractJSONObject finds the first balanced {...} in surrounding text,
// ignoring braces inside string literals.
func extractJSONObject(input string) string {
	start := strings.Index(input, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escape := false

	for i := start; i < len(input); i++ {
		ch := input[i]
		if escape {
			escape = false
			continue
		}
		switch ch {
		case '\\':
			escape = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return input[start : i+1]
				}
			}
		}
	}

	return ""
}

func stripTrailingCommas(s string) string {
	return trailingRe.ReplaceAllString(s, "$1")
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
