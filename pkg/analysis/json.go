package analysis

import "strings"

// extractObject returns the substring of s from the first '{' to the last
// '}', or "" when no object span exists. Model output is free-form text
// that usually wraps a JSON object in prose or code fences; this span
// extraction plus a tolerant parse is deliberately best-effort.
func extractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}
