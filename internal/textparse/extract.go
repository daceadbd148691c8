// Package textparse extracts structured data from noisy LLM free text.
//
// Model replies are untrusted: they may wrap the payload in markdown fences,
// use Python-style literal spellings, or bury the payload in prose. Every
// extractor here degrades to an empty result instead of returning an error.
package textparse

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	// First bracket-delimited span, shortest match. Newlines are stripped
	// before matching, so (?s) is not needed.
	listRegex = regexp.MustCompile(`\[.*?\]`)

	// First brace-delimited span without nested braces. Nested objects in the
	// reply are not captured by this pattern; the strict JSON pass above it
	// handles those when the reply is otherwise well formed.
	dictRegex = regexp.MustCompile(`\{[^{}]*\}`)
)

// ExtractList pulls the first bracketed literal list out of text. Both JSON
// and Python-style single-quoted lists parse. Returns an empty slice when no
// list is present or the span does not parse.
func ExtractList(text string) []any {
	text = strings.ReplaceAll(text, "\n", "")
	span := listRegex.FindString(text)
	if span == "" {
		return []any{}
	}
	normalized := normalizeLiterals(span)
	var result []any
	if err := json.Unmarshal([]byte(normalized), &result); err == nil {
		return result
	}
	result = nil
	if err := json.Unmarshal([]byte(requoted(normalized)), &result); err != nil {
		return []any{}
	}
	return result
}

// ExtractDict pulls a brace-delimited literal mapping out of text.
//
// The whole reply is tried as strict JSON first (after fence and literal
// normalization), which also handles nested objects. Only when that fails does
// the permissive brace-span scan run. Returns an empty map on absence or
// parse failure; the failure is logged, never returned.
func ExtractDict(text string) map[string]any {
	normalized := normalizeLiterals(stripFences(text))

	var result map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(normalized)), &result); err == nil {
		return result
	}

	span := dictRegex.FindString(normalized)
	if span == "" {
		return map[string]any{}
	}
	if err := json.Unmarshal([]byte(span), &result); err == nil {
		return result
	}
	// Last resort for Python-style single-quoted dicts.
	if err := json.Unmarshal([]byte(requoted(span)), &result); err != nil {
		zap.L().Error("failed to parse dictionary from model reply",
			zap.String("span", truncate(span, 200)),
			zap.Error(err))
		return map[string]any{}
	}
	return result
}

// stripFences replaces triple-backtick markers (with or without a language
// tag) so a fenced payload parses as a bare one.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	return strings.ReplaceAll(text, "```", "")
}

// normalizeLiterals maps Python literal spellings to JSON ones.
func normalizeLiterals(text string) string {
	replacer := strings.NewReplacer(
		"None", "null",
		"False", "false",
		"True", "true",
	)
	return replacer.Replace(text)
}

// requoted swaps single quotes for double quotes. Loses apostrophes inside
// values, which is acceptable for a last-resort parse attempt.
func requoted(span string) string {
	return strings.ReplaceAll(span, "'", `"`)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
