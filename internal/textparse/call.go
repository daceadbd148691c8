package textparse

import (
	"regexp"
	"strings"
)

var (
	// Leading identifier, then everything up to the final closing paren.
	// (?s) lets arguments span lines.
	callRegex = regexp.MustCompile(`(?s)^\s*(\w+)\((.*)\)`)

	// Splits an argument blob on top-level commas: quoted spans are atomic,
	// everything else breaks on commas. A quoted span is only atomic when it
	// starts at the match position, so commas inside unquoted text, leading
	// whitespace before a comma-bearing quoted argument, and mid-string
	// escaped quotes all mis-split. The action catalogue quotes every string
	// argument, so this holds in practice.
	argRegex = regexp.MustCompile(`'[^']*'|"[^"]*"|[^,]+`)
)

// ParseCall parses a call-shaped string like "send_email('a@b.com', 'Hi')"
// into its function name and ordered arguments. Each argument is trimmed of
// whitespace and bounding quotes. Returns ok=false when s is not call-shaped.
func ParseCall(s string) (name string, args []string, ok bool) {
	match := callRegex.FindStringSubmatch(s)
	if match == nil {
		return "", nil, false
	}
	name = match[1]
	blob := match[2]
	if strings.TrimSpace(blob) == "" {
		return name, []string{}, true
	}
	for _, raw := range argRegex.FindAllString(blob, -1) {
		arg := strings.TrimSpace(raw)
		arg = strings.Trim(arg, `'"`)
		args = append(args, arg)
	}
	return name, args, true
}

// CleanArgument normalizes a single extracted argument: all quote characters
// are removed (not just bounding ones), literal "\n" sequences become real
// newlines, and surrounding whitespace is trimmed. Total function.
func CleanArgument(arg string) string {
	arg = strings.ReplaceAll(arg, "'", "")
	arg = strings.ReplaceAll(arg, `"`, "")
	arg = strings.ReplaceAll(arg, `\n`, "\n")
	return strings.TrimSpace(arg)
}
