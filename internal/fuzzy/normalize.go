package fuzzy

import "regexp"

// patterns are applied in order; earlier, more specific shapes win over the
// generic number pattern.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`),
	regexp.MustCompile(`[\w.+-]+@[\w-]+(\.[\w-]+)+`),
	regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}(:\d+)?\b`),
	regexp.MustCompile(`\b[0-9a-fA-F]{24,}\b`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(\.\d+)?(Z|\s?[+-]\d{2}:?\d{2})?`),
	regexp.MustCompile(`https?://\S+`),
	regexp.MustCompile(`\b\d+(\.\d+)?\b`),
}

var placeholders = []string{
	"<UUID>",
	"<EMAIL>",
	"<IP>",
	"<HEX>",
	"<TIMESTAMP>",
	"<URL>",
	"<NUM>",
}

// Normalize replaces identifiers, addresses, timestamps and numbers in s with
// placeholders so that values differing only in those parts compare equal.
func Normalize(s string) string {
	for i, p := range patterns {
		s = p.ReplaceAllString(s, placeholders[i])
	}
	return s
}
