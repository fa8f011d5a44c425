package processing

import (
	"regexp"
	"strings"
)

var (
	envelopePrefix = regexp.MustCompile(`^content=['"]*`)
	braceFragment  = regexp.MustCompile(`\{.*?\}`)
)

var metadataMarkers = []string{"additional_kwargs=", "response_metadata="}

var unescaper = strings.NewReplacer(
	`\n`, " ",
	`\t`, " ",
	`\'`, "'",
	`\"`, `"`,
)

// Sanitize strips response envelope artifacts from generated text.
// Passes are repeated until the text stops changing, so Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	for {
		next := sanitizePass(s)
		if next == s {
			return next
		}
		s = next
	}
}

// sanitizePass never grows the input, which bounds the loop in Sanitize.
func sanitizePass(s string) string {
	s = envelopePrefix.ReplaceAllString(s, "")
	for _, marker := range metadataMarkers {
		if idx := strings.Index(s, marker); idx >= 0 {
			s = s[:idx]
		}
	}
	s = unescaper.Replace(s)
	s = strings.ReplaceAll(s, `\`, "")
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)
	s = braceFragment.ReplaceAllString(s, "")
	return s
}
