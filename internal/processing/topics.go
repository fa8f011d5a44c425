package processing

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// FallbackTopic is returned when no hashtag candidates are found.
const FallbackTopic = "GeneralNews"

var (
	capitalizedWord  = regexp.MustCompile(`\b[A-Z][a-zA-Z]*\b`)
	afterVerb        = regexp.MustCompile(`\b(?:says|said|announces|announced|reports|reported|reveals|revealed|confirms|confirmed|claims|warns)\s+([A-Z][a-zA-Z]*)\b`)
	afterPreposition = regexp.MustCompile(`\b(?:in|at|on|from|by|for|with|to|of)\s+([A-Z][a-zA-Z]*)\b`)
)

// ExtractTopics derives space-joined hashtags from a headline and its description.
// Tokens are deduplicated case-sensitively, must be longer than two characters and
// are returned sorted.
func ExtractTopics(title, description string) string {
	text := title + " " + description

	found := make(map[string]struct{})
	for _, word := range capitalizedWord.FindAllString(text, -1) {
		found[word] = struct{}{}
	}
	for _, re := range []*regexp.Regexp{afterVerb, afterPreposition} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			found[m[1]] = struct{}{}
		}
	}

	tags := make([]string, 0, len(found))
	for word := range found {
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		tags = append(tags, "#"+word)
	}
	if len(tags) == 0 {
		return FallbackTopic
	}

	sort.Strings(tags)
	return strings.Join(tags, " ")
}

// SplitTopics breaks a space-joined topic string into individual hashtags.
func SplitTopics(topics string) []string {
	return strings.Fields(topics)
}
