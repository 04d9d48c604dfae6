package note

import (
	"regexp"
	"strings"
)

// Hashtags must start with a letter or digit and may carry hyphens,
// as in "#spaced-repetition".
var tagPattern = regexp.MustCompile(`#([a-zA-Z0-9][a-zA-Z0-9_-]{0,31})`)

const maxTagsPerNote = 10

// ExtractTags collects the hashtags of a note body in order of first
// appearance, lowercased, without duplicates.
func ExtractTags(content string) []string {
	if !strings.Contains(content, "#") {
		return nil
	}

	var tags []string
	seen := make(map[string]bool)
	for _, m := range tagPattern.FindAllStringSubmatch(content, -1) {
		tag := strings.ToLower(m[1])
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == maxTagsPerNote {
			break
		}
	}
	return tags
}
