package export

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/arthur-debert/probsheet/formats"
)

const maxSlugLength = 40

var dashRuns = regexp.MustCompile("-+")

// documentPath builds the archive path of one problem document:
// <NN>-<topic>/<NN>-<section>/<NN>-<problem><ext>. Positions are 1-based and
// keep archive listings in sheet order.
func documentPath(topicPos int, topicTitle string, sectionPos int, sectionTitle string, problemPos int, problemTitle string, format *formats.DocumentFormat) string {
	ext := format.Extension
	if ext == "" {
		ext = ".txt"
	}
	return path.Join(
		fmt.Sprintf("%02d-%s", topicPos, sanitizeTitle(topicTitle)),
		fmt.Sprintf("%02d-%s", sectionPos, sanitizeTitle(sectionTitle)),
		fmt.Sprintf("%02d-%s%s", problemPos, sanitizeTitle(problemTitle), ext),
	)
}

// sanitizeTitle cleans a title for use as a path segment:
// 1. Lowercase, spaces become dashes
// 2. Only letters, digits, dash and underscore survive
// 3. Runs of dashes collapse, leading and trailing dashes go
// 4. Truncated to 40 runes, "untitled" when nothing is left
func sanitizeTitle(title string) string {
	result := strings.ToLower(title)
	result = strings.ReplaceAll(result, " ", "-")

	var builder strings.Builder
	for _, r := range result {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			builder.WriteRune(r)
		}
	}

	result = dashRuns.ReplaceAllString(builder.String(), "-")
	result = strings.Trim(result, "-")

	if runes := []rune(result); len(runes) > maxSlugLength {
		result = strings.TrimRight(string(runes[:maxSlugLength]), "-")
	}

	if result == "" {
		result = "untitled"
	}
	return result
}
