package changelog

import (
	"regexp"
	"strings"

	"github.com/nahidhasan98/changelog-viewer/internal/models"
)

// Noise headings. Both are case-sensitive and anchored to the first line.
var (
	mergePattern  = regexp.MustCompile(`^Merge`)
	readmePattern = regexp.MustCompile(`^Update README\.md`)
)

// IsRelevant reports whether a commit is worth showing in a changelog.
// Merge commits, README touch-ups and empty messages are noise; they still
// count towards a version's commits but not its relevant commits.
func IsRelevant(commit models.Commit) bool {
	message := commit.Message
	if strings.TrimSpace(message) == "" {
		return false
	}

	firstLine, _, _ := strings.Cut(message, "\n")
	if mergePattern.MatchString(firstLine) || readmePattern.MatchString(firstLine) {
		return false
	}

	return true
}
