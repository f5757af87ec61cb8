package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nahidhasan98/changelog-viewer/internal/models"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected bool
	}{
		{name: "empty", message: "", expected: false},
		{name: "whitespace only", message: " \n\t ", expected: false},
		{name: "merge pull request", message: "Merge pull request #1 from a/b", expected: false},
		{name: "merge branch", message: "Merge branch 'main'", expected: false},
		{name: "readme update", message: "Update README.md", expected: false},
		{name: "readme update with body", message: "Update README.md\n\nfix typo", expected: false},
		{name: "lowercase merge is content", message: "merge sort speedup", expected: true},
		{name: "merge not at start", message: "Revert \"Merge branch 'x'\"", expected: true},
		{name: "merge on later line", message: "add feature\n\nMerge notes", expected: true},
		{name: "other readme", message: "Update README.txt", expected: true},
		{name: "single character", message: "x", expected: true},
		{name: "regular commit", message: "add feature", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRelevant(models.Commit{Message: tt.message}))
		})
	}
}
