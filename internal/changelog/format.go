package changelog

import (
	"strings"
	"time"
)

// Title returns the first non-empty line of a commit message
func Title(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if line != "" {
			return line
		}
	}
	return ""
}

// Body returns the non-blank lines of a message after the first one
func Body(message string) string {
	var lines []string
	for _, line := range strings.Split(message, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return ""
	}
	return strings.Join(lines[1:], "\n")
}

// FormatDate renders YYYY-MM-DD, or "" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
