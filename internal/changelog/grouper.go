package changelog

import (
	"github.com/nahidhasan98/changelog-viewer/internal/models"
	"github.com/nahidhasan98/changelog-viewer/internal/pattern"
)

// Result is the outcome of grouping one ordered run of commits
type Result struct {
	// Closed holds groups terminated by a later release marker in the run.
	Closed *Mapping

	// Open is the trailing group. Its older commits may still be on the next
	// page, so callers thread it into the next GroupCommits call.
	Open *Group
}

// Versions returns the closed groups followed by the open one
func (r Result) Versions() *Mapping {
	versions := r.Closed.Clone()
	if r.Open != nil {
		versions.Add(r.Open.Clone())
	}
	return versions
}

// GroupCommits partitions newest-first commits into versions. A commit whose
// message matches p is a release marker: it closes the current group and
// opens a new one labelled with the matched text, and is not itself part of
// either group.
//
// carry is the Open group of the previous page, or nil for the first page in
// which case an Unreleased group is started. carry is not modified.
func GroupCommits(commits []models.Commit, p *pattern.Pattern, carry *Group) Result {
	closed := NewMapping()

	current := carry.Clone()
	if current == nil {
		current = &Group{Label: UnreleasedLabel}
	}

	for _, commit := range commits {
		if match, ok := p.Match(commit.Message); ok {
			closed.Add(current)
			current = &Group{
				Label: match.Text,
				Date:  commit.CommittedAt,
			}
			continue
		}
		current.add(commit)
	}

	return Result{Closed: closed, Open: current}
}
