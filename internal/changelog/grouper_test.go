package changelog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahidhasan98/changelog-viewer/internal/models"
	"github.com/nahidhasan98/changelog-viewer/internal/pattern"
)

var anyTriple = pattern.MustCompile(`/\d+\.\d+\.\d+/`)

func commitsFrom(messages ...string) []models.Commit {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	commits := make([]models.Commit, len(messages))
	for i, message := range messages {
		commits[i] = models.Commit{
			SHA:         fmt.Sprintf("sha%02d", i),
			Message:     message,
			CommittedAt: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return commits
}

func messagesOf(commits []models.Commit) []string {
	messages := make([]string, 0, len(commits))
	for _, c := range commits {
		messages = append(messages, c.Message)
	}
	return messages
}

func TestGroupCommits_Example(t *testing.T) {
	commits := commitsFrom("fix bug", "release 1.2.3", "Merge pull request #1", "add feature")

	versions := GroupCommits(commits, anyTriple, nil).Versions()

	require.Equal(t, []string{UnreleasedLabel, "1.2.3"}, versions.Labels())

	unreleased, _ := versions.Get(UnreleasedLabel)
	assert.Equal(t, []string{"fix bug"}, messagesOf(unreleased.Commits))
	assert.Equal(t, []string{"fix bug"}, messagesOf(unreleased.RelevantCommits))
	assert.True(t, unreleased.Date.IsZero())

	release, _ := versions.Get("1.2.3")
	assert.Equal(t, []string{"Merge pull request #1", "add feature"}, messagesOf(release.Commits))
	assert.Equal(t, []string{"add feature"}, messagesOf(release.RelevantCommits))
	assert.Equal(t, commits[1].CommittedAt, release.Date)
}

func TestGroupCommits_MarkersAreConsumed(t *testing.T) {
	commits := commitsFrom("a", "2.0.0", "b", "1.0.0", "c", "0.1.0")

	versions := GroupCommits(commits, pattern.MustCompile(pattern.Default), nil).Versions()

	require.Equal(t, []string{UnreleasedLabel, "2.0.0", "1.0.0", "0.1.0"}, versions.Labels())
	for _, g := range versions.Groups() {
		for _, c := range g.Commits {
			_, isMarker := pattern.MustCompile(pattern.Default).Match(c.Message)
			assert.False(t, isMarker, "marker %q leaked into %q", c.Message, g.Label)
		}
	}
	last, _ := versions.Get("0.1.0")
	assert.Empty(t, last.Commits)
}

func TestGroupCommits_OrderIsSubsequence(t *testing.T) {
	commits := commitsFrom("a", "b", "v1.0.0", "c", "Merge x", "d", "v0.9.0", "e")

	versions := GroupCommits(commits, pattern.MustCompile(pattern.Braced), nil).Versions()

	var flattened []string
	for _, g := range versions.Groups() {
		flattened = append(flattened, messagesOf(g.Commits)...)
	}
	assert.Equal(t, []string{"a", "b", "c", "Merge x", "d", "e"}, flattened)
}

func TestGroupCommits_FirstCommitIsMarker(t *testing.T) {
	commits := commitsFrom("1.0.0", "init")

	result := GroupCommits(commits, pattern.MustCompile(pattern.Default), nil)

	unreleased, ok := result.Closed.Get(UnreleasedLabel)
	require.True(t, ok)
	assert.Empty(t, unreleased.Commits)
	assert.False(t, unreleased.Visible())

	assert.Equal(t, "1.0.0", result.Open.Label)
	assert.Equal(t, []string{"init"}, messagesOf(result.Open.Commits))
}

func TestGroupCommits_DuplicateLabelsAreMerged(t *testing.T) {
	commits := commitsFrom("1.0.0", "second", "1.0.0", "first")

	versions := GroupCommits(commits, pattern.MustCompile(pattern.Default), nil).Versions()

	require.Equal(t, []string{UnreleasedLabel, "1.0.0"}, versions.Labels())
	release, _ := versions.Get("1.0.0")
	assert.Equal(t, []string{"second", "first"}, messagesOf(release.Commits))
	assert.Equal(t, commits[0].CommittedAt, release.Date, "newest occurrence keeps its date")
}

func TestGroupCommits_DoesNotMutateCarry(t *testing.T) {
	carry := &Group{Label: "1.0.0", Commits: commitsFrom("x")}

	result := GroupCommits(commitsFrom("y"), anyTriple, carry)

	assert.Len(t, carry.Commits, 1)
	assert.Equal(t, []string{"x", "y"}, messagesOf(result.Open.Commits))
}

func TestGroupCommits_Deterministic(t *testing.T) {
	commits := commitsFrom("a", "1.1.0", "b", "Update README.md", "1.0.0", "c")

	first := GroupCommits(commits, anyTriple, nil).Versions()
	second := GroupCommits(commits, anyTriple, nil).Versions()

	assert.Equal(t, first.Labels(), second.Labels())
	for i, g := range first.Groups() {
		assert.Equal(t, g, second.Groups()[i])
	}
}

func TestGroupCommits_CarryInContinuity(t *testing.T) {
	all := commitsFrom(
		"fix a", "1.3.0", "feat b", "Merge pull request #9",
		"fix c", "1.2.0", "feat d", "1.2.0", "docs e", "fix f", "1.1.0", "init",
	)

	whole := GroupCommits(all, anyTriple, nil).Versions()

	for split := 0; split <= len(all); split++ {
		t.Run(fmt.Sprintf("split at %d", split), func(t *testing.T) {
			first := GroupCommits(all[:split], anyTriple, nil)
			second := GroupCommits(all[split:], anyTriple, first.Open)

			paged := first.Closed.Clone()
			paged.Merge(Result{Closed: second.Closed, Open: second.Open}.Versions())

			require.Equal(t, whole.Labels(), paged.Labels())
			for i, g := range whole.Groups() {
				assert.Equal(t, g, paged.Groups()[i])
			}
		})
	}
}

func TestMapping_MergeClones(t *testing.T) {
	source := NewMapping()
	source.Add(&Group{Label: "1.0.0", Commits: commitsFrom("a")})

	target := NewMapping()
	target.Merge(source)
	got, _ := target.Get("1.0.0")
	got.Commits = append(got.Commits, commitsFrom("b")...)

	original, _ := source.Get("1.0.0")
	assert.Len(t, original.Commits, 1)
}

func TestGroup_Heading(t *testing.T) {
	assert.Equal(t, "Unreleased", (&Group{}).Heading())
	assert.Equal(t, "v1.2.3", (&Group{Label: "v1.2.3"}).Heading())
	assert.Equal(t, "1.2.3 - 2024-01-31", (&Group{
		Label: "1.2.3",
		Date:  time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC),
	}).Heading())
}
