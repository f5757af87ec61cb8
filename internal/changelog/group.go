package changelog

import (
	"time"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/nahidhasan98/changelog-viewer/internal/models"
)

// UnreleasedLabel is the label of commits newer than the first release marker
const UnreleasedLabel = ""

// Group accumulates the commits that belong to one version
type Group struct {
	Label           string
	Date            time.Time
	Commits         []models.Commit
	RelevantCommits []models.Commit
}

// Released reports whether the group was opened by a release marker
func (g *Group) Released() bool {
	return g.Label != UnreleasedLabel
}

// Visible reports whether a changelog should display the group. An
// Unreleased group with nothing relevant in it is hidden.
func (g *Group) Visible() bool {
	return g.Released() || len(g.RelevantCommits) > 0
}

// Heading renders "Unreleased" or "<label> - <date>"
func (g *Group) Heading() string {
	if !g.Released() {
		return "Unreleased"
	}
	if date := FormatDate(g.Date); date != "" {
		return g.Label + " - " + date
	}
	return g.Label
}

// Clone returns a deep copy of the group's slices
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	return &Group{
		Label:           g.Label,
		Date:            g.Date,
		Commits:         append([]models.Commit(nil), g.Commits...),
		RelevantCommits: append([]models.Commit(nil), g.RelevantCommits...),
	}
}

func (g *Group) add(commit models.Commit) {
	g.Commits = append(g.Commits, commit)
	if IsRelevant(commit) {
		g.RelevantCommits = append(g.RelevantCommits, commit)
	}
}

// absorb appends other's commits. The receiver keeps its own date because it
// was encountered first, i.e. it is the newer occurrence of the label.
func (g *Group) absorb(other *Group) {
	g.Commits = append(g.Commits, other.Commits...)
	g.RelevantCommits = append(g.RelevantCommits, other.RelevantCommits...)
	if g.Date.IsZero() {
		g.Date = other.Date
	}
}

// Mapping is an insertion ordered label -> group map. Insertion order is the
// order versions were met in history, newest first.
type Mapping struct {
	groups *orderedmap.OrderedMap[string, *Group]
}

// NewMapping creates an empty mapping
func NewMapping() *Mapping {
	return &Mapping{groups: orderedmap.NewOrderedMap[string, *Group]()}
}

// Add inserts g, or merges it into the group already stored under the same
// label. Duplicate labels (a reused tag) are concatenated, never overwritten.
func (m *Mapping) Add(g *Group) {
	if existing, ok := m.groups.Get(g.Label); ok {
		existing.absorb(g)
		return
	}
	m.groups.Set(g.Label, g)
}

// Merge adds every group of other in order. Groups are cloned so the two
// mappings never share slices.
func (m *Mapping) Merge(other *Mapping) {
	if other == nil {
		return
	}
	for el := other.groups.Front(); el != nil; el = el.Next() {
		m.Add(el.Value.Clone())
	}
}

// Get returns the group stored under label
func (m *Mapping) Get(label string) (*Group, bool) {
	return m.groups.Get(label)
}

// Len returns the number of versions
func (m *Mapping) Len() int {
	return m.groups.Len()
}

// Labels returns the labels in order
func (m *Mapping) Labels() []string {
	labels := make([]string, 0, m.groups.Len())
	for el := m.groups.Front(); el != nil; el = el.Next() {
		labels = append(labels, el.Key)
	}
	return labels
}

// Groups returns the groups in order. The groups are shared with the mapping.
func (m *Mapping) Groups() []*Group {
	groups := make([]*Group, 0, m.groups.Len())
	for el := m.groups.Front(); el != nil; el = el.Next() {
		groups = append(groups, el.Value)
	}
	return groups
}

// Clone returns a deep copy
func (m *Mapping) Clone() *Mapping {
	clone := NewMapping()
	clone.Merge(m)
	return clone
}
