package board

import (
	"sort"
	"strings"

	"taskboard/internal/domain"
)

// Filter is a set of person ids. An empty filter shows every task;
// otherwise a task is visible when any of its assignees is in the set.
type Filter map[string]struct{}

func NewFilter(personIDs ...string) Filter {
	f := Filter{}
	for _, id := range personIDs {
		if id = strings.TrimSpace(id); id != "" {
			f[id] = struct{}{}
		}
	}
	return f
}

// Toggle adds id if absent and removes it otherwise.
func (f Filter) Toggle(id string) {
	if _, ok := f[id]; ok {
		delete(f, id)
		return
	}
	f[id] = struct{}{}
}

func (f Filter) Empty() bool { return len(f) == 0 }

// IDs returns the selected ids sorted.
func (f Filter) IDs() []string {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (f Filter) Visible(t domain.Task) bool {
	if len(f) == 0 {
		return true
	}
	for _, p := range t.Assignees {
		if _, ok := f[p.ID]; ok {
			return true
		}
	}
	return false
}
