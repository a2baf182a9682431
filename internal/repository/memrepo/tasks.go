package memrepo

import (
	"context"
	"slices"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type TaskRepository struct {
	s *Store
}

func (r *TaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	want := make(map[string]bool, len(filter.AssigneeIDs))
	for _, id := range filter.AssigneeIDs {
		want[id] = true
	}

	out := make([]*domain.Task, 0, len(r.s.tasks))
	for id := range r.s.tasks {
		if len(want) > 0 && !slices.ContainsFunc(r.s.assignees[id], func(p string) bool { return want[p] }) {
			continue
		}
		out = append(out, r.s.materialize(id, false))
	}

	slices.SortFunc(out, func(a, b *domain.Task) int {
		if filter.Sort == repository.SortTitle {
			if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
				return c
			}
		} else if c := compareDue(a.DueDate, b.DueDate); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return out, nil
}

// compareDue orders earlier dates first and missing dates last.
func compareDue(a, b *domain.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(b.Time)
}

func (r *TaskRepository) Get(ctx context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.tasks[id]; !ok {
		return nil, repository.ErrTaskNotFound
	}
	return r.s.materialize(id, true), nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task, assigneeIDs []string, initial *domain.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range assigneeIDs {
		if !r.s.personExists(id) {
			return repository.ErrPersonNotFound
		}
	}
	if initial != nil && initial.UserID != nil && !r.s.personExists(*initial.UserID) {
		return repository.ErrPersonNotFound
	}

	t.CreatedAt = r.s.stamp()
	row := *t
	row.Assignees, row.Feedback = nil, nil
	r.s.tasks[t.ID] = row
	r.s.assignees[t.ID] = dedupe(assigneeIDs)

	if initial != nil {
		initial.TaskID = t.ID
		r.s.appendFeedback(initial)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task, assigneeIDs *[]string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.tasks[t.ID]
	if !ok {
		return repository.ErrTaskNotFound
	}
	if assigneeIDs != nil {
		for _, id := range *assigneeIDs {
			if !r.s.personExists(id) {
				return repository.ErrPersonNotFound
			}
		}
	}

	cur.Title = t.Title
	cur.Description = t.Description
	cur.Status = t.Status
	cur.DueDate = t.DueDate
	r.s.tasks[t.ID] = cur
	t.CreatedAt = cur.CreatedAt

	if assigneeIDs != nil {
		r.s.assignees[t.ID] = dedupe(*assigneeIDs)
	}
	return nil
}

func (r *TaskRepository) ReplaceAssignees(ctx context.Context, taskID string, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[taskID]; !ok {
		return repository.ErrTaskNotFound
	}
	for _, id := range ids {
		if !r.s.personExists(id) {
			return repository.ErrPersonNotFound
		}
	}
	r.s.assignees[taskID] = dedupe(ids)
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	delete(r.s.assignees, id)
	r.s.feedback = slices.DeleteFunc(r.s.feedback, func(fb domain.Feedback) bool { return fb.TaskID == id })
	return nil
}

// materialize builds a detached copy of a task with resolved assignees.
// Callers hold at least the read lock.
func (s *Store) materialize(id string, withFeedback bool) *domain.Task {
	t := s.tasks[id]
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}

	t.Assignees = []domain.Person{}
	for _, pid := range s.assignees[id] {
		if rec, ok := s.people[pid]; ok {
			t.Assignees = append(t.Assignees, rec.person)
		}
	}
	slices.SortStableFunc(t.Assignees, func(a, b domain.Person) int {
		return strings.Compare(a.Name, b.Name)
	})

	history := s.feedbackFor(id)
	t.FeedbackCount = len(history)
	if len(history) > 0 {
		latestAt := history[0].CreatedAt
		t.LatestFeedback = history[0].Text
		t.LatestFeedbackAt = &latestAt
	}
	if withFeedback {
		t.Feedback = history
	}
	return &t
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
