// Package board builds the column view of a task list.
package board

import (
	"taskboard/internal/client"
	"taskboard/internal/domain"
)

// Column holds the tasks of one status, in list order.
type Column struct {
	Status domain.Status `json:"status"`
	Tasks  []domain.Task `json:"tasks"`
}

// Board is one column per status in workflow order. Tasks whose status is
// not a known column are kept in Unmapped instead of being dropped.
type Board struct {
	Columns  []Column      `json:"columns"`
	Unmapped []domain.Task `json:"unmapped,omitempty"`
}

// Build groups the visible tasks into columns. Task order within a column
// follows the input order.
func Build(tasks []domain.Task, filter Filter) Board {
	statuses := domain.Statuses()
	b := Board{Columns: make([]Column, len(statuses))}
	for i, s := range statuses {
		b.Columns[i] = Column{Status: s, Tasks: []domain.Task{}}
	}

	for _, t := range tasks {
		if !filter.Visible(t) {
			continue
		}
		i := t.Status.Index()
		if i < 0 {
			b.Unmapped = append(b.Unmapped, t)
			continue
		}
		b.Columns[i].Tasks = append(b.Columns[i].Tasks, t)
	}
	return b
}

// Total counts every task on the board, unmapped included.
func (b Board) Total() int {
	n := len(b.Unmapped)
	for _, c := range b.Columns {
		n += len(c.Tasks)
	}
	return n
}

// IsOverdue reports whether the task is past its due date and not done.
// A task due today is not overdue.
func IsOverdue(t domain.Task, today domain.Date) bool {
	if t.DueDate == nil || t.Status == domain.StatusDone {
		return false
	}
	return t.DueDate.Before(today)
}

// Move returns the full update for t with only the status changed.
func Move(t domain.Task, status domain.Status) client.TaskInput {
	in := client.TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      string(status),
		AssigneeIDs: t.AssigneeIDs(),
	}
	if t.DueDate != nil {
		in.DueDate = t.DueDate.String()
	}
	return in
}
