package domain

import "time"

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	DueDate     *Date     `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	Assignees   []Person  `json:"assignees"`

	// Set on list results: the newest feedback entry is the task's current note.
	LatestFeedback   string     `json:"latest_feedback,omitempty"`
	LatestFeedbackAt *time.Time `json:"latest_feedback_at,omitempty"`
	FeedbackCount    int        `json:"feedback_count"`

	// Full history, newest first. Only filled for single-task reads.
	Feedback []Feedback `json:"feedback,omitempty"`
}

func (t *Task) HasAssignee(personID string) bool {
	for _, p := range t.Assignees {
		if p.ID == personID {
			return true
		}
	}
	return false
}

func (t *Task) AssigneeIDs() []string {
	ids := make([]string, 0, len(t.Assignees))
	for _, p := range t.Assignees {
		ids = append(ids, p.ID)
	}
	return ids
}
