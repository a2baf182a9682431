package domain

import "time"

// Feedback is an append-only note on a task.
type Feedback struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	Text       string    `json:"text"`
	UserID     *string   `json:"user_id,omitempty"`
	UserName   string    `json:"user_name,omitempty"`
	UserAvatar string    `json:"user_avatar,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
