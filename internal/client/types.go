package client

// TaskInput is the full task state sent on create and update. Updates
// always carry every field, so a move sends the unchanged title,
// description, due date and assignees along with the new status.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	DueDate     string   `json:"due_date"`
	AssigneeIDs []string `json:"assignee_ids"`
	// Feedback is only read on create.
	Feedback string `json:"feedback,omitempty"`
}

type PersonInput struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Password  string `json:"password,omitempty"`
}

type feedbackInput struct {
	Text   string `json:"text"`
	UserID string `json:"user_id,omitempty"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
