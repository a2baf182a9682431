package handlers

import (
	"net/http"
	"strings"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	DueDate     string   `json:"due_date"`
	AssigneeIDs []string `json:"assignee_ids"`
	Feedback    string   `json:"feedback"`
}

type assigneeRef struct {
	ID string `json:"id"`
}

// updateTaskRequest accepts the assignee set either as ids or as
// {id} objects. Omitting both leaves assignees unchanged.
type updateTaskRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Status      string         `json:"status" binding:"required"`
	DueDate     string         `json:"due_date"`
	AssigneeIDs *[]string      `json:"assignee_ids"`
	Assignees   *[]assigneeRef `json:"assignees"`
}

func (r updateTaskRequest) assigneeIDs() *[]string {
	if r.AssigneeIDs != nil {
		return r.AssigneeIDs
	}
	if r.Assignees == nil {
		return nil
	}
	ids := make([]string, 0, len(*r.Assignees))
	for _, a := range *r.Assignees {
		ids = append(ids, a.ID)
	}
	return &ids
}

type feedbackRequest struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id"`
}

// ListTasks handles GET /tasks?assignee=<id>&assignee=<id>&sort=due|title
func (h *Handler) ListTasks(c *gin.Context) {
	var assignees []string
	for _, v := range c.QueryArray("assignee") {
		assignees = append(assignees, strings.Split(v, ",")...)
	}

	tasks, err := h.Tasks.List(c.Request.Context(), service.ListTasksInput{
		AssigneeIDs: assignees,
		Sort:        c.Query("sort"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	task, err := h.Tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, task)
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), actorFrom(c), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		AssigneeIDs: req.AssigneeIDs,
		Feedback:    req.Feedback,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), actorFrom(c), c.Param("id"), service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		AssigneeIDs: req.assigneeIDs(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := h.Tasks.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) AddFeedback(c *gin.Context) {
	var req feedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	fb, err := h.Tasks.AddFeedback(c.Request.Context(), actorFrom(c), c.Param("id"), service.AddFeedbackInput{
		Text:   req.Text,
		UserID: req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, fb)
}
