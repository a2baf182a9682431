package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// Live event types published after each committed change.
const (
	EventTaskCreated   = "task_created"
	EventTaskUpdated   = "task_updated"
	EventTaskDeleted   = "task_deleted"
	EventFeedbackAdded = "feedback_added"
	EventPersonCreated = "person_created"
)

type TaskService struct {
	tasks           TaskStore
	feedback        FeedbackStore
	audit           *AuditService
	events          Notifier
	requireAssignee bool
}

func NewTaskService(tasks TaskStore, feedback FeedbackStore, audit *AuditService, events Notifier, requireAssignee bool) *TaskService {
	if events == nil {
		events = nopNotifier{}
	}
	return &TaskService{
		tasks:           tasks,
		feedback:        feedback,
		audit:           audit,
		events:          events,
		requireAssignee: requireAssignee,
	}
}

type ListTasksInput struct {
	AssigneeIDs []string
	Sort        string
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	DueDate     string
	AssigneeIDs []string
	Feedback    string
}

// UpdateTaskInput is a full replacement of the task's fields. A nil
// AssigneeIDs leaves the assignee set untouched.
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      string
	DueDate     string
	AssigneeIDs *[]string
}

type AddFeedbackInput struct {
	Text   string
	UserID string
}

func (s *TaskService) List(ctx context.Context, in ListTasksInput) ([]*domain.Task, error) {
	switch in.Sort {
	case "", repository.SortDue, repository.SortTitle:
	default:
		return nil, invalidf("sort must be %q or %q", repository.SortDue, repository.SortTitle)
	}
	return s.tasks.List(ctx, repository.TaskFilter{
		AssigneeIDs: normalizeIDs(in.AssigneeIDs),
		Sort:        in.Sort,
	})
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.Get(ctx, strings.TrimSpace(id))
}

func (s *TaskService) Create(ctx context.Context, actor Actor, in CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidf("title is required")
	}

	status := domain.StatusNew
	if strings.TrimSpace(in.Status) != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, invalidf("status: %v", err)
		}
		status = st
	}

	due, err := domain.ParseOptionalDate(in.DueDate)
	if err != nil {
		return nil, invalidf("due_date: %v", err)
	}

	assignees := normalizeIDs(in.AssigneeIDs)
	if s.requireAssignee && len(assignees) == 0 {
		return nil, invalidf("at least one assignee is required")
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		DueDate:     due,
	}

	var initial *domain.Feedback
	if text := strings.TrimSpace(in.Feedback); text != "" {
		initial = &domain.Feedback{
			ID:     uuid.NewString(),
			Text:   text,
			UserID: actor.personRef(),
		}
	}

	if err := s.tasks.Create(ctx, task, assignees, initial); err != nil {
		return nil, err
	}

	created, err := s.tasks.Get(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("reload created task: %w", err)
	}

	logger.WithContext(ctx).Info("task created", "task_id", task.ID, "assignees", len(assignees))
	s.events.Publish(EventTaskCreated, task.ID)
	s.audit.Log(ctx, actor, domain.AuditActionTaskCreate, task.ID, map[string]interface{}{
		"title":        title,
		"status":       string(status),
		"assignee_ids": assignees,
	})
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, actor Actor, id string, in UpdateTaskInput) (*domain.Task, error) {
	id = strings.TrimSpace(id)
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidf("title is required")
	}
	if strings.TrimSpace(in.Status) == "" {
		return nil, invalidf("status is required")
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, invalidf("status: %v", err)
	}
	due, err := domain.ParseOptionalDate(in.DueDate)
	if err != nil {
		return nil, invalidf("due_date: %v", err)
	}

	var assignees *[]string
	if in.AssigneeIDs != nil {
		ids := normalizeIDs(*in.AssigneeIDs)
		assignees = &ids
	}

	task := &domain.Task{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		DueDate:     due,
	}
	if err := s.tasks.Update(ctx, task, assignees); err != nil {
		return nil, err
	}

	updated, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload updated task: %w", err)
	}

	details := map[string]interface{}{"status": string(status)}
	if assignees != nil {
		details["assignee_ids"] = *assignees
	}
	s.events.Publish(EventTaskUpdated, id)
	s.audit.Log(ctx, actor, domain.AuditActionTaskUpdate, id, details)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, actor Actor, id string) error {
	id = strings.TrimSpace(id)
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	logger.WithContext(ctx).Info("task deleted", "task_id", id)
	s.events.Publish(EventTaskDeleted, id)
	s.audit.Log(ctx, actor, domain.AuditActionTaskDelete, id, nil)
	return nil
}

// AddFeedback appends a note. The author defaults to the authenticated actor.
func (s *TaskService) AddFeedback(ctx context.Context, actor Actor, taskID string, in AddFeedbackInput) (*domain.Feedback, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, invalidf("text is required")
	}

	fb := &domain.Feedback{
		ID:     uuid.NewString(),
		TaskID: strings.TrimSpace(taskID),
		Text:   text,
		UserID: actor.personRef(),
	}
	if uid := strings.TrimSpace(in.UserID); uid != "" {
		fb.UserID = &uid
	}

	if err := s.feedback.Add(ctx, fb); err != nil {
		return nil, err
	}

	s.events.Publish(EventFeedbackAdded, fb.TaskID)
	s.audit.Log(ctx, actor, domain.AuditActionFeedbackAdd, fb.TaskID, map[string]interface{}{
		"feedback_id": fb.ID,
	})
	return fb, nil
}

// normalizeIDs trims, drops empties and removes duplicates, keeping order.
func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
