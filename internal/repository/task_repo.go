package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	SortDue   = "due"
	SortTitle = "title"
)

// TaskFilter narrows List. An empty AssigneeIDs set means every task.
type TaskFilter struct {
	AssigneeIDs []string
	Sort        string
}

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskListSelect = `
	SELECT t.id, t.title, t.description, t.status, t.due_date, t.created_at,
	       p.id, p.name, p.email, p.avatar_url, p.created_at,
	       lf.text, lf.created_at, fc.n
	FROM tasks t
	LEFT JOIN task_assignees ta ON ta.task_id = t.id
	LEFT JOIN people p ON p.id = ta.person_id
	LEFT JOIN LATERAL (
		SELECT f.text, f.created_at
		FROM feedback f
		WHERE f.task_id = t.id
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT 1
	) lf ON true
	LEFT JOIN LATERAL (
		SELECT count(*)::int AS n FROM feedback f WHERE f.task_id = t.id
	) fc ON true`

// taskRow is one row of the flattened list query: a task repeated once per
// assignee, with NULL person columns when it has none.
type taskRow struct {
	ID            string
	Title         string
	Description   string
	Status        string
	DueDate       *time.Time
	CreatedAt     time.Time
	PersonID      *string
	PersonName    *string
	PersonEmail   *string
	PersonAvatar  *string
	PersonCreated *time.Time
	LatestText    *string
	LatestAt      *time.Time
	FeedbackCount int
}

// List returns tasks with their assignees and latest feedback.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error) {
	query := taskListSelect
	var args []any
	if len(filter.AssigneeIDs) > 0 {
		query += `
	WHERE EXISTS (
		SELECT 1 FROM task_assignees x
		WHERE x.task_id = t.id AND x.person_id = ANY($1::text[])
	)`
		args = append(args, filter.AssigneeIDs)
	}
	switch filter.Sort {
	case SortTitle:
		query += `
	ORDER BY lower(t.title) ASC, t.id DESC, p.name ASC`
	default:
		query += `
	ORDER BY t.due_date ASC NULLS LAST, t.id DESC, p.name ASC`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var flat []taskRow
	for rows.Next() {
		var row taskRow
		if err := rows.Scan(
			&row.ID, &row.Title, &row.Description, &row.Status, &row.DueDate, &row.CreatedAt,
			&row.PersonID, &row.PersonName, &row.PersonEmail, &row.PersonAvatar, &row.PersonCreated,
			&row.LatestText, &row.LatestAt, &row.FeedbackCount,
		); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return groupTaskRows(flat), nil
}

// groupTaskRows collapses consecutive-or-not rows sharing a task id into one
// task, keeping first-seen task order and row order of assignees.
func groupTaskRows(rows []taskRow) []*domain.Task {
	out := make([]*domain.Task, 0)
	byID := make(map[string]*domain.Task)
	for _, row := range rows {
		t, ok := byID[row.ID]
		if !ok {
			t = &domain.Task{
				ID:            row.ID,
				Title:         row.Title,
				Description:   row.Description,
				Status:        domain.Status(row.Status),
				DueDate:       fromDBDate(row.DueDate),
				CreatedAt:     row.CreatedAt,
				Assignees:     []domain.Person{},
				FeedbackCount: row.FeedbackCount,
			}
			if row.LatestText != nil {
				t.LatestFeedback = *row.LatestText
				t.LatestFeedbackAt = row.LatestAt
			}
			byID[row.ID] = t
			out = append(out, t)
		}
		if row.PersonID == nil || t.HasAssignee(*row.PersonID) {
			continue
		}
		p := domain.Person{ID: *row.PersonID}
		if row.PersonName != nil {
			p.Name = *row.PersonName
		}
		if row.PersonEmail != nil {
			p.Email = *row.PersonEmail
		}
		if row.PersonAvatar != nil {
			p.AvatarURL = *row.PersonAvatar
		}
		if row.PersonCreated != nil {
			p.CreatedAt = *row.PersonCreated
		}
		t.Assignees = append(t.Assignees, p)
	}
	return out
}

// Get returns one task with assignees and its full feedback history.
func (r *TaskRepository) Get(ctx context.Context, id string) (*domain.Task, error) {
	var task *domain.Task
	err := inTx(ctx, r.db, readOnlySnapshot, func(tx pgx.Tx) error {
		t, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if t.Assignees, err = listAssignees(ctx, tx, id); err != nil {
			return err
		}
		if t.Feedback, err = listFeedback(ctx, tx, id); err != nil {
			return err
		}
		t.FeedbackCount = len(t.Feedback)
		if len(t.Feedback) > 0 {
			latest := t.Feedback[0]
			t.LatestFeedback = latest.Text
			t.LatestFeedbackAt = &latest.CreatedAt
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func getTask(ctx context.Context, q querier, id string) (*domain.Task, error) {
	var (
		t      domain.Task
		status string
		due    *time.Time
	)
	err := q.QueryRow(ctx, `
		SELECT id, title, description, status, due_date, created_at
		FROM tasks
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.Description, &status, &due, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	t.Status = domain.Status(status)
	t.DueDate = fromDBDate(due)
	return &t, nil
}

func listAssignees(ctx context.Context, q querier, taskID string) ([]domain.Person, error) {
	rows, err := q.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.email, ''), COALESCE(p.avatar_url, ''), p.created_at
		FROM task_assignees ta
		JOIN people p ON p.id = ta.person_id
		WHERE ta.task_id = $1
		ORDER BY p.name ASC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list assignees: %w", err)
	}
	defer rows.Close()

	out := []domain.Person{}
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.AvatarURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts the task row, one join row per assignee and the optional
// first feedback entry in a single transaction. CreatedAt is filled in.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task, assigneeIDs []string, initial *domain.Feedback) error {
	return inTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO tasks (id, title, description, status, due_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`, t.ID, t.Title, t.Description, string(t.Status), toDBDate(t.DueDate)).Scan(&t.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert task: %w", classify(err))
		}
		if err := insertAssignees(ctx, tx, t.ID, assigneeIDs); err != nil {
			return err
		}
		if initial != nil {
			initial.TaskID = t.ID
			if err := insertFeedback(ctx, tx, initial); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update overwrites every mutable column. A non-nil assigneeIDs replaces the
// assignee set in the same transaction.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task, assigneeIDs *[]string) error {
	return inTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE tasks
			SET title = $2, description = $3, status = $4, due_date = $5
			WHERE id = $1
			RETURNING created_at
		`, t.ID, t.Title, t.Description, string(t.Status), toDBDate(t.DueDate)).Scan(&t.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("update task: %w", err)
		}
		if assigneeIDs == nil {
			return nil
		}
		return replaceAssignees(ctx, tx, t.ID, *assigneeIDs)
	})
}

// ReplaceAssignees swaps the whole assignee set of a task.
func (r *TaskRepository) ReplaceAssignees(ctx context.Context, taskID string, ids []string) error {
	return inTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT true FROM tasks WHERE id = $1 FOR UPDATE`, taskID).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("lock task: %w", err)
		}
		return replaceAssignees(ctx, tx, taskID, ids)
	})
}

// Delete removes the task; assignments and feedback go with it.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func replaceAssignees(ctx context.Context, q querier, taskID string, ids []string) error {
	if _, err := q.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("clear assignees: %w", err)
	}
	return insertAssignees(ctx, q, taskID, ids)
}

func insertAssignees(ctx context.Context, q querier, taskID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `
		INSERT INTO task_assignees (task_id, person_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT DO NOTHING
	`, taskID, ids)
	if err != nil {
		if c := classify(err); c != err {
			return c
		}
		return fmt.Errorf("insert assignees: %w", err)
	}
	return nil
}

func toDBDate(d *domain.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func fromDBDate(t *time.Time) *domain.Date {
	if t == nil {
		return nil
	}
	d := domain.DateOf(*t)
	return &d
}
