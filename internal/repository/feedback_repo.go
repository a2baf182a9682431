package repository

import (
	"context"
	"fmt"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackRepository struct {
	db *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Add appends a feedback entry and fills CreatedAt and the author fields.
func (r *FeedbackRepository) Add(ctx context.Context, fb *domain.Feedback) error {
	return insertFeedback(ctx, r.db, fb)
}

// ListByTask returns a task's feedback, newest first.
func (r *FeedbackRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Feedback, error) {
	return listFeedback(ctx, r.db, taskID)
}

func insertFeedback(ctx context.Context, q querier, fb *domain.Feedback) error {
	err := q.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO feedback (id, task_id, text, user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING user_id, created_at
		)
		SELECT ins.created_at, COALESCE(p.name, ''), COALESCE(p.avatar_url, '')
		FROM ins
		LEFT JOIN people p ON p.id = ins.user_id
	`, fb.ID, fb.TaskID, fb.Text, fb.UserID).Scan(&fb.CreatedAt, &fb.UserName, &fb.UserAvatar)
	if err != nil {
		if c := classify(err); c != err {
			return c
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func listFeedback(ctx context.Context, q querier, taskID string) ([]domain.Feedback, error) {
	rows, err := q.Query(ctx, `
		SELECT f.id, f.task_id, f.text, f.user_id,
		       COALESCE(p.name, ''), COALESCE(p.avatar_url, ''), f.created_at
		FROM feedback f
		LEFT JOIN people p ON p.id = f.user_id
		WHERE f.task_id = $1
		ORDER BY f.created_at DESC, f.id DESC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	out := []domain.Feedback{}
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.TaskID, &fb.Text, &fb.UserID, &fb.UserName, &fb.UserAvatar, &fb.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}
