package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrPersonNotFound = errors.New("person not found")
	ErrEmailTaken     = errors.New("email already registered")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// classify maps constraint violations onto the package sentinels. Anything
// else is returned unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "task_assignees_task_id_fkey", "feedback_task_id_fkey":
			return ErrTaskNotFound
		case "task_assignees_person_id_fkey", "feedback_user_id_fkey":
			return ErrPersonNotFound
		}
	case pgUniqueViolation:
		if pgErr.ConstraintName == "people_email_key" {
			return ErrEmailTaken
		}
	}
	return err
}
