package board

import (
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/domain"
)

var (
	ErrNoMatch   = errors.New("no task matches")
	ErrAmbiguous = errors.New("task id prefix is ambiguous")
)

// FindByPrefix returns the one task whose id equals or starts with prefix.
func FindByPrefix(tasks []domain.Task, prefix string) (domain.Task, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return domain.Task{}, fmt.Errorf("%w: empty id", ErrNoMatch)
	}

	var found []domain.Task
	for _, t := range tasks {
		id := strings.ToLower(t.ID)
		if id == prefix {
			return t, nil
		}
		if strings.HasPrefix(id, prefix) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return domain.Task{}, fmt.Errorf("%w %q", ErrNoMatch, prefix)
	case 1:
		return found[0], nil
	default:
		return domain.Task{}, fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguous, prefix, len(found))
	}
}
