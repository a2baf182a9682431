package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the board column a task sits in. Any status may move to any other.
type Status string

const (
	StatusNew        Status = "Yeni Talep"
	StatusInProgress Status = "Devam Ediyor"
	StatusOnHold     Status = "Beklemede"
	StatusTesting    Status = "Test Aşamasında"
	StatusDone       Status = "Tamamlandı"
)

var ErrUnknownStatus = errors.New("unknown status")

var statusOrder = [...]Status{
	StatusNew,
	StatusInProgress,
	StatusOnHold,
	StatusTesting,
	StatusDone,
}

// Statuses returns every status in column order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder[:])
	return out
}

// ParseStatus accepts a status name or its slug (case-insensitive for slugs).
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range statusOrder {
		if string(st) == s || strings.EqualFold(st.Slug(), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s Status) Valid() bool {
	return s.Index() >= 0
}

// Index is the column position, -1 for an unknown status.
func (s Status) Index() int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Slug is the ASCII key used for styling and CLI arguments.
func (s Status) Slug() string {
	switch s {
	case StatusNew:
		return "yeni"
	case StatusInProgress:
		return "devam"
	case StatusOnHold:
		return "beklemede"
	case StatusTesting:
		return "test"
	case StatusDone:
		return "tamamlandi"
	default:
		return ""
	}
}

func (s Status) String() string {
	return string(s)
}
