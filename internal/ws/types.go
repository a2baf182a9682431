package ws

import "time"

// Event tells connected boards that something changed and they should refetch.
type Event struct {
	Type   string    `json:"type"`
	TaskID string    `json:"task_id,omitempty"`
	At     time.Time `json:"at"`
}

const (
	// server - client
	MsgHello = "hello"
)
