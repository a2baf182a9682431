// Package output renders boardctl results as styled text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Format represents an output format.
type Format int

const (
	// FormatText is the styled human-readable default.
	FormatText Format = iota
	// FormatJSON outputs indented JSON.
	FormatJSON
)

// Detect returns FormatJSON when the flag is set or TASKBOARD_OUTPUT=json.
func Detect(jsonFlag bool) Format {
	if jsonFlag || os.Getenv("TASKBOARD_OUTPUT") == "json" {
		return FormatJSON
	}
	return FormatText
}

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON shape of a failed command.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

func JSONError(w io.Writer, msg string, status int) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(ErrorResponse{Error: msg, Status: status})
}

func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}
