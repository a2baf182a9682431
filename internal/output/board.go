package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
	"taskboard/internal/domain"
)

const minColumnWidth = 18

// BoardView renders one bordered column per status side by side, followed by
// the task count. width is the terminal width; zero or less falls back to 120.
func BoardView(w io.Writer, b board.Board, today domain.Date, width int) {
	if width <= 0 {
		width = 120
	}
	n := len(b.Columns)
	if n == 0 {
		return
	}
	// border and padding take four cells per column
	colW := max(width/n-4, minColumnWidth)

	cols := make([]string, 0, n)
	for _, c := range b.Columns {
		cols = append(cols, renderColumn(c, today, colW))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cols...))

	if len(b.Unmapped) > 0 {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Unknown status (%d)", len(b.Unmapped))))
		for _, t := range b.Unmapped {
			fmt.Fprintf(w, "  %s %s %s\n", ShortID(t.ID), truncate(t.Title, maxTitleWidth), dimStyle.Render("["+string(t.Status)+"]"))
		}
	}
	fmt.Fprintln(w, dimStyle.Render(taskCount(b.Total())))
}

func taskCount(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

func renderColumn(c board.Column, today domain.Date, width int) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", styledStatus(c.Status), len(c.Tasks))))
	for _, t := range c.Tasks {
		sb.WriteString("\n\n")
		sb.WriteString(renderCard(t, today, width))
	}
	return columnStyle.Width(width).Render(sb.String())
}

func renderCard(t domain.Task, today domain.Date, width int) string {
	lines := []string{
		titleStyle.Render(truncate(t.Title, width)),
		dimStyle.Render(ShortID(t.ID)),
	}
	if names := assigneeNames(t); names != "" {
		lines = append(lines, peopleStyle.Render(truncate(names, width)))
	}
	if t.DueDate != nil {
		lines = append(lines, dueDisplay(t, board.IsOverdue(t, today)))
	}
	if t.LatestFeedback != "" {
		lines = append(lines, dimStyle.Render(truncate(t.LatestFeedback, width)))
	}
	return strings.Join(lines, "\n")
}
