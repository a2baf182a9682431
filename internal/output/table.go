package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
	"taskboard/internal/domain"
)

const (
	maxTitleWidth  = 40
	maxPeopleWidth = 30
	idWidth        = 8
)

// ShortID returns the first characters of a uuid, enough to tell tasks apart
// on screen. Commands accept any unique prefix.
func ShortID(id string) string {
	if len(id) <= idWidth {
		return id
	}
	return id[:idWidth]
}

// TaskTable renders tasks one per row.
func TaskTable(w io.Writer, tasks []domain.Task, today domain.Date) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	statusW, titleW, peopleW, dueW := 8, 7, 11, 12
	for _, t := range tasks {
		statusW = max(statusW, lipgloss.Width(string(t.Status))+pad)
		titleW = max(titleW, min(lipgloss.Width(t.Title)+pad, maxTitleWidth+pad))
		peopleW = max(peopleW, min(lipgloss.Width(assigneeNames(t))+pad, maxPeopleWidth+pad))
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		idWidth+1, "ID", statusW, "STATUS", titleW, "TITLE",
		peopleW, "ASSIGNEES", dueW, "DUE", "FEEDBACK")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		people := truncate(assigneeNames(t), maxPeopleWidth)
		if people == "" {
			people = dimStyle.Render("--")
		} else {
			people = peopleStyle.Render(people)
		}
		row := fmt.Sprintf("%-*s %s %s %s %s %s",
			idWidth+1, ShortID(t.ID),
			padRight(styledStatus(t.Status), statusW),
			padRight(truncate(t.Title, maxTitleWidth), titleW),
			padRight(people, peopleW),
			padRight(dueDisplay(t, board.IsOverdue(t, today)), dueW),
			stringOrDash(truncate(t.LatestFeedback, maxTitleWidth)))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with its feedback history.
func TaskDetail(w io.Writer, t *domain.Task, today domain.Date) {
	titleLine := fmt.Sprintf("Task %s: %s", ShortID(t.ID), t.Title)
	fmt.Fprintln(w, titleStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "ID", t.ID)
	printField(w, "Status", styledStatus(t.Status))
	printField(w, "Due", dueDisplay(*t, board.IsOverdue(*t, today)))
	printField(w, "Assignees", stringOrDash(assigneeNames(*t)))
	printField(w, "Created", t.CreatedAt.Local().Format("2006-01-02 15:04"))

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}

	fmt.Fprintln(w)
	if len(t.Feedback) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No feedback yet."))
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Feedback (%d)", len(t.Feedback))))
	for _, fb := range t.Feedback {
		author := fb.UserName
		if author == "" {
			author = "anonymous"
		}
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Render(fb.CreatedAt.Local().Format("2006-01-02 15:04")), peopleStyle.Render(author))
		for _, line := range strings.Split(fb.Text, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

func PeopleTable(w io.Writer, people []domain.Person) {
	if len(people) == 0 {
		fmt.Fprintln(os.Stderr, "No people found.")
		return
	}

	nameW, emailW := 6, 7
	for _, p := range people {
		nameW = max(nameW, lipgloss.Width(p.Name)+2)
		emailW = max(emailW, lipgloss.Width(p.Email)+2)
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-36s %-*s %-*s", "ID", nameW, "NAME", emailW, "EMAIL")))
	for _, p := range people {
		row := fmt.Sprintf("%-36s %s %s", p.ID, padRight(p.Name, nameW), stringOrDash(p.Email))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

func ActivityTable(w io.Writer, logs []domain.AuditLog) {
	if len(logs) == 0 {
		fmt.Fprintln(os.Stderr, "No activity yet.")
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-19s %-14s %-9s %s", "WHEN", "ACTION", "TASK", "ACTOR")))
	for _, l := range logs {
		task := ""
		if l.TaskID != nil {
			task = ShortID(*l.TaskID)
		}
		actor := ""
		if l.PersonID != nil {
			actor = ShortID(*l.PersonID)
		}
		fmt.Fprintf(w, "%-19s %-14s %s %s\n",
			l.CreatedAt.Local().Format(time.DateTime),
			l.Action,
			padRight(stringOrDash(task), 9),
			stringOrDash(actor))
	}
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}
