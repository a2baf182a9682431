package board

import (
	"errors"
	"testing"
	"time"

	"taskboard/internal/domain"
)

func task(id string, status domain.Status, assignees ...string) domain.Task {
	t := domain.Task{ID: id, Title: "task " + id, Status: status}
	for _, a := range assignees {
		t.Assignees = append(t.Assignees, domain.Person{ID: a, Name: a})
	}
	return t
}

func TestBuildGroupsByStatus(t *testing.T) {
	tasks := []domain.Task{
		task("1", domain.StatusNew, "ali"),
		task("2", domain.StatusDone),
		task("3", domain.StatusNew, "ayse"),
		task("4", domain.Status("Arşiv"), "ali"),
	}

	b := Build(tasks, NewFilter())
	if len(b.Columns) != 5 {
		t.Fatalf("columns = %d", len(b.Columns))
	}
	if b.Columns[0].Status != domain.StatusNew || len(b.Columns[0].Tasks) != 2 {
		t.Fatalf("first column = %+v", b.Columns[0])
	}
	if b.Columns[0].Tasks[0].ID != "1" || b.Columns[0].Tasks[1].ID != "3" {
		t.Fatalf("input order not kept: %+v", b.Columns[0].Tasks)
	}
	if len(b.Columns[4].Tasks) != 1 || len(b.Columns[1].Tasks) != 0 {
		t.Fatalf("unexpected column fill: %+v", b.Columns)
	}
	if len(b.Unmapped) != 1 || b.Unmapped[0].ID != "4" {
		t.Fatalf("unmapped = %+v", b.Unmapped)
	}
	if b.Total() != 4 {
		t.Fatalf("total = %d", b.Total())
	}
}

func TestFilterIntersection(t *testing.T) {
	tasks := []domain.Task{
		task("1", domain.StatusNew, "ali", "ayse"),
		task("2", domain.StatusNew, "mehmet"),
		task("3", domain.StatusNew),
	}

	f := NewFilter("ayse", " ")
	if len(f) != 1 {
		t.Fatalf("blank ids must be ignored: %v", f.IDs())
	}
	b := Build(tasks, f)
	if b.Total() != 1 || b.Columns[0].Tasks[0].ID != "1" {
		t.Fatalf("filtered board = %+v", b.Columns[0].Tasks)
	}

	f.Toggle("mehmet")
	if got := f.IDs(); len(got) != 2 || got[0] != "ayse" || got[1] != "mehmet" {
		t.Fatalf("IDs = %v", got)
	}
	if Build(tasks, f).Total() != 2 {
		t.Fatalf("expected two visible tasks")
	}

	f.Toggle("ayse")
	f.Toggle("mehmet")
	if !f.Empty() || Build(tasks, f).Total() != 3 {
		t.Fatalf("empty filter must show all tasks")
	}
}

func TestIsOverdue(t *testing.T) {
	today := domain.NewDate(2025, time.March, 10)
	yesterday := domain.NewDate(2025, time.March, 9)

	tk := task("1", domain.StatusInProgress)
	if IsOverdue(tk, today) {
		t.Fatalf("task without due date cannot be overdue")
	}
	tk.DueDate = &yesterday
	if !IsOverdue(tk, today) {
		t.Fatalf("expected overdue")
	}
	tk.DueDate = &today
	if IsOverdue(tk, today) {
		t.Fatalf("due today is not overdue")
	}
	tk.DueDate = &yesterday
	tk.Status = domain.StatusDone
	if IsOverdue(tk, today) {
		t.Fatalf("done tasks are never overdue")
	}
}

func TestMoveCarriesFullState(t *testing.T) {
	due := domain.NewDate(2025, time.April, 1)
	tk := task("1", domain.StatusNew, "ali", "ayse")
	tk.Description = "detay"
	tk.DueDate = &due

	in := Move(tk, domain.StatusTesting)
	if in.Status != string(domain.StatusTesting) {
		t.Fatalf("status = %q", in.Status)
	}
	if in.Title != tk.Title || in.Description != "detay" || in.DueDate != "2025-04-01" {
		t.Fatalf("fields not carried: %+v", in)
	}
	if len(in.AssigneeIDs) != 2 || in.AssigneeIDs[1] != "ayse" {
		t.Fatalf("assignees = %v", in.AssigneeIDs)
	}
	if tk.Status != domain.StatusNew {
		t.Fatalf("Move must not modify the task")
	}

	tk.DueDate = nil
	if Move(tk, domain.StatusDone).DueDate != "" {
		t.Fatalf("missing due date must stay empty")
	}
}

func TestFindByPrefix(t *testing.T) {
	tasks := []domain.Task{
		task("abc123", domain.StatusNew),
		task("abd456", domain.StatusNew),
		task("ab", domain.StatusNew),
	}

	got, err := FindByPrefix(tasks, "ABC")
	if err != nil || got.ID != "abc123" {
		t.Fatalf("FindByPrefix(ABC) = %v, %v", got.ID, err)
	}
	got, err = FindByPrefix(tasks, "ab")
	if err != nil || got.ID != "ab" {
		t.Fatalf("exact id must win over prefix matches: %v, %v", got.ID, err)
	}
	if _, err := FindByPrefix(tasks, "abx"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if _, err := FindByPrefix(tasks[:2], "ab"); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := FindByPrefix(tasks, " "); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch for blank id, got %v", err)
	}
}
