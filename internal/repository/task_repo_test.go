package repository

import (
	"testing"
	"time"

	"taskboard/internal/domain"
)

func strp(s string) *string { return &s }

func TestGroupTaskRows(t *testing.T) {
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	noteAt := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)

	rows := []taskRow{
		{ID: "t1", Title: "Fix login bug", Status: "Yeni Talep", DueDate: &due, PersonID: strp("p1"), PersonName: strp("Ayşe"), LatestText: strp("looking"), LatestAt: &noteAt, FeedbackCount: 2},
		{ID: "t1", Title: "Fix login bug", Status: "Yeni Talep", DueDate: &due, PersonID: strp("p2"), PersonName: strp("Mehmet"), LatestText: strp("looking"), LatestAt: &noteAt, FeedbackCount: 2},
		{ID: "t2", Title: "Write docs", Status: "Beklemede"},
		// a repeated join row must not duplicate the assignee
		{ID: "t1", Title: "Fix login bug", Status: "Yeni Talep", DueDate: &due, PersonID: strp("p2"), PersonName: strp("Mehmet")},
	}

	tasks := groupTaskRows(rows)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	first := tasks[0]
	if first.ID != "t1" || len(first.Assignees) != 2 {
		t.Fatalf("unexpected first task: %+v", first)
	}
	if first.Assignees[0].Name != "Ayşe" || first.Assignees[1].ID != "p2" {
		t.Fatalf("assignee order not preserved: %+v", first.Assignees)
	}
	if first.LatestFeedback != "looking" || first.LatestFeedbackAt == nil || first.FeedbackCount != 2 {
		t.Fatalf("latest feedback not carried: %+v", first)
	}
	if first.DueDate == nil || first.DueDate.String() != "2025-05-01" {
		t.Fatalf("due date = %v", first.DueDate)
	}
	if first.Status != domain.StatusNew {
		t.Fatalf("status = %q", first.Status)
	}

	second := tasks[1]
	if second.Assignees == nil || len(second.Assignees) != 0 {
		t.Fatalf("task without assignees must have an empty, non-nil list: %#v", second.Assignees)
	}
	if second.DueDate != nil || second.LatestFeedback != "" {
		t.Fatalf("unexpected optional fields on second task: %+v", second)
	}
}

func TestGroupTaskRowsEmpty(t *testing.T) {
	tasks := groupTaskRows(nil)
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", tasks)
	}
}
