package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"taskboard/internal/board"
	"taskboard/internal/domain"
)

func init() {
	DisableColor()
}

func sampleTasks() []domain.Task {
	past := domain.NewDate(2025, time.January, 5)
	return []domain.Task{
		{
			ID:             "0f8e2a7c-1111-2222-3333-444455556666",
			Title:          "Sunucu güncellemesi",
			Status:         domain.StatusInProgress,
			DueDate:        &past,
			Assignees:      []domain.Person{{ID: "p1", Name: "Ayşe"}, {ID: "p2", Name: "Mehmet"}},
			LatestFeedback: "yarın bitecek",
		},
		{ID: "t2", Title: "Arşiv", Status: domain.Status("Arşiv")},
	}
}

func TestTaskTableMarksOverdue(t *testing.T) {
	var buf bytes.Buffer
	TaskTable(&buf, sampleTasks(), domain.NewDate(2025, time.February, 1))
	out := buf.String()

	for _, want := range []string{"0f8e2a7c ", "Sunucu güncellemesi", "Ayşe, Mehmet", "2025-01-05 !", "yarın bitecek", "--"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0f8e2a7c-1111") {
		t.Fatalf("ids must be shortened:\n%s", out)
	}
}

func TestBoardViewShowsColumnsAndUnmapped(t *testing.T) {
	b := board.Build(sampleTasks(), board.NewFilter())
	var buf bytes.Buffer
	BoardView(&buf, b, domain.NewDate(2025, time.January, 1), 150)
	out := buf.String()

	for _, s := range domain.Statuses() {
		if !strings.Contains(out, string(s)) {
			t.Fatalf("column %q missing:\n%s", s, out)
		}
	}
	if !strings.Contains(out, "Unknown status (1)") || !strings.Contains(out, "[Arşiv]") {
		t.Fatalf("unmapped task not listed:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "2 tasks") {
		t.Fatalf("total missing from footer:\n%s", out)
	}
	if strings.Contains(out, "2025-01-05 !") {
		t.Fatalf("task not yet overdue rendered as overdue:\n%s", out)
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	if got := truncate("çğıöşü", 10); got != "çğıöşü" {
		t.Fatalf("short string changed: %q", got)
	}
	if got := truncate("çğıöşüçğıö", 6); got != "çğı..." {
		t.Fatalf("truncate = %q", got)
	}
}

func TestTaskDetailListsFeedback(t *testing.T) {
	uid := "p1"
	task := sampleTasks()[0]
	task.Description = "Kernel ve paketler"
	task.Feedback = []domain.Feedback{
		{ID: "f2", Text: "ikinci not", UserID: &uid, UserName: "Ayşe"},
		{ID: "f1", Text: "ilk not"},
	}
	var buf bytes.Buffer
	TaskDetail(&buf, &task, domain.NewDate(2025, time.January, 1))
	out := buf.String()

	for _, want := range []string{"Kernel ve paketler", "Feedback (2)", "ikinci not", "anonymous"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "ikinci not") > strings.Index(out, "ilk not") {
		t.Fatalf("feedback must keep newest-first order")
	}
}
