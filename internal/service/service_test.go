package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/repository/memrepo"

	"golang.org/x/crypto/bcrypt"
)

type recordedEvent struct {
	Type   string
	TaskID string
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) Publish(eventType, taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{eventType, taskID})
}

func (r *recorder) last() recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return recordedEvent{}
	}
	return r.events[len(r.events)-1]
}

type fixture struct {
	store  *memrepo.Store
	events *recorder
	tasks  *TaskService
	people *PersonService
	auth   *AuthService
	audit  *AuditService
}

func newFixture(t *testing.T, requireAssignee bool) *fixture {
	t.Helper()
	store := memrepo.New()
	events := &recorder{}
	audit := NewAuditService(store.AuditLogs())
	people := NewPersonService(store.People(), audit, events)
	people.cost = bcrypt.MinCost
	return &fixture{
		store:  store,
		events: events,
		tasks:  NewTaskService(store.Tasks(), store.Feedback(), audit, events, requireAssignee),
		people: people,
		auth:   NewAuthService(store.People(), NewTokenIssuer("test-secret", time.Hour), audit),
		audit:  audit,
	}
}

func (f *fixture) person(t *testing.T, name, email, password string) *domain.Person {
	t.Helper()
	p, err := f.people.Create(context.Background(), Actor{}, CreatePersonInput{Name: name, Email: email, Password: password})
	if err != nil {
		t.Fatalf("create person %s: %v", name, err)
	}
	return p
}

func TestFixLoginBugScenario(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	p1 := f.person(t, "Ayşe", "", "")

	created, err := f.tasks.Create(ctx, Actor{}, CreateTaskInput{
		Title:       "Fix login bug",
		Description: "Users cannot log in with uppercase emails",
		Status:      "Yeni Talep",
		AssigneeIDs: []string{p1.ID},
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Status != domain.StatusNew || len(created.Assignees) != 1 || created.Assignees[0].ID != p1.ID {
		t.Fatalf("unexpected created task: %+v", created)
	}
	if len(created.Feedback) != 0 {
		t.Fatalf("expected empty feedback, got %+v", created.Feedback)
	}
	if ev := f.events.last(); ev.Type != EventTaskCreated || ev.TaskID != created.ID {
		t.Fatalf("unexpected event %+v", ev)
	}

	if _, err := f.tasks.AddFeedback(ctx, Actor{}, created.ID, AddFeedbackInput{Text: "Investigating"}); err != nil {
		t.Fatal(err)
	}
	got, err := f.tasks.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Feedback) != 1 || got.Feedback[0].Text != "Investigating" {
		t.Fatalf("unexpected feedback %+v", got.Feedback)
	}

	updated, err := f.tasks.Update(ctx, Actor{}, created.ID, UpdateTaskInput{
		Title:       got.Title,
		Description: got.Description,
		Status:      "Tamamlandı",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.StatusDone {
		t.Fatalf("status = %q", updated.Status)
	}
	if len(updated.Feedback) != 1 || len(updated.Assignees) != 1 {
		t.Fatalf("update must keep feedback and assignees: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed")
	}
}

func TestCreateTaskWithInitialFeedback(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	author := f.person(t, "Ali", "", "")

	task, err := f.tasks.Create(ctx, Actor{PersonID: author.ID}, CreateTaskInput{Title: "Deploy", Feedback: "waiting for review"})
	if err != nil {
		t.Fatal(err)
	}
	if len(task.Feedback) != 1 || task.Feedback[0].UserName != "Ali" {
		t.Fatalf("initial feedback not attributed: %+v", task.Feedback)
	}
	if task.Assignees == nil || len(task.Assignees) != 0 {
		t.Fatalf("expected zero assignees")
	}
	if _, err := f.tasks.AddFeedback(ctx, Actor{}, task.ID, AddFeedbackInput{Text: "approved"}); err != nil {
		t.Fatal(err)
	}
	got, _ := f.tasks.Get(ctx, task.ID)
	if len(got.Feedback) != 2 || got.Feedback[0].Text != "approved" || got.Feedback[1].Text != "waiting for review" {
		t.Fatalf("history should be newest first and intact: %+v", got.Feedback)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	p := f.person(t, "Ali", "", "")

	cases := []struct {
		name string
		in   CreateTaskInput
	}{
		{"missing title", CreateTaskInput{Title: "  ", AssigneeIDs: []string{p.ID}}},
		{"unknown status", CreateTaskInput{Title: "x", Status: "Done", AssigneeIDs: []string{p.ID}}},
		{"bad due date", CreateTaskInput{Title: "x", DueDate: "31/12/2025", AssigneeIDs: []string{p.ID}}},
		{"no assignee when required", CreateTaskInput{Title: "x", AssigneeIDs: []string{" "}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.tasks.Create(ctx, Actor{}, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	_, err := f.tasks.Create(ctx, Actor{}, CreateTaskInput{Title: "x", AssigneeIDs: []string{"ghost"}})
	if !errors.Is(err, repository.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestCreateTaskCollapsesDuplicateAssignees(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	a := f.person(t, "Ali", "", "")
	b := f.person(t, "Veli", "", "")

	for n, ids := range [][]string{{}, {a.ID}, {a.ID, b.ID, a.ID}} {
		task, err := f.tasks.Create(ctx, Actor{}, CreateTaskInput{Title: "t", AssigneeIDs: ids})
		if err != nil {
			t.Fatal(err)
		}
		want := len(normalizeIDs(ids))
		if len(task.Assignees) != want {
			t.Fatalf("case %d: got %d assignees, want %d", n, len(task.Assignees), want)
		}
	}
}

func TestUpdateTask(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	a := f.person(t, "Ali", "", "")
	b := f.person(t, "Veli", "", "")

	task, err := f.tasks.Create(ctx, Actor{}, CreateTaskInput{Title: "t", DueDate: "2025-03-01", AssigneeIDs: []string{a.ID}})
	if err != nil {
		t.Fatal(err)
	}

	ids := []string{b.ID}
	updated, err := f.tasks.Update(ctx, Actor{}, task.ID, UpdateTaskInput{
		Title:       "renamed",
		Status:      "test",
		AssigneeIDs: &ids,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "renamed" || updated.Status != domain.StatusTesting || updated.DueDate != nil {
		t.Fatalf("full-row update not applied: %+v", updated)
	}
	if len(updated.Assignees) != 1 || updated.Assignees[0].ID != b.ID {
		t.Fatalf("assignees not replaced: %+v", updated.Assignees)
	}

	if _, err := f.tasks.Update(ctx, Actor{}, task.ID, UpdateTaskInput{Title: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing status: expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.tasks.Update(ctx, Actor{}, "missing", UpdateTaskInput{Title: "x", Status: "yeni"}); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	task, _ := f.tasks.Create(ctx, Actor{}, CreateTaskInput{Title: "t", Feedback: "note"})

	if err := f.tasks.Delete(ctx, Actor{}, task.ID); err != nil {
		t.Fatal(err)
	}
	if ev := f.events.last(); ev.Type != EventTaskDeleted {
		t.Fatalf("unexpected event %+v", ev)
	}
	if _, err := f.tasks.Get(ctx, task.ID); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := f.tasks.Delete(ctx, Actor{}, task.ID); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestListTasks(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	a := f.person(t, "Ali", "", "")
	b := f.person(t, "Veli", "", "")

	_, _ = f.tasks.Create(ctx, Actor{}, CreateTaskInput{Title: "both", AssigneeIDs: []string{a.ID, b.ID}})
	_, _ = f.tasks.Create(ctx, Actor{}, CreateTaskInput{Title: "only b", AssigneeIDs: []string{b.ID}})
	_, _ = f.tasks.Create(ctx, Actor{}, CreateTaskInput{Title: "nobody"})

	got, err := f.tasks.List(ctx, ListTasksInput{AssigneeIDs: []string{a.ID, a.ID}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "both" {
		t.Fatalf("filter by Ali = %+v", got)
	}

	sorted, err := f.tasks.List(ctx, ListTasksInput{Sort: "title"})
	if err != nil {
		t.Fatal(err)
	}
	if len(sorted) != 3 || sorted[0].Title != "both" || sorted[2].Title != "only b" {
		t.Fatalf("title sort = %v", sorted)
	}

	if _, err := f.tasks.List(ctx, ListTasksInput{Sort: "priority"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown sort, got %v", err)
	}
}

func TestAddFeedbackValidation(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	task, _ := f.tasks.Create(ctx, Actor{}, CreateTaskInput{Title: "t"})

	if _, err := f.tasks.AddFeedback(ctx, Actor{}, task.ID, AddFeedbackInput{Text: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.tasks.AddFeedback(ctx, Actor{}, "missing", AddFeedbackInput{Text: "x"}); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := f.tasks.AddFeedback(ctx, Actor{}, task.ID, AddFeedbackInput{Text: "x", UserID: "ghost"}); !errors.Is(err, repository.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestCreatePerson(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	p := f.person(t, "Ayşe", "ayse@example.com", "secret1")
	if p.ID == "" || p.Email != "ayse@example.com" {
		t.Fatalf("unexpected person %+v", p)
	}
	if ev := f.events.last(); ev.Type != EventPersonCreated {
		t.Fatalf("unexpected event %+v", ev)
	}

	_, err := f.people.Create(ctx, Actor{}, CreatePersonInput{Name: "Dup", Email: "AYSE@example.com"})
	if !errors.Is(err, repository.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	invalid := []CreatePersonInput{
		{Name: ""},
		{Name: "   "},
		{Name: "x", Password: "secret1"},
		{Name: "x", Email: "  ", Password: "secret1"},
	}
	for _, in := range invalid {
		if _, err := f.people.Create(ctx, Actor{}, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}

	people, _ := f.people.List(ctx)
	if len(people) != 1 {
		t.Fatalf("expected 1 person, got %d", len(people))
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	p := f.person(t, "A", "a@x.com", "correct-horse")
	f.person(t, "NoLogin", "b@x.com", "")

	res, err := f.auth.Login(ctx, Actor{IP: "127.0.0.1"}, "A@X.com", "correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	if res.Person.ID != p.ID || res.Token == "" {
		t.Fatalf("unexpected login result %+v", res)
	}
	who, err := f.auth.Identify(ctx, res.Token)
	if err != nil || who.ID != p.ID {
		t.Fatalf("Identify = %+v %v", who, err)
	}

	for _, tc := range []struct{ email, password string }{
		{"a@x.com", "wrong"},
		{"nobody@x.com", "wrong"},
		{"b@x.com", "anything"},
	} {
		_, err := f.auth.Login(ctx, Actor{}, tc.email, tc.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login(%q): expected ErrInvalidCredentials, got %v", tc.email, err)
		}
		if err.Error() != ErrInvalidCredentials.Error() {
			t.Fatalf("login error must be generic, got %q", err)
		}
	}

	logs, _ := f.audit.Recent(ctx, 0)
	var ok, failed int
	for _, l := range logs {
		switch l.Action {
		case domain.AuditActionLogin:
			ok++
		case domain.AuditActionLoginFailed:
			failed++
		}
	}
	if ok != 1 || failed != 3 {
		t.Fatalf("audit: %d logins, %d failures", ok, failed)
	}
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Generate("person-1")
	if err != nil {
		t.Fatal(err)
	}
	id, err := issuer.Parse(token)
	if err != nil || id != "person-1" {
		t.Fatalf("Parse = %q %v", id, err)
	}

	if _, err := NewTokenIssuer("other", time.Hour).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign signature accepted: %v", err)
	}

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Generate("person-1")
	if _, err := issuer.Parse(old); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}

	if _, err := issuer.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage accepted: %v", err)
	}
}

func TestAuditRecentLimits(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = f.tasks.Create(ctx, Actor{PersonID: "someone"}, CreateTaskInput{Title: "t"})
	}
	logs, err := f.audit.Recent(ctx, 2)
	if err != nil || len(logs) != 2 {
		t.Fatalf("Recent(2) = %d %v", len(logs), err)
	}
	if logs[0].Action != domain.AuditActionTaskCreate || logs[0].PersonID == nil || *logs[0].PersonID != "someone" {
		t.Fatalf("unexpected entry %+v", logs[0])
	}
	if _, err := f.audit.Recent(ctx, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
