package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func writeEnvelope(w http.ResponseWriter, status int, data any, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": status < 400}
	if msg != "" {
		body["error"] = msg
	} else {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(body)
}

func TestListTasksSendsFiltersAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query()["assignee"]; len(got) != 2 || got[0] != "p1" || got[1] != "p2" {
			t.Errorf("assignee query = %v", got)
		}
		if r.URL.Query().Get("sort") != "title" {
			t.Errorf("sort = %q", r.URL.Query().Get("sort"))
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		writeEnvelope(w, http.StatusOK, []map[string]any{
			{"id": "t1", "title": "Rapor", "status": "Yeni Talep", "due_date": "2025-01-02", "assignees": []any{}},
		}, "")
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tok")
	tasks, err := c.ListTasks(context.Background(), []string{"p1", "p2"}, "title")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" || tasks[0].DueDate == nil || tasks[0].DueDate.String() != "2025-01-02" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestUpdateTaskSendsFullState(t *testing.T) {
	var got TaskInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/tasks/t1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		writeEnvelope(w, http.StatusOK, map[string]any{"id": "t1", "title": got.Title, "status": got.Status}, "")
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	in := TaskInput{Title: "Rapor", Description: "d", Status: "Beklemede", DueDate: "2025-02-01", AssigneeIDs: []string{"p1"}}
	task, err := c.UpdateTask(context.Background(), "t1", in)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if task.Status != "Beklemede" {
		t.Fatalf("status = %q", task.Status)
	}
	if got.Title != "Rapor" || got.DueDate != "2025-02-01" || len(got.AssigneeIDs) != 1 {
		t.Fatalf("server received %+v", got)
	}
}

func TestAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tasks/missing":
			writeEnvelope(w, http.StatusNotFound, nil, "task not found")
		case "/api/login":
			writeEnvelope(w, http.StatusUnauthorized, nil, "invalid email or password")
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	ctx := context.Background()

	_, err := c.GetTask(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = c.Login(ctx, "a@b.c", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "invalid email or password" {
		t.Fatalf("unexpected login error: %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("401 must not match ErrNotFound")
	}

	_, err = c.ListPeople(ctx)
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "upstream down" {
		t.Fatalf("unexpected non-JSON error: %v", err)
	}
}

func TestDeleteTaskIgnoresData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		writeEnvelope(w, http.StatusOK, map[string]string{"id": "t1"}, "")
	}))
	defer srv.Close()

	if err := New(srv.URL, "").DeleteTask(context.Background(), "t1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
}
