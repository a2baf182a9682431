package migrations

import (
	"strings"
	"testing"
)

func TestPgx5URL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/db?sslmode=disable": "pgx5://u:p@localhost:5432/db?sslmode=disable",
		"postgresql://localhost/db":                        "pgx5://localhost/db",
		"pgx5://localhost/db":                              "pgx5://localhost/db",
	}
	for in, want := range cases {
		if got := pgx5URL(in); got != want {
			t.Fatalf("pgx5URL(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestEveryUpHasDown(t *testing.T) {
	names, err := Files()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 {
		t.Fatal("no embedded migrations")
	}

	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	for _, n := range names {
		if !strings.HasSuffix(n, ".up.sql") {
			continue
		}
		down := strings.TrimSuffix(n, ".up.sql") + ".down.sql"
		if !set[down] {
			t.Fatalf("%s has no matching %s", n, down)
		}
	}
}

func TestInitCreatesCoreTables(t *testing.T) {
	b, err := files.ReadFile("sql/000001_init.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	sql := string(b)
	for _, table := range []string{"people", "tasks", "task_assignees", "feedback"} {
		if !strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Fatalf("init migration does not create %s", table)
		}
	}
	for _, constraint := range []string{"people_email_key", "task_assignees_task_id_fkey", "task_assignees_person_id_fkey", "feedback_task_id_fkey"} {
		if !strings.Contains(sql, constraint) {
			t.Fatalf("init migration missing %s", constraint)
		}
	}
}
