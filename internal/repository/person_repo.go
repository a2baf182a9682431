package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PersonRepository struct {
	db *pgxpool.Pool
}

func NewPersonRepository(db *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{db: db}
}

const personColumns = `id, name, COALESCE(email, ''), COALESCE(avatar_url, ''), created_at`

func (r *PersonRepository) List(ctx context.Context) ([]*domain.Person, error) {
	rows, err := r.db.Query(ctx, `SELECT `+personColumns+` FROM people ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	out := []*domain.Person{}
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.AvatarURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Create inserts a person. An empty email or hash is stored as NULL.
func (r *PersonRepository) Create(ctx context.Context, p *domain.Person, passwordHash string) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO people (id, name, email, avatar_url, password_hash)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		RETURNING created_at
	`, p.ID, p.Name, p.Email, p.AvatarURL, passwordHash).Scan(&p.CreatedAt)
	if err != nil {
		if c := classify(err); c != err {
			return c
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	var p domain.Person
	err := r.db.QueryRow(ctx, `SELECT `+personColumns+` FROM people WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.AvatarURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &p, nil
}

// GetByEmail matches case-insensitively and also returns the stored password
// hash, empty when the person has none.
func (r *PersonRepository) GetByEmail(ctx context.Context, email string) (*domain.Person, string, error) {
	var (
		p    domain.Person
		hash string
	)
	err := r.db.QueryRow(ctx, `
		SELECT `+personColumns+`, COALESCE(password_hash, '')
		FROM people
		WHERE lower(email) = $1
	`, strings.ToLower(strings.TrimSpace(email))).
		Scan(&p.ID, &p.Name, &p.Email, &p.AvatarURL, &p.CreatedAt, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrPersonNotFound
		}
		return nil, "", fmt.Errorf("get person by email: %w", err)
	}
	return &p, hash, nil
}
