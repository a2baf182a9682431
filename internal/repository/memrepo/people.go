package memrepo

import (
	"context"
	"slices"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type PersonRepository struct {
	s *Store
}

func (r *PersonRepository) List(ctx context.Context) ([]*domain.Person, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Person, 0, len(r.s.people))
	for _, rec := range r.s.people {
		p := rec.person
		out = append(out, &p)
	}
	slices.SortFunc(out, func(a, b *domain.Person) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *PersonRepository) Create(ctx context.Context, p *domain.Person, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.Email != "" {
		for _, rec := range r.s.people {
			if strings.EqualFold(rec.person.Email, p.Email) {
				return repository.ErrEmailTaken
			}
		}
	}
	p.CreatedAt = r.s.stamp()
	r.s.people[p.ID] = personRecord{person: *p, hash: passwordHash}
	return nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.people[id]
	if !ok {
		return nil, repository.ErrPersonNotFound
	}
	p := rec.person
	return &p, nil
}

func (r *PersonRepository) GetByEmail(ctx context.Context, email string) (*domain.Person, string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", repository.ErrPersonNotFound
	}
	for _, rec := range r.s.people {
		if strings.EqualFold(rec.person.Email, email) {
			p := rec.person
			return &p, rec.hash, nil
		}
	}
	return nil, "", repository.ErrPersonNotFound
}
