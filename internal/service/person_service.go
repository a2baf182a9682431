package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type PersonService struct {
	people PersonStore
	audit  *AuditService
	events Notifier
	cost   int
}

func NewPersonService(people PersonStore, audit *AuditService, events Notifier) *PersonService {
	if events == nil {
		events = nopNotifier{}
	}
	return &PersonService{people: people, audit: audit, events: events, cost: bcrypt.DefaultCost}
}

type CreatePersonInput struct {
	Name      string
	Email     string
	AvatarURL string
	Password  string
}

func (s *PersonService) List(ctx context.Context) ([]*domain.Person, error) {
	return s.people.List(ctx)
}

func (s *PersonService) Get(ctx context.Context, id string) (*domain.Person, error) {
	return s.people.GetByID(ctx, strings.TrimSpace(id))
}

func (s *PersonService) Create(ctx context.Context, actor Actor, in CreatePersonInput) (*domain.Person, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}

	email := strings.TrimSpace(in.Email)

	var hash string
	if in.Password != "" {
		if email == "" {
			return nil, invalidf("a password requires an email")
		}
		b, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return nil, invalidf("password is too long")
			}
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = string(b)
	}

	p := &domain.Person{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		AvatarURL: strings.TrimSpace(in.AvatarURL),
	}
	if err := s.people.Create(ctx, p, hash); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("person created", "person_id", p.ID, "has_login", hash != "")
	s.events.Publish(EventPersonCreated, "")
	s.audit.Log(ctx, actor, domain.AuditActionPersonCreate, "", map[string]interface{}{
		"person_id": p.ID,
		"name":      name,
	})
	return p, nil
}
