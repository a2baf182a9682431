package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	people PersonStore
	tokens *TokenIssuer
	audit  *AuditService
}

func NewAuthService(people PersonStore, tokens *TokenIssuer, audit *AuditService) *AuthService {
	return &AuthService{people: people, tokens: tokens, audit: audit}
}

type LoginResult struct {
	Person *domain.Person `json:"person"`
	Token  string         `json:"token"`
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknown emails still pay for one bcrypt comparison
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("taskboard-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Login verifies credentials and issues a bearer token. Every failure cause
// yields ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, actor Actor, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, invalidf("email and password are required")
	}

	person, hash, err := s.people.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrPersonNotFound):
		compareDummy(password)
		return nil, s.fail(ctx, actor, email, "unknown email")
	case err != nil:
		return nil, fmt.Errorf("lookup person: %w", err)
	}

	if hash == "" {
		compareDummy(password)
		return nil, s.fail(ctx, actor, email, "no password set")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		actor.PersonID = person.ID
		return nil, s.fail(ctx, actor, email, "password mismatch")
	}

	token, err := s.tokens.Generate(person.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	actor.PersonID = person.ID
	s.audit.Log(ctx, actor, domain.AuditActionLogin, "", nil)
	return &LoginResult{Person: person, Token: token}, nil
}

func (s *AuthService) fail(ctx context.Context, actor Actor, email, reason string) error {
	logger.WithContext(ctx).Warn("login failed", "reason", reason, "ip", actor.IP)
	s.audit.Log(ctx, actor, domain.AuditActionLoginFailed, "", map[string]interface{}{"email": email})
	return ErrInvalidCredentials
}

// Identify resolves a bearer token to its person.
func (s *AuthService) Identify(ctx context.Context, token string) (*domain.Person, error) {
	personID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	p, err := s.people.GetByID(ctx, personID)
	if errors.Is(err, repository.ErrPersonNotFound) {
		return nil, ErrInvalidToken
	}
	return p, err
}
