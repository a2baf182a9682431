package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"taskboard/internal/db"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// Seeds a person who can log in and prints a bearer token for them.
func main() {
	name := flag.String("name", "Test User", "display name")
	email := flag.String("email", "test@example.com", "login email")
	password := flag.String("password", "password123", "login password")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET not set")
	}

	ctx := context.Background()
	pool := db.Connect(ctx, dsn)
	defer pool.Close()

	people := repository.NewPersonRepository(pool)
	audit := service.NewAuditService(repository.NewAuditRepository(pool))
	tokens := service.NewTokenIssuer(secret, 24*time.Hour)
	auth := service.NewAuthService(people, tokens, audit)

	if _, _, err := people.GetByEmail(ctx, *email); errors.Is(err, repository.ErrPersonNotFound) {
		p, err := service.NewPersonService(people, audit, nil).Create(ctx, service.Actor{}, service.CreatePersonInput{
			Name:     *name,
			Email:    *email,
			Password: *password,
		})
		if err != nil {
			logger.Fatal("create person failed", "error", err)
		}
		logger.Info("person created", "id", p.ID)
	} else if err != nil {
		logger.Fatal("lookup failed", "error", err)
	} else {
		logger.Info("person already exists", "email", *email)
	}

	res, err := auth.Login(ctx, service.Actor{IP: "127.0.0.1", UserAgent: "create_test_user"}, *email, *password)
	if err != nil {
		logger.Fatal("login failed", "error", err)
	}

	who, err := auth.Identify(ctx, res.Token)
	if err != nil {
		logger.Fatal("token does not verify", "error", err)
	}
	logger.Info("verified token", "person_id", who.ID, "name", who.Name)

	fmt.Println(res.Token)
}
