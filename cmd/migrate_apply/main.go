package main

import (
	"flag"
	"fmt"
	"os"

	"taskboard/internal/logger"
	"taskboard/internal/migrations"
)

func main() {
	apply := flag.Bool("apply", false, "apply pending migrations")
	down := flag.Bool("down", false, "roll back the last migration")
	version := flag.Bool("version", false, "print the applied schema version")
	flag.Parse()

	if !*apply && !*down && !*version {
		names, err := migrations.Files()
		if err != nil {
			logger.Fatal("read embedded migrations", "error", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	switch {
	case *down:
		if err := migrations.Down(dsn); err != nil {
			logger.Fatal("rollback failed", "error", err)
		}
	case *apply:
		if err := migrations.Up(dsn); err != nil {
			logger.Fatal("migration failed", "error", err)
		}
	}

	v, dirty, ok, err := migrations.Version(dsn)
	if err != nil {
		logger.Fatal("read version", "error", err)
	}
	if !ok {
		fmt.Println("no migrations applied")
		return
	}
	fmt.Printf("version %d (dirty: %v)\n", v, dirty)
}
