// Command listctl performs administrative tasks against the configured database:
// creating accounts and rolling back the last schema migration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"workoutLists/internal/config"
	"workoutLists/internal/db"
	"workoutLists/repository"
)

const usageText = `usage:
  listctl useradd -username NAME -password PASSWORD
      create an account (applies pending migrations first)
  listctl rollback
      revert the most recently applied migration; pending migrations are not applied
`

var errUsage = errors.New("invalid arguments")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usageText)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// run executes one subcommand. It returns instead of exiting so deferred closes run.
func run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch args[0] {
	case "useradd":
		return userAdd(cfg, args[1:])
	case "rollback":
		return rollback(cfg)
	default:
		return errUsage
	}
}

func userAdd(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil || *username == "" || *password == "" {
		return errUsage
	}

	d, err := db.Connect(cfg.Database.Driver, cfg.Database.Source())
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer d.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	u, err := repository.NewUserRepository(d).Create(ctx, *username, *password)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("user %q already exists", *username)
		}
		return fmt.Errorf("create user: %w", err)
	}
	log.Printf("created user %s (id %d)", u.Username, u.ID)
	return nil
}

func rollback(cfg *config.Config) error {
	// Dial, not Connect: migrating first would roll back a version that was
	// only just applied.
	d, err := db.Dial(cfg.Database.Driver, cfg.Database.Source())
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer d.Close()

	if err := db.RollbackLast(d); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	log.Printf("rolled back last migration")
	return nil
}
