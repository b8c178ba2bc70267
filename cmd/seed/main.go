package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/internal/users"
	"github.com/kolamtech/tambak-backend/pkg/config"
	"github.com/kolamtech/tambak-backend/pkg/db"
	"github.com/kolamtech/tambak-backend/pkg/enums"
	"github.com/kolamtech/tambak-backend/pkg/logger"
	"github.com/kolamtech/tambak-backend/pkg/security"
)

// Provisions a staff account. Intended for first-run setup and for adding
// accounts from the command line; there is no self-service registration.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	name := flag.String("name", "", "account holder name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", "owner", "role: owner|admin|employee")
	flag.Parse()

	ctx := context.Background()
	if *name == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "missing -name, -email, or -password")
		os.Exit(1)
	}
	parsedRole, err := enums.ParseMemberRole(*role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unknown -role value:", *role)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := users.NewRepository(dbClient.DB())
	if _, err := repo.FindByEmail(ctx, *email); err == nil {
		fmt.Fprintln(os.Stderr, "account already exists:", *email)
		os.Exit(1)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Error(ctx, "failed to check existing account", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	user, err := repo.Create(ctx, users.CreateUserDTO{
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Role:         parsedRole,
	})
	if err != nil {
		logg.Error(ctx, "failed to create account", err)
		os.Exit(1)
	}

	fmt.Printf("created %s account %s (%s)\n", user.Role, user.Email, user.ID)
}
