package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/middleway/middleway/internal/app/models"
	appRepos "github.com/middleway/middleway/internal/app/repositories"
	"github.com/middleway/middleway/internal/config"
	"github.com/middleway/middleway/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account if it does not exist.
// Skipped entirely when no seed password is configured.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		lgr.Debug().Msg("Seed admin credentials not configured, skipping default data")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, cfg.Seed.AdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Debug().Str("email", cfg.Seed.AdminEmail).Msg("Admin user already exists, skipping seed")
		return nil
	}

	lgr.Info().Str("email", cfg.Seed.AdminEmail).Msg("Creating default admin user...")

	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Name:     "Administrator",
		Email:    cfg.Seed.AdminEmail,
		Password: hashedPassword,
		Role:     appModels.RoleAdmin,
	}

	id, err := userRepo.Create(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	lgr.Info().Int64("userID", id).Msg("Default admin user created")
	return nil
}
