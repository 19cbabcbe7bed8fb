package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/campushq/studentadmin/internal/app/models"
	appRepos "github.com/campushq/studentadmin/internal/app/repositories"
	"github.com/campushq/studentadmin/internal/config"
	"github.com/campushq/studentadmin/internal/pkg/apperrors"
)

// CreateDefaultAdmin creates the initial administrator record when the
// configured admin subject ID is not yet linked to any student. Without at
// least one ADMIN row no caller can ever pass the admin check, so a fresh
// deployment bootstraps one from configuration.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg config.SeedConfig, lgr zerolog.Logger) error {
	if cfg.AdminUID == "" {
		lgr.Info().Msg("No admin seed configured, skipping")
		return nil
	}

	studentRepo := appRepos.NewStudentRepository(dbPool)

	existing, err := studentRepo.GetByFirebaseUID(ctx, cfg.AdminUID)
	if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
		lgr.Error().Err(err).Msg("Error checking for existing admin")
		return err
	}
	if existing != nil {
		lgr.Info().Str("email", existing.Email).Msg("Admin already present, skipping seed")
		return nil
	}

	admin := &appModels.Student{
		Name:        cfg.AdminName,
		Email:       cfg.AdminEmail,
		FirebaseUID: cfg.AdminUID,
		Role:        appModels.RoleAdmin,
	}
	id, err := studentRepo.Create(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	lgr.Info().Int64("id", id).Str("email", admin.Email).Msg("Default admin created")
	return nil
}
