package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushq/studentadmin/internal/app/models"
	"github.com/campushq/studentadmin/internal/app/repositories"
	"github.com/campushq/studentadmin/internal/pkg/apperrors"
)

// AuthorizationService decides access based on the student record linked to
// a verified identity provider subject.
type AuthorizationService struct {
	studentRepo repositories.IStudentRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(studentRepo repositories.IStudentRepository) *AuthorizationService {
	return &AuthorizationService{
		studentRepo: studentRepo,
	}
}

// IsAdmin reports whether the student linked to subjectID carries the admin
// role. A subject with no linked student is an error, not a false: the
// caller authenticated against the identity provider but has no account
// here, which is distinct from "found but not admin". The role check is an
// exact, case-sensitive comparison; role is stored as a free string and
// anything other than the admin constant grants nothing.
func (s *AuthorizationService) IsAdmin(ctx context.Context, subjectID string) (bool, error) {
	student, err := s.studentRepo.GetByFirebaseUID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return false, apperrors.NewCustomError(apperrors.ErrUserNotFound,
				fmt.Sprintf("no account linked to subject: %s", subjectID))
		}
		return false, fmt.Errorf("error resolving subject: %w", err)
	}

	return student.Role == models.RoleAdmin, nil
}

// RequireAdmin validates that the subject is an admin or returns an error.
func (s *AuthorizationService) RequireAdmin(ctx context.Context, subjectID string) error {
	isAdmin, err := s.IsAdmin(ctx, subjectID)
	if err != nil {
		return err
	}

	if !isAdmin {
		return apperrors.NewCustomError(apperrors.ErrPermissionDenied,
			"only admins can perform this action")
	}

	return nil
}
