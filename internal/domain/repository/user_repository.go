package repository

import (
	"context"

	"github.com/revuehub/api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups return a NotFound apperr when no row matches; Create maps unique
// violations on username/email to a validation error.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, search string) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, username string) error

	// UpsertVerification stores or rotates the confirmation code for a user.
	UpsertVerification(ctx context.Context, userID, code string) error
	GetVerification(ctx context.Context, userID string) (*entity.EmailVerification, error)
}
