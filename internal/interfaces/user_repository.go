package interfaces

import (
	"context"

	"github.com/google/uuid"

	"prompt-server/internal/models"
)

// UserRepository defines the storage operations for user accounts.
type UserRepository interface {
	// CreateUser inserts a new user and fills in its generated id and
	// timestamps. A duplicate email maps to models.ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a non-deleted user by email.
	// Returns models.ErrUserNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by id regardless of deletion state.
	// Returns models.ErrUserNotFound if absent.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// UpdateUser applies the non-nil fields of upd to the user.
	UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error)

	// SoftDeleteUser marks the user deleted. Returns models.ErrUserDeleted
	// when it is already deleted, models.ErrUserNotFound when absent.
	SoftDeleteUser(ctx context.Context, id uuid.UUID) error

	// ListUsers returns a page of users ordered by created_at descending
	// together with the total count. Deleted users are excluded unless
	// includeDeleted is set.
	ListUsers(ctx context.Context, page, pageSize int, includeDeleted bool) ([]*models.User, int, error)
}
