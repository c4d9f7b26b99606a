package interfaces

import (
	"context"

	"github.com/google/uuid"

	"prompt-server/internal/models"
)

// TokenRepository tracks issued token identifiers so access and refresh
// tokens can be revoked before their JWT expiry.
type TokenRepository interface {
	// SetToken records the access and refresh identifiers of a freshly
	// issued pair, each with its own TTL.
	SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error

	// GetUserID resolves a token identifier to the owning user.
	// Returns models.ErrTokenNotFound when the identifier is unknown
	// (revoked or expired).
	GetUserID(ctx context.Context, tokenUUID string) (uuid.UUID, error)

	// DeleteTokens removes the given identifiers, returning how many were
	// actually present.
	DeleteTokens(ctx context.Context, uuids ...string) (int64, error)
}
