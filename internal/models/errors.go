package models

import "errors"

// Prompt errors
var (
	ErrPromptNotFound  = errors.New("prompt not found")
	ErrVersionNotFound = errors.New("prompt version not found")
	// ErrPromptConflict surfaces a storage uniqueness violation: either a
	// concurrent creation of the same slug or a concurrent commit colliding
	// on (prompt_id, version_number). Callers retry with backoff.
	ErrPromptConflict = errors.New("prompt write conflicted with a concurrent write")
	ErrInvalidInput   = errors.New("invalid input data")
)

// Cache errors
var (
	ErrCacheMiss = errors.New("cache key not found")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrUserDeleted        = errors.New("user is deleted")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("token not found in storage")
)
