package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/models"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ interfaces.UserRepository = (*pgUserRepository)(nil)

const userFields = `id, name, email, password_hash, is_superuser, is_deleted, deleted_at, created_at, updated_at`

type pgUserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db *pgxpool.Pool, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email, password_hash, is_superuser)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.IsSuperuser).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			r.logger.Warn("Attempted to create duplicate user by email", zap.String("email", user.Email))
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.logger.Info("User created", zap.String("userID", user.ID.String()), zap.String("email", user.Email))
	return nil
}

func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 AND is_deleted = FALSE`, userFields)
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsSuperuser,
		&user.IsDeleted, &user.DeletedAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by email", zap.String("email", email))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userFields)
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsSuperuser,
		&user.IsDeleted, &user.DeletedAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by id", zap.String("id", id.String()))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	query := `UPDATE users SET
                  name = COALESCE($1, name),
                  email = COALESCE($2, email),
                  password_hash = COALESCE($3, password_hash),
                  is_superuser = COALESCE($4, is_superuser),
                  updated_at = NOW()
              WHERE id = $5 AND is_deleted = FALSE
              RETURNING ` + userFields
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, upd.Name, upd.Email, upd.Password, upd.IsSuperuser, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsSuperuser,
		&user.IsDeleted, &user.DeletedAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("User update collided on email", zap.String("id", id.String()))
			return nil, models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to update user", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) SoftDeleteUser(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
              WHERE id = $1 AND is_deleted = FALSE`
	commandTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to soft delete user", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to soft delete user: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		// Distinguish missing from already deleted for a precise client error.
		if _, err := r.GetUserByID(ctx, id); err != nil {
			return err
		}
		return models.ErrUserDeleted
	}
	r.logger.Info("User soft deleted", zap.String("id", id.String()))
	return nil
}

func (r *pgUserRepository) ListUsers(ctx context.Context, page, pageSize int, includeDeleted bool) ([]*models.User, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	filter := ` WHERE is_deleted = FALSE`
	if includeDeleted {
		filter = ``
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+filter).Scan(&total); err != nil {
		r.logger.Error("Failed to count users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC LIMIT $1 OFFSET $2`, userFields, filter)
	users := make([]*models.User, 0, pageSize)
	if err := pgxscan.Select(ctx, r.db, &users, query, pageSize, offset); err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
