package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/models"
	"github.com/quizhub/quizhub/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, username, passwordHash string) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: username=%s", username)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, password_hash)
VALUES (?, ?)
`, username, passwordHash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			log.Debug("username already taken: %s", username)
			return 0, repository.ErrDuplicateUsername
		}
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found: id=%d", id)
		} else {
			log.Error("failed to get user: %v", err)
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: username=%s", username)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM users
WHERE username = ?
`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found: username=%s", username)
		} else {
			log.Error("failed to get user: %v", err)
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("deleting user: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete user: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	log.Debug("user deleted: id=%d", id)
	return nil
}
