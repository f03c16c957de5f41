package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"tenability/internal/models"
)

// ErrUsernameTaken is returned by Create for a username that already exists.
var ErrUsernameTaken = errors.New("username taken")

// UserRepository stores API accounts; simulations reference them through created_by.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL       = `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`
	selectUserColumns   = `SELECT id, username, password_hash, created_at FROM users`
	selectUserByNameSQL = selectUserColumns + ` WHERE username = ?`
	selectUserByIDSQL   = selectUserColumns + ` WHERE id = ?`
)

// Create inserts a user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash, nowUTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("user %q: %w", username, ErrUsernameTaken)
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id of user %q: %w", username, err)
	}
	return int(id), nil
}

// GetByUsername returns (nil, nil) when no user has that name.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.get(ctx, selectUserByNameSQL, username)
}

// GetByID returns (nil, nil) when the account no longer exists.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.get(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %v: %w", arg, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
