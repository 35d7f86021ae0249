package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/samber/oops"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/edu2job/edu2job-server/internal/models"
)

// SQLiteRepository implements Repository on a sqlite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository on an opened and migrated database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// FindByEmail retrieves a single user by their email, including the password hash.
func (r *SQLiteRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	var college, gender, degree sql.NullString
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, college, gender, degree, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &college, &gender, &degree, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, oops.Code("USER_LOOKUP_FAILED").
			With("email", email).
			Wrap(err)
	}
	user.College, user.Gender, user.Degree = college.String, gender.String, degree.String
	return user, nil
}

// Insert stores a new user. The UNIQUE index on email makes the duplicate
// check atomic.
func (r *SQLiteRepository) Insert(ctx context.Context, user models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stmt, err := r.db.PrepareContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, college, gender, degree, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return oops.Code("USER_INSERT_FAILED").With("operation", "prepare").Wrap(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, user.ID, user.Name, user.Email, user.PasswordHash,
		user.College, user.Gender, user.Degree, user.CreatedAt)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return ErrEmailTaken
		}
		return oops.Code("USER_INSERT_FAILED").
			With("operation", "insert user").
			With("email", user.Email).
			Wrap(err)
	}
	return nil
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

var _ Repository = (*SQLiteRepository)(nil)
