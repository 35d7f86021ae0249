package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/edu2job/edu2job-server/internal/models"
)

// pgPool is the subset of *pgxpool.Pool the repository needs; pgxmock satisfies it too.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool pgPool
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(pool pgPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindByEmail retrieves a user by exact email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, college, gender, degree, created_at
		FROM users
		WHERE email = $1
	`, email)

	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.College, &user.Gender, &user.Degree, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, oops.Code("USER_LOOKUP_FAILED").
			With("operation", "get user by email").
			With("email", email).
			Wrap(err)
	}
	return user, nil
}

// Insert stores a new user; a unique violation on email maps to ErrEmailTaken.
func (r *PostgresRepository) Insert(ctx context.Context, user models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, college, gender, degree, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.College,
		user.Gender,
		user.Degree,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return oops.Code("USER_INSERT_FAILED").
			With("operation", "insert user").
			With("email", user.Email).
			Wrap(err)
	}
	return nil
}

var _ Repository = (*PostgresRepository)(nil)
