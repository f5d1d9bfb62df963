package postgres

import (
	"context"
	"errors"
	"time"

	"carremote/auth-service/internal/models"
	"carremote/auth-service/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewStore(pool *pgxpool.Pool, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{pool: pool, timeout: timeout}
}

func (s *Store) GetByEmail(ctx context.Context, email string) (store.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var cred store.Credential
	row := s.pool.QueryRow(ctx, `
		SELECT user_id, email, password_hash, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`, email)
	if err := row.Scan(&cred.User.UserID, &cred.User.Email, &cred.PasswordHash, &cred.User.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Credential{}, store.ErrUserNotFound
		}
		return store.Credential{}, translate(err)
	}
	return cred, nil
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user := models.User{UserID: uuid.NewString(), Email: email}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (user_id, email, password_hash)
		VALUES ($1, lower($2), $3)
		RETURNING email, created_at
	`, user.UserID, email, passwordHash)
	if err := row.Scan(&user.Email, &user.Created); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return models.User{}, store.ErrEmailTaken
		}
		return models.User{}, translate(err)
	}
	return user, nil
}

// translate maps timeouts and connection-class driver failures onto
// store.ErrUnavailable so no connection detail crosses the store boundary.
// Other errors pass through for the auth layer to collapse.
func translate(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return store.ErrUnavailable
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ConnectionException,
			pgerrcode.ConnectionDoesNotExist,
			pgerrcode.ConnectionFailure,
			pgerrcode.SQLClientUnableToEstablishSQLConnection,
			pgerrcode.TooManyConnections,
			pgerrcode.CannotConnectNow:
			return store.ErrUnavailable
		}
	}
	return err
}
