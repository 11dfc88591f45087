package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"auth-api/internal/domain"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Save(ctx context.Context, user domain.User) error
}

// Querier es el subconjunto de pgxpool.Pool que usa el repositorio.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgUserRepository implementa UserRepository usando pgx.
type PgUserRepository struct {
	pool Querier
}

func NewPgUserRepository(pool Querier) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, is_account_verified,
		verify_otp_hash, verify_otp_expire_at, reset_otp_hash, reset_otp_expire_at,
		created_at, updated_at`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsAccountVerified,
		user.VerifyOTPHash,
		user.VerifyOTPExpireAt,
		user.ResetOTPHash,
		user.ResetOTPExpireAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return oops.Code("USER_CREATE_FAILED").With("user_id", user.ID).Wrap(err)
	}
	return nil
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.User{}, wrapLookup(err, "USER_GET_BY_ID_FAILED", "user_id", id)
	}
	return user, nil
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return domain.User{}, wrapLookup(err, "USER_GET_BY_EMAIL_FAILED", "email", email)
	}
	return user, nil
}

// Save reescribe los campos mutables del registro; gana la ultima escritura.
func (r *PgUserRepository) Save(ctx context.Context, user domain.User) error {
	const query = `
		UPDATE users
		SET username = $2,
		    password_hash = $3,
		    is_account_verified = $4,
		    verify_otp_hash = $5,
		    verify_otp_expire_at = $6,
		    reset_otp_hash = $7,
		    reset_otp_expire_at = $8,
		    updated_at = $9
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.IsAccountVerified,
		user.VerifyOTPHash,
		user.VerifyOTPExpireAt,
		user.ResetOTPHash,
		user.ResetOTPExpireAt,
		user.UpdatedAt,
	)
	if err != nil {
		return oops.Code("USER_SAVE_FAILED").With("user_id", user.ID).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsAccountVerified,
		&u.VerifyOTPHash,
		&u.VerifyOTPExpireAt,
		&u.ResetOTPHash,
		&u.ResetOTPExpireAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func wrapLookup(err error, code, key, value string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return oops.Code(code).With(key, value).Wrap(err)
}
