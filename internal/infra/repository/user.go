package repository

import (
	"context"

	"evcharge-booking/internal/domain/user"
	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/infra/db"
	"evcharge-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
		INSERT INTO users (id, email, username, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		u.ID(), u.Email().Value(), u.Username().Value(), u.PasswordHash(), u.Role().String(), u.IsActive(),
	)
	if err != nil {
		if isPgErrCode(err, pgErrCodeUniqueViolation) {
			return infra.WrapRepoErr("email or username already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	const query = `
		SELECT id, email, username, password_hash, role, is_active, last_login, created_at, updated_at
		FROM users WHERE id = $1`

	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	const query = `
		SELECT id, email, username, password_hash, role, is_active, last_login, created_at, updated_at
		FROM users WHERE email = $1`

	return scanUser(r.db.QueryRow(ctx, query, email.Value()))
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return infra.WrapRepoErr("failed to update user active flag", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (*user.User, error) {
	var (
		id                   uuid.UUID
		email, username      string
		passwordHash, role   string
		isActive             bool
		lastLogin            pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &email, &username, &passwordHash, &role, &isActive, &lastLogin, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan user", err)
	}

	emailVO, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid email in storage", err)
	}
	usernameVO, err := user.NewUsername(username)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid username in storage", err)
	}
	roleVO, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid role in storage", err)
	}

	return user.ReconstructUser(
		id, emailVO, usernameVO, passwordHash, roleVO,
		pgconv.TimePtrFromPgtype(lastLogin), isActive,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
