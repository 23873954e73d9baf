package readstore

import (
	"context"

	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/infra/db"
	"evcharge-booking/internal/pkg/pgconv"
	"evcharge-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const query = `
		SELECT id, email, username, role, is_active, last_login
		FROM users WHERE id = $1`

	var (
		v         queries.UserView
		lastLogin pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Email, &v.Username, &v.Role, &v.IsActive, &lastLogin)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	v.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &v, nil
}
