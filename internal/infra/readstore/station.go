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

const stationViewColumns = `
	id, name, address, latitude, longitude,
	connector_types, connector_count, is_active, is_public,
	open_time, close_time, contact_email, contact_phone, amenities,
	created_at, updated_at`

type StationReadStore struct {
	db db.DBTX
}

func NewStationReadStore(dbtx db.DBTX) *StationReadStore {
	return &StationReadStore{db: dbtx}
}

func (r *StationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.StationView, error) {
	query := `SELECT` + stationViewColumns + ` FROM stations WHERE id = $1`

	view, err := scanStationView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("station not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find station", err)
	}
	return view, nil
}

func (r *StationReadStore) FindAll(ctx context.Context, publicOnly bool) ([]*queries.StationView, error) {
	query := `SELECT` + stationViewColumns + ` FROM stations ORDER BY name`
	if publicOnly {
		query = `SELECT` + stationViewColumns + ` FROM stations WHERE is_public AND is_active ORDER BY name`
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stations", err)
	}
	defer rows.Close()

	var views []*queries.StationView
	for rows.Next() {
		view, err := scanStationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan station row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate station rows", err)
	}
	return views, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStationView(row scanner) (*queries.StationView, error) {
	var (
		v                    queries.StationView
		lat, lng             pgtype.Float8
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.Name, &v.Address, &lat, &lng,
		&v.ConnectorTypes, &v.ConnectorCount, &v.IsActive, &v.IsPublic,
		&v.OpenTime, &v.CloseTime, &v.ContactEmail, &v.ContactPhone, &v.Amenities,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		v.Latitude = &lat.Float64
	}
	if lng.Valid {
		v.Longitude = &lng.Float64
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
