package repository

import (
	"context"

	"evcharge-booking/internal/domain/station"
	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/infra/db"
	"evcharge-booking/internal/pkg/pgconv"
	"evcharge-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type StationRepository struct {
	db db.DBTX
}

func NewStationRepository(dbtx db.DBTX) *StationRepository {
	return &StationRepository{db: dbtx}
}

func (r *StationRepository) Create(ctx context.Context, st *station.Station) error {
	const query = `
		INSERT INTO stations (
			id, name, address, latitude, longitude,
			connector_types, connector_count, is_active, is_public,
			open_time, close_time, contact_email, contact_phone, amenities
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	lat, lng := locationToPg(st.Location())
	_, err := r.db.Exec(ctx, query,
		st.ID(), st.Name(), st.Address(), lat, lng,
		connectorStrings(st.ConnectorTypes()), st.ConnectorCount(), st.IsActive(), st.IsPublic(),
		st.Hours().Open(), st.Hours().Close(), st.ContactEmail(), st.ContactPhone(), st.Amenities(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create station", err)
	}
	return nil
}

func (r *StationRepository) Update(ctx context.Context, st *station.Station) error {
	const query = `
		UPDATE stations SET
			name = $2, address = $3, latitude = $4, longitude = $5,
			connector_types = $6, connector_count = $7, is_active = $8, is_public = $9,
			open_time = $10, close_time = $11, contact_email = $12, contact_phone = $13,
			amenities = $14, updated_at = now()
		WHERE id = $1`

	lat, lng := locationToPg(st.Location())
	tag, err := r.db.Exec(ctx, query,
		st.ID(), st.Name(), st.Address(), lat, lng,
		connectorStrings(st.ConnectorTypes()), st.ConnectorCount(), st.IsActive(), st.IsPublic(),
		st.Hours().Open(), st.Hours().Close(), st.ContactEmail(), st.ContactPhone(), st.Amenities(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update station", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("station not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *StationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete station", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("station not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *StationRepository) FindByID(ctx context.Context, id uuid.UUID) (*station.Station, error) {
	const query = `
		SELECT id, name, address, latitude, longitude,
		       connector_types, connector_count, is_active, is_public,
		       open_time, close_time, contact_email, contact_phone, amenities,
		       created_at, updated_at
		FROM stations WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanStation(row)
}

func (r *StationRepository) DependencyCounts(ctx context.Context, id uuid.UUID) (shared.DependencyPreview, error) {
	const query = `
		SELECT
			(SELECT count(*) FROM bookings WHERE station_id = $1),
			(SELECT count(*) FROM charging_slots WHERE station_id = $1)`

	var preview shared.DependencyPreview
	err := r.db.QueryRow(ctx, query, id).Scan(&preview.BookingsCount, &preview.SlotsCount)
	if err != nil {
		return shared.DependencyPreview{}, infra.WrapRepoErr("failed to count station dependencies", err)
	}
	return preview, nil
}

type stationRow interface {
	Scan(dest ...any) error
}

func scanStation(row stationRow) (*station.Station, error) {
	var (
		id                         uuid.UUID
		name, address              string
		lat, lng                   pgtype.Float8
		connectorTypes             []string
		connectorCount             int
		isActive, isPublic         bool
		openTime, closeTime        string
		contactEmail, contactPhone string
		amenities                  []string
		createdAt, updatedAt       pgtype.Timestamptz
	)

	err := row.Scan(
		&id, &name, &address, &lat, &lng,
		&connectorTypes, &connectorCount, &isActive, &isPublic,
		&openTime, &closeTime, &contactEmail, &contactPhone, &amenities,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("station not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan station", err)
	}

	var location *station.GeoPoint
	if lat.Valid && lng.Valid {
		point, err := station.NewGeoPoint(lat.Float64, lng.Float64)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid station coordinates", err)
		}
		location = &point
	}

	hours, err := station.NewOperatingHours(openTime, closeTime)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid station operating hours", err)
	}

	cts := make([]station.ConnectorType, len(connectorTypes))
	for i, s := range connectorTypes {
		cts[i] = station.ConnectorType(s)
	}

	return station.ReconstructStation(
		id, name, address, location, cts, connectorCount,
		isActive, isPublic, hours, contactEmail, contactPhone, amenities,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func connectorStrings(cts []station.ConnectorType) []string {
	out := make([]string, len(cts))
	for i, ct := range cts {
		out[i] = ct.String()
	}
	return out
}

func locationToPg(p *station.GeoPoint) (pgtype.Float8, pgtype.Float8) {
	if p == nil {
		return pgtype.Float8{}, pgtype.Float8{}
	}
	return pgtype.Float8{Float64: p.Lat(), Valid: true}, pgtype.Float8{Float64: p.Lng(), Valid: true}
}
