package commands

import (
	"context"

	"evcharge-booking/internal/domain/station"
	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/pkg/errs"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// StationCacheInvalidator is the consumer-side port for dropping cached
// station views after a write. A nil-safe no-op implementation is fine.
type StationCacheInvalidator interface {
	Invalidate(ctx context.Context, id uuid.UUID)
}

type CreateStationInput struct {
	Name           string
	Address        string
	Lat            *float64
	Lng            *float64
	ConnectorTypes []string
	ConnectorCount int
	IsPublic       bool
	OpenTime       string
	CloseTime      string
	ContactEmail   string
	ContactPhone   string
	Amenities      []string
}

// UpdateStationInput carries partial updates; nil means "leave as is".
type UpdateStationInput struct {
	Name           *string
	Address        *string
	Lat            *float64
	Lng            *float64
	ConnectorTypes []string
	ConnectorCount *int
	IsPublic       *bool
	OpenTime       *string
	CloseTime      *string
	ContactEmail   *string
	ContactPhone   *string
	Amenities      []string
}

// DeleteStationResult reports what a deletion did or would do. Deleted is
// false for the preview pass.
type DeleteStationResult struct {
	Deleted bool                     `json:"deleted"`
	Preview shared.DependencyPreview `json:"preview"`
}

type StationCommands interface {
	Create(ctx context.Context, actor shared.Actor, input CreateStationInput) (*queries.StationView, error)
	UpdatePartial(ctx context.Context, actor shared.Actor, id uuid.UUID, input UpdateStationInput) (*queries.StationView, error)
	Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.StationView, error)
	Deactivate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.StationView, error)
	// Delete previews dependent records unless confirm is set; a confirmed
	// delete removes bookings and slots before the station row.
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID, confirm bool) (*DeleteStationResult, error)
}

type stationCommandsImpl struct {
	uow            shared.UnitOfWork
	stationQueries queries.StationQueries
	invalidator    StationCacheInvalidator
}

func NewStationCommands(
	uow shared.UnitOfWork,
	stationQueries queries.StationQueries,
	invalidator StationCacheInvalidator,
) StationCommands {
	return &stationCommandsImpl{
		uow:            uow,
		stationQueries: stationQueries,
		invalidator:    invalidator,
	}
}

func (c *stationCommandsImpl) Create(ctx context.Context, actor shared.Actor, input CreateStationInput) (*queries.StationView, error) {
	if !actor.CanManageStations() {
		return nil, ErrForbidden
	}

	location, err := buildLocation(input.Lat, input.Lng)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStationInput)
	}
	connectors, err := buildConnectorTypes(input.ConnectorTypes)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStationInput)
	}
	hours, err := station.NewOperatingHours(input.OpenTime, input.CloseTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStationInput)
	}

	st, err := station.NewStation(
		input.Name, input.Address,
		location, connectors, input.ConnectorCount,
		input.IsPublic, hours,
		input.ContactEmail, input.ContactPhone,
		input.Amenities,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStationInput)
	}

	if err := c.uow.Repos().Stations().Create(ctx, st); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c.invalidator.Invalidate(ctx, st.ID())
	return c.stationQueries.GetByID(ctx, st.ID())
}

func (c *stationCommandsImpl) UpdatePartial(ctx context.Context, actor shared.Actor, id uuid.UUID, input UpdateStationInput) (*queries.StationView, error) {
	if !actor.CanManageStations() {
		return nil, ErrForbidden
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Stations().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrStationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		patched, err := applyStationPatch(current, input)
		if err != nil {
			return errs.Mark(err, ErrInvalidStationInput)
		}

		if err := tx.Stations().Update(ctx, patched); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.invalidator.Invalidate(ctx, id)
	return c.stationQueries.GetByID(ctx, id)
}

func (c *stationCommandsImpl) Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.StationView, error) {
	return c.setActive(ctx, actor, id, true)
}

func (c *stationCommandsImpl) Deactivate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.StationView, error) {
	return c.setActive(ctx, actor, id, false)
}

func (c *stationCommandsImpl) setActive(ctx context.Context, actor shared.Actor, id uuid.UUID, active bool) (*queries.StationView, error) {
	if !actor.CanManageStations() {
		return nil, ErrForbidden
	}

	repos := c.uow.Repos()
	st, err := repos.Stations().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var changed bool
	if active {
		changed = st.Activate()
	} else {
		changed = st.Deactivate()
	}

	// Re-applying the current state is an idempotent success.
	if changed {
		if err := repos.Stations().Update(ctx, st); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		c.invalidator.Invalidate(ctx, id)
	}

	return c.stationQueries.GetByID(ctx, id)
}

func (c *stationCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID, confirm bool) (*DeleteStationResult, error) {
	if !actor.CanManageStations() {
		return nil, ErrForbidden
	}

	result := &DeleteStationResult{}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Stations().FindByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrStationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		preview, err := tx.Stations().DependencyCounts(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		result.Preview = preview

		if !confirm {
			if preview.HasDependencies() {
				return ErrStationHasDependencies
			}
			// Nothing depends on the station; the preview alone still
			// performs no mutation.
			return nil
		}

		if _, err := tx.Bookings().DeleteByStation(ctx, id); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if _, err := tx.Slots().DeleteByStation(ctx, id); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Stations().Delete(ctx, id); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		result.Deleted = true
		return nil
	})
	if err != nil {
		// The preview travels with the dependency conflict so callers can
		// show what blocks the delete.
		return result, err
	}

	if result.Deleted {
		c.invalidator.Invalidate(ctx, id)
	}
	return result, nil
}

func buildLocation(lat, lng *float64) (*station.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	p, err := station.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func buildConnectorTypes(raw []string) ([]station.ConnectorType, error) {
	types := make([]station.ConnectorType, 0, len(raw))
	for _, s := range raw {
		ct, err := station.NewConnectorType(s)
		if err != nil {
			return nil, err
		}
		types = append(types, ct)
	}
	return types, nil
}

func applyStationPatch(current *station.Station, input UpdateStationInput) (*station.Station, error) {
	name := current.Name()
	if input.Name != nil {
		name = *input.Name
	}
	address := current.Address()
	if input.Address != nil {
		address = *input.Address
	}

	location := current.Location()
	if input.Lat != nil && input.Lng != nil {
		p, err := station.NewGeoPoint(*input.Lat, *input.Lng)
		if err != nil {
			return nil, err
		}
		location = &p
	}

	connectors := current.ConnectorTypes()
	if input.ConnectorTypes != nil {
		built, err := buildConnectorTypes(input.ConnectorTypes)
		if err != nil {
			return nil, err
		}
		connectors = built
	}

	connectorCount := current.ConnectorCount()
	if input.ConnectorCount != nil {
		connectorCount = *input.ConnectorCount
	}

	isPublic := current.IsPublic()
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	hours := current.Hours()
	if input.OpenTime != nil || input.CloseTime != nil {
		open := hours.Open()
		if input.OpenTime != nil {
			open = *input.OpenTime
		}
		closeAt := hours.Close()
		if input.CloseTime != nil {
			closeAt = *input.CloseTime
		}
		built, err := station.NewOperatingHours(open, closeAt)
		if err != nil {
			return nil, err
		}
		hours = built
	}

	contactEmail := current.ContactEmail()
	if input.ContactEmail != nil {
		contactEmail = *input.ContactEmail
	}
	contactPhone := current.ContactPhone()
	if input.ContactPhone != nil {
		contactPhone = *input.ContactPhone
	}
	amenities := current.Amenities()
	if input.Amenities != nil {
		amenities = input.Amenities
	}

	rebuilt, err := station.NewStation(
		name, address, location, connectors, connectorCount,
		isPublic, hours, contactEmail, contactPhone, amenities,
	)
	if err != nil {
		return nil, err
	}

	return station.ReconstructStation(
		current.ID(),
		rebuilt.Name(), rebuilt.Address(), rebuilt.Location(),
		rebuilt.ConnectorTypes(), rebuilt.ConnectorCount(),
		current.IsActive(), rebuilt.IsPublic(), rebuilt.Hours(),
		rebuilt.ContactEmail(), rebuilt.ContactPhone(), rebuilt.Amenities(),
		current.CreatedAt(), current.UpdatedAt(),
	), nil
}
