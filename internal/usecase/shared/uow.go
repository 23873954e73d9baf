package shared

import (
	"context"
	"time"

	"evcharge-booking/internal/domain/booking"
	"evcharge-booking/internal/domain/slot"
	"evcharge-booking/internal/domain/station"
	"evcharge-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full ReadCommitted transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Repos: non-transactional repository access for single-statement writes
	Repos() Tx
}

type Tx interface {
	Stations() StationRepository
	Slots() SlotRepository
	Bookings() BookingRepository
	Users() UserRepository
}

type StationRepository interface {
	Create(ctx context.Context, st *station.Station) error
	Update(ctx context.Context, st *station.Station) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*station.Station, error)
	// DependencyCounts reports bookings and slots referencing the station.
	DependencyCounts(ctx context.Context, id uuid.UUID) (DependencyPreview, error)
}

type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*slot.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	ExistsForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (bool, error)
	CountBookedForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (int64, error)
	DeleteForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (int64, error)
	DeleteByStation(ctx context.Context, stationID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Claim is the single serialization point for booking creation: a
	// compare-and-set on the booked flag. Losing racers get KindConflict.
	Claim(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// UpdateStatus persists the transition only if the stored status still
	// matches from; a concurrent writer losing the race gets KindConflict.
	UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// CancelActiveForDay cancels pending and approved bookings whose slot
	// falls on the given station-day and releases their slots; used by
	// forced deinitialization. Confirmed and completed bookings are left
	// untouched.
	CancelActiveForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (int64, error)
	// DetachSlotForDay clears the slot reference on every booking whose
	// slot falls on the given station-day, keeping the rows as history
	// once the slots themselves are deleted.
	DetachSlotForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (int64, error)
	// DetachFromSlot clears the slot reference on bookings pointing at a
	// single slot about to be deleted.
	DetachFromSlot(ctx context.Context, slotID uuid.UUID) (int64, error)
	DeleteByStation(ctx context.Context, stationID uuid.UUID) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
