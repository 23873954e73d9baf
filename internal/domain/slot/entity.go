package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInterval = errors.New("slot start must be before end")
	ErrAlreadyBooked   = errors.New("slot is already booked")
	ErrNotBooked       = errors.New("slot is not booked")
)

// Slot is one bookable interval at a station. Slots within a station-day
// never overlap by construction (see GenerateDay).
type Slot struct {
	id        uuid.UUID
	stationID uuid.UUID
	start     time.Time
	end       time.Time
	isBooked  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewSlot(stationID uuid.UUID, start, end time.Time) (*Slot, error) {
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}
	return &Slot{
		id:        uuid.New(),
		stationID: stationID,
		start:     start,
		end:       end,
	}, nil
}

func ReconstructSlot(
	id, stationID uuid.UUID,
	start, end time.Time,
	isBooked bool,
	createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:        id,
		stationID: stationID,
		start:     start,
		end:       end,
		isBooked:  isBooked,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Book marks the slot taken. The persistent claim is a compare-and-set in
// the repository; this entity-level variant backs generator logic and tests.
func (s *Slot) Book() error {
	if s.isBooked {
		return ErrAlreadyBooked
	}
	s.isBooked = true
	return nil
}

func (s *Slot) Release() error {
	if !s.isBooked {
		return ErrNotBooked
	}
	s.isBooked = false
	return nil
}

func (s *Slot) ID() uuid.UUID        { return s.id }
func (s *Slot) StationID() uuid.UUID { return s.stationID }
func (s *Slot) Start() time.Time     { return s.start }
func (s *Slot) End() time.Time       { return s.end }
func (s *Slot) IsBooked() bool       { return s.isBooked }
func (s *Slot) CreatedAt() time.Time { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time { return s.updatedAt }
