package slot

import (
	"errors"
	"time"

	"evcharge-booking/internal/domain/station"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration = errors.New("slot duration must be positive")
	ErrEmptyWindow     = errors.New("operating window shorter than one slot")
)

// GenerateDay partitions a station's operating window on the given day into
// fixed-duration slots, all unbooked. A trailing remainder shorter than one
// slot is dropped rather than producing an undersized interval.
func GenerateDay(
	stationID uuid.UUID,
	day time.Time,
	hours station.OperatingHours,
	duration time.Duration,
) ([]*Slot, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	open := midnight.Add(time.Duration(hours.OpenMinutes()) * time.Minute)
	close := midnight.Add(time.Duration(hours.CloseMinutes()) * time.Minute)

	if open.Add(duration).After(close) {
		return nil, ErrEmptyWindow
	}

	var slots []*Slot
	for start := open; !start.Add(duration).After(close); start = start.Add(duration) {
		s, err := NewSlot(stationID, start, start.Add(duration))
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, nil
}
