package station

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidName          = errors.New("station name must not be empty")
	ErrInvalidAddress       = errors.New("station address must not be empty")
	ErrInvalidCoordinates   = errors.New("invalid geo coordinates")
	ErrInvalidConnectorType = errors.New("invalid connector type")
	ErrInvalidConnectorNum  = errors.New("connector count must be positive")
	ErrInvalidOperatingHour = errors.New("invalid operating hours")
)

// GeoPoint is an optional station location.
type GeoPoint struct {
	lat float64
	lng float64
}

func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return GeoPoint{}, ErrInvalidCoordinates
	}
	return GeoPoint{lat: lat, lng: lng}, nil
}

func (g GeoPoint) Lat() float64 { return g.lat }
func (g GeoPoint) Lng() float64 { return g.lng }

// OperatingHours is the daily bookable window, minute granularity.
type OperatingHours struct {
	openMinutes  int
	closeMinutes int
}

func NewOperatingHours(open, close string) (OperatingHours, error) {
	openMin, err := parseTimeOfDay(open)
	if err != nil {
		return OperatingHours{}, ErrInvalidOperatingHour
	}
	closeMin, err := parseTimeOfDay(close)
	if err != nil {
		return OperatingHours{}, ErrInvalidOperatingHour
	}
	if openMin >= closeMin {
		return OperatingHours{}, ErrInvalidOperatingHour
	}
	return OperatingHours{openMinutes: openMin, closeMinutes: closeMin}, nil
}

func (h OperatingHours) OpenMinutes() int  { return h.openMinutes }
func (h OperatingHours) CloseMinutes() int { return h.closeMinutes }

func (h OperatingHours) Open() string  { return formatTimeOfDay(h.openMinutes) }
func (h OperatingHours) Close() string { return formatTimeOfDay(h.closeMinutes) }

func (h OperatingHours) IsZero() bool {
	return h.openMinutes == 0 && h.closeMinutes == 0
}

func parseTimeOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
