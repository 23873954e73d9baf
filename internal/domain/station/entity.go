package station

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Station is a physical charging location owning bookable slots.
// The active flag gates new bookings only; existing bookings stay valid
// while a station is inactive.
type Station struct {
	id             uuid.UUID
	name           string
	address        string
	location       *GeoPoint
	connectorTypes []ConnectorType
	connectorCount int
	isActive       bool
	isPublic       bool
	hours          OperatingHours
	contactEmail   string
	contactPhone   string
	amenities      []string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewStation(
	name, address string,
	location *GeoPoint,
	connectorTypes []ConnectorType,
	connectorCount int,
	isPublic bool,
	hours OperatingHours,
	contactEmail, contactPhone string,
	amenities []string,
) (*Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if strings.TrimSpace(address) == "" {
		return nil, ErrInvalidAddress
	}
	if connectorCount <= 0 {
		return nil, ErrInvalidConnectorNum
	}
	for _, ct := range connectorTypes {
		if !ct.IsValid() {
			return nil, ErrInvalidConnectorType
		}
	}

	return &Station{
		id:             uuid.New(),
		name:           name,
		address:        strings.TrimSpace(address),
		location:       location,
		connectorTypes: connectorTypes,
		connectorCount: connectorCount,
		isActive:       true,
		isPublic:       isPublic,
		hours:          hours,
		contactEmail:   strings.TrimSpace(contactEmail),
		contactPhone:   strings.TrimSpace(contactPhone),
		amenities:      amenities,
	}, nil
}

func ReconstructStation(
	id uuid.UUID,
	name, address string,
	location *GeoPoint,
	connectorTypes []ConnectorType,
	connectorCount int,
	isActive, isPublic bool,
	hours OperatingHours,
	contactEmail, contactPhone string,
	amenities []string,
	createdAt, updatedAt time.Time,
) *Station {
	return &Station{
		id:             id,
		name:           name,
		address:        address,
		location:       location,
		connectorTypes: connectorTypes,
		connectorCount: connectorCount,
		isActive:       isActive,
		isPublic:       isPublic,
		hours:          hours,
		contactEmail:   contactEmail,
		contactPhone:   contactPhone,
		amenities:      amenities,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Activate reports whether the flag actually changed; re-activating an
// active station is a no-op success.
func (s *Station) Activate() bool {
	if s.isActive {
		return false
	}
	s.isActive = true
	return true
}

func (s *Station) Deactivate() bool {
	if !s.isActive {
		return false
	}
	s.isActive = false
	return true
}

func (s *Station) AcceptsBookings() bool {
	return s.isActive
}

func (s *Station) ID() uuid.UUID                   { return s.id }
func (s *Station) Name() string                    { return s.name }
func (s *Station) Address() string                 { return s.address }
func (s *Station) Location() *GeoPoint             { return s.location }
func (s *Station) ConnectorTypes() []ConnectorType { return s.connectorTypes }
func (s *Station) ConnectorCount() int             { return s.connectorCount }
func (s *Station) IsActive() bool                  { return s.isActive }
func (s *Station) IsPublic() bool                  { return s.isPublic }
func (s *Station) Hours() OperatingHours           { return s.hours }
func (s *Station) ContactEmail() string            { return s.contactEmail }
func (s *Station) ContactPhone() string            { return s.contactPhone }
func (s *Station) Amenities() []string             { return s.amenities }
func (s *Station) CreatedAt() time.Time            { return s.createdAt }
func (s *Station) UpdatedAt() time.Time            { return s.updatedAt }
