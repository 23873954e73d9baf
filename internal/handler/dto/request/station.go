package request

import "evcharge-booking/internal/usecase/commands"

type CreateStationRequest struct {
	Name           string   `json:"name" binding:"required"`
	Address        string   `json:"address" binding:"required"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	ConnectorTypes []string `json:"connectorTypes" binding:"required,min=1"`
	ConnectorCount int      `json:"connectorCount" binding:"required,gt=0"`
	IsPublic       *bool    `json:"isPublic,omitempty"`
	OpenTime       string   `json:"openTime,omitempty"`
	CloseTime      string   `json:"closeTime,omitempty"`
	ContactEmail   string   `json:"contactEmail,omitempty"`
	ContactPhone   string   `json:"contactPhone,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
}

const (
	defaultOpenTime  = "08:00"
	defaultCloseTime = "20:00"
)

func (r CreateStationRequest) ToInput() commands.CreateStationInput {
	isPublic := true
	if r.IsPublic != nil {
		isPublic = *r.IsPublic
	}
	open := r.OpenTime
	if open == "" {
		open = defaultOpenTime
	}
	closeAt := r.CloseTime
	if closeAt == "" {
		closeAt = defaultCloseTime
	}

	return commands.CreateStationInput{
		Name:           r.Name,
		Address:        r.Address,
		Lat:            r.Lat,
		Lng:            r.Lng,
		ConnectorTypes: r.ConnectorTypes,
		ConnectorCount: r.ConnectorCount,
		IsPublic:       isPublic,
		OpenTime:       open,
		CloseTime:      closeAt,
		ContactEmail:   r.ContactEmail,
		ContactPhone:   r.ContactPhone,
		Amenities:      r.Amenities,
	}
}

type UpdateStationRequest struct {
	Name           *string  `json:"name,omitempty"`
	Address        *string  `json:"address,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	ConnectorTypes []string `json:"connectorTypes,omitempty"`
	ConnectorCount *int     `json:"connectorCount,omitempty"`
	IsPublic       *bool    `json:"isPublic,omitempty"`
	OpenTime       *string  `json:"openTime,omitempty"`
	CloseTime      *string  `json:"closeTime,omitempty"`
	ContactEmail   *string  `json:"contactEmail,omitempty"`
	ContactPhone   *string  `json:"contactPhone,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
}

func (r UpdateStationRequest) ToInput() commands.UpdateStationInput {
	return commands.UpdateStationInput{
		Name:           r.Name,
		Address:        r.Address,
		Lat:            r.Lat,
		Lng:            r.Lng,
		ConnectorTypes: r.ConnectorTypes,
		ConnectorCount: r.ConnectorCount,
		IsPublic:       r.IsPublic,
		OpenTime:       r.OpenTime,
		CloseTime:      r.CloseTime,
		ContactEmail:   r.ContactEmail,
		ContactPhone:   r.ContactPhone,
		Amenities:      r.Amenities,
	}
}
