package response

import (
	"time"

	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type StationResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Latitude       *float64  `json:"lat,omitempty"`
	Longitude      *float64  `json:"lng,omitempty"`
	ConnectorTypes []string  `json:"connectorTypes"`
	ConnectorCount int       `json:"connectorCount"`
	IsActive       bool      `json:"isActive"`
	IsPublic       bool      `json:"isPublic"`
	OpenTime       string    `json:"openTime"`
	CloseTime      string    `json:"closeTime"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	ContactPhone   string    `json:"contactPhone,omitempty"`
	Amenities      []string  `json:"amenities,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromStationView(view *queries.StationView) *StationResponse {
	var resp StationResponse
	// Field names line up with the view; copier keeps the mapping from
	// drifting as columns are added.
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromStationViews(views []*queries.StationView) []*StationResponse {
	out := make([]*StationResponse, len(views))
	for i, v := range views {
		out[i] = FromStationView(v)
	}
	return out
}

// DeleteStationResponse reports a confirmed deletion or, on the preview
// pass, what a confirmed call would remove.
type DeleteStationResponse struct {
	Deleted bool                     `json:"deleted"`
	Preview shared.DependencyPreview `json:"preview"`
}

func FromDeleteResult(r *commands.DeleteStationResult) *DeleteStationResponse {
	return &DeleteStationResponse{
		Deleted: r.Deleted,
		Preview: r.Preview,
	}
}
