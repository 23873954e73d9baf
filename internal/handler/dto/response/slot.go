package response

import (
	"time"

	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	ID        uuid.UUID `json:"id"`
	StationID uuid.UUID `json:"stationId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	IsBooked  bool      `json:"isBooked"`
}

func FromSlotView(view *queries.SlotView) *SlotResponse {
	var resp SlotResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromSlotViews(views []*queries.SlotView) []*SlotResponse {
	out := make([]*SlotResponse, len(views))
	for i, v := range views {
		out[i] = FromSlotView(v)
	}
	return out
}

type DeinitializeResponse struct {
	RemovedSlots     int64 `json:"removedSlots"`
	CanceledBookings int64 `json:"canceledBookings"`
}

func FromDeinitializeResult(r *commands.DeinitializeResult) *DeinitializeResponse {
	return &DeinitializeResponse{
		RemovedSlots:     r.RemovedSlots,
		CanceledBookings: r.CanceledBookings,
	}
}
