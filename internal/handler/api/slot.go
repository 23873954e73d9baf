package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	resdto "evcharge-booking/internal/handler/dto/response"
	"evcharge-booking/internal/handler/middleware"
	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	slotCommands commands.SlotCommands
	slotQueries  queries.SlotQueries
}

func NewSlotHandler(slotCommands commands.SlotCommands, slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		slotCommands: slotCommands,
		slotQueries:  slotQueries,
	}
}

// @Summary Initialize slots for a day
// @Description Generate the full slot grid for a station-day from its operating hours
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param stationId path string true "Station ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 201 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /chargingslot/init/{stationId}/{date} [post]
func (h *SlotHandler) InitializeDay(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	stationID, day, ok := h.parseStationDay(c)
	if !ok {
		return
	}

	views, err := h.slotCommands.InitializeDay(c.Request.Context(), actor, stationID, day)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSlotViews(views))
}

// @Summary Deinitialize slots for a day
// @Description Remove a station-day's slots. Active bookings block the teardown unless force=true, which cancels them first.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param stationId path string true "Station ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param force query bool false "Cancel active bookings before removal"
// @Success 200 {object} resdto.DeinitializeResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /chargingslot/deinit/{stationId}/{date} [delete]
func (h *SlotHandler) DeinitializeDay(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	stationID, day, ok := h.parseStationDay(c)
	if !ok {
		return
	}

	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

	result, err := h.slotCommands.DeinitializeDay(c.Request.Context(), actor, stationID, day, force)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDeinitializeResult(result))
}

// @Summary List slots for a day
// @Description List a station-day's slots ordered by start time
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param stationId path string true "Station ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Router /chargingslot/all/{stationId}/{date} [get]
func (h *SlotHandler) ListDay(c *gin.Context) {
	stationID, day, ok := h.parseStationDay(c)
	if !ok {
		return
	}

	views, err := h.slotQueries.ListByStationDay(c.Request.Context(), stationID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotViews(views))
}

// @Summary Delete a slot
// @Description Remove a single unbooked slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param slotId path string true "Slot ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /chargingslot/{slotId} [delete]
func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID format"})
		return
	}

	if err := h.slotCommands.DeleteSlot(c.Request.Context(), actor, slotID); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SlotHandler) parseStationDay(c *gin.Context) (uuid.UUID, time.Time, bool) {
	stationID, err := uuid.Parse(c.Param("stationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID format"})
		return uuid.Nil, time.Time{}, false
	}

	day, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return uuid.Nil, time.Time{}, false
	}

	return stationID, day, true
}

func (h *SlotHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, commands.ErrStationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
	case errors.Is(err, commands.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
	case errors.Is(err, commands.ErrSlotsAlreadyInitialized):
		c.JSON(http.StatusConflict, gin.H{"error": "Slots already initialized for this day"})
	case errors.Is(err, commands.ErrSlotsHaveActiveBookings):
		c.JSON(http.StatusConflict, gin.H{"error": "Active bookings exist for this day; retry with force=true to cancel them"})
	case errors.Is(err, commands.ErrSlotBooked):
		c.JSON(http.StatusConflict, gin.H{"error": "Slot has an active booking"})
	case errors.Is(err, commands.ErrInvalidStationInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot parameters"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
