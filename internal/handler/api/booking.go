package api

import (
	"errors"
	"net/http"

	reqdto "evcharge-booking/internal/handler/dto/request"
	resdto "evcharge-booking/internal/handler/dto/response"
	"evcharge-booking/internal/handler/middleware"
	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Claim a free slot and open a pending booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Station and slot"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /booking/create [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), actor, req.StationID, req.SlotID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a pending or approved booking; closed to callers inside the cancellation window
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /booking/cancel/{id} [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	view, err := h.bookingCommands.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Update booking status
// @Description Drive the booking through approve, confirm, complete or reopen
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Transition to apply"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /booking/update/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var view *queries.BookingView
	switch req.Action {
	case "approve":
		view, err = h.bookingCommands.Approve(c.Request.Context(), actor, id)
	case "confirm":
		view, err = h.bookingCommands.Confirm(c.Request.Context(), actor, id)
	case "complete":
		view, err = h.bookingCommands.Complete(c.Request.Context(), actor, id)
	case "reopen":
		view, err = h.bookingCommands.Reopen(c.Request.Context(), actor, id)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
		return
	}
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description Regular users see their own bookings. Operators see all, optionally filtered by userId.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Filter by user ID (operator only)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /booking/all [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	filter, err := h.resolveListFilter(c, actor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var views []*queries.BookingView
	if filter == uuid.Nil {
		views, err = h.bookingQueries.ListAll(c.Request.Context())
	} else {
		views, err = h.bookingQueries.ListByUser(c.Request.Context(), filter)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// resolveListFilter returns the user to filter by, or uuid.Nil for an
// unfiltered listing. Non-operators are always pinned to themselves.
func (h *BookingHandler) resolveListFilter(c *gin.Context, actor shared.Actor) (uuid.UUID, error) {
	if !actor.CanManageStations() {
		return actor.UserID, nil
	}

	raw := c.Query("userId")
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid userId format")
	}
	return id, nil
}

func (h *BookingHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, commands.ErrStationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
	case errors.Is(err, commands.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, commands.ErrSlotAlreadyBooked):
		c.JSON(http.StatusConflict, gin.H{"error": "Slot is already booked"})
	case errors.Is(err, commands.ErrStationInactive):
		c.JSON(http.StatusConflict, gin.H{"error": "Station is not accepting bookings"})
	case errors.Is(err, commands.ErrSlotStationMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slot does not belong to the station"})
	case errors.Is(err, commands.ErrCancelWindowClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Cancellation window has closed"})
	case errors.Is(err, commands.ErrReservationPassed):
		c.JSON(http.StatusConflict, gin.H{"error": "Reservation time has passed"})
	case errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid booking state transition"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
