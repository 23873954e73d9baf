package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "evcharge-booking/internal/handler/dto/request"
	resdto "evcharge-booking/internal/handler/dto/response"
	"evcharge-booking/internal/handler/middleware"
	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StationHandler struct {
	stationCommands commands.StationCommands
	stationQueries  queries.StationQueries
}

func NewStationHandler(stationCommands commands.StationCommands, stationQueries queries.StationQueries) *StationHandler {
	return &StationHandler{
		stationCommands: stationCommands,
		stationQueries:  stationQueries,
	}
}

// @Summary Create charging station
// @Description Register a new charging station
// @Tags stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateStationRequest true "Station attributes"
// @Success 201 {object} resdto.StationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /chargingstation/create [post]
func (h *StationHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.stationCommands.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromStationView(view))
}

// @Summary List charging stations
// @Description List stations; non-operators see public active stations only
// @Tags stations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.StationResponse
// @Failure 401 {object} map[string]string
// @Router /chargingstation/all [get]
func (h *StationHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	publicOnly := !actor.CanManageStations()
	views, err := h.stationQueries.ListAll(c.Request.Context(), publicOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromStationViews(views))
}

// @Summary Get charging station
// @Description Get a station by ID
// @Tags stations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Success 200 {object} resdto.StationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /chargingstation/{id} [get]
func (h *StationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID format"})
		return
	}

	view, err := h.stationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromStationView(view))
}

// @Summary Update charging station
// @Description Partially update station attributes; absent fields are left unchanged
// @Tags stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Param request body reqdto.UpdateStationRequest true "Fields to update"
// @Success 200 {object} resdto.StationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /chargingstation/partial/{id} [patch]
func (h *StationHandler) UpdatePartial(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID format"})
		return
	}

	var req reqdto.UpdateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.stationCommands.UpdatePartial(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromStationView(view))
}

// @Summary Activate charging station
// @Description Reopen a station for new bookings; idempotent
// @Tags stations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Success 200 {object} resdto.StationResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /chargingstation/activate/{id} [post]
func (h *StationHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// @Summary Deactivate charging station
// @Description Stop accepting new bookings; existing bookings stay valid
// @Tags stations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Success 200 {object} resdto.StationResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /chargingstation/deactivate/{id} [post]
func (h *StationHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *StationHandler) setActive(c *gin.Context, active bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID format"})
		return
	}

	var view *queries.StationView
	if active {
		view, err = h.stationCommands.Activate(c.Request.Context(), actor, id)
	} else {
		view, err = h.stationCommands.Deactivate(c.Request.Context(), actor, id)
	}
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromStationView(view))
}

// @Summary Delete charging station
// @Description Without confirm, reports dependent bookings and slots and performs no deletion. With confirm=true, removes the station and everything referencing it.
// @Tags stations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Param confirm query bool false "Perform the deletion"
// @Success 200 {object} resdto.DeleteStationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} resdto.DeleteStationResponse
// @Router /chargingstation/delete/{id} [delete]
func (h *StationHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID format"})
		return
	}

	confirm, _ := strconv.ParseBool(c.DefaultQuery("confirm", "false"))

	result, err := h.stationCommands.Delete(c.Request.Context(), actor, id, confirm)
	if err != nil {
		if errors.Is(err, commands.ErrStationHasDependencies) {
			// The preview rides along so the caller can decide whether
			// to re-issue with confirm=true.
			preview := shared.DependencyPreview{}
			if result != nil {
				preview = result.Preview
			}
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Station has dependent records",
				"preview": preview,
			})
			return
		}
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDeleteResult(result))
}

func (h *StationHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, commands.ErrStationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
	case errors.Is(err, commands.ErrInvalidStationInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station attributes"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
