package handlers

import (
	"net/http"

	"tenability"
	"tenability/internal/models"
	"tenability/internal/service"

	"github.com/gin-gonic/gin"
)

// PathRequest is the body of the FED endpoints.
type PathRequest struct {
	// Rooms visited in order
	Rooms []string `json:"rooms" binding:"required,min=1" example:"Lounge,Corridor"`
	// Times (s) at which the occupant leaves each room but the last; may include the end time
	TransitionTimes []float64 `json:"transition_times" example:"60"`
	// Monitoring height above floor, m (default from config)
	MonitoringHeight *float64 `json:"monitoring_height,omitempty" example:"2"`
	// FED threshold reported on (default from config)
	Threshold *float64 `json:"threshold,omitempty" example:"0.3"`
}

func (r PathRequest) toService() service.PathRequest {
	return service.PathRequest{
		Rooms:            r.Rooms,
		TransitionTimes:  r.TransitionTimes,
		MonitoringHeight: r.MonitoringHeight,
		Threshold:        r.Threshold,
	}
}

func newPathResponse(res service.PathResult) tenability.PathResponse {
	return tenability.PathResponse{
		SimulationID: res.SimulationID,
		Model:        res.Model,
		Curve:        tenability.NewFEDCurve(res.Series),
		Report:       tenability.NewVerdict(res.Report),
		Summary:      res.Summary,
		Events:       res.Events,
	}
}

// @Summary      FED for CO along a path
// @Description  Cumulative fractional effective dose from CO (with CO2 hyperventilation) for an occupant moving through rooms.
// @Tags         fed
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Simulation ID"
// @Param        body  body      PathRequest  true  "Egress path"
// @Success      200   {object}  tenability.PathResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulations/{id}/fed/co [post]
// @Security     BearerAuth
func (h *Handler) computeCO(c *gin.Context) {
	h.computePath(c, models.ModelCO)
}

// @Summary      FED for heat along a path
// @Description  Cumulative fractional effective dose from convective and radiant heat for an occupant moving through rooms.
// @Tags         fed
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Simulation ID"
// @Param        body  body      PathRequest  true  "Egress path"
// @Success      200   {object}  tenability.PathResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulations/{id}/fed/thermal [post]
// @Security     BearerAuth
func (h *Handler) computeThermal(c *gin.Context) {
	h.computePath(c, models.ModelThermal)
}

func (h *Handler) computePath(c *gin.Context, model string) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id := c.Param("id")
	ctx := c.Request.Context()

	var (
		res service.PathResult
		err error
	)
	if model == models.ModelCO {
		res, err = h.services.ComputeCO(ctx, id, req.toService())
	} else {
		res, err = h.services.ComputeThermal(ctx, id, req.toService())
	}
	if err != nil {
		h.respondError(c, "fed_compute_failed", err, "id", id, "model", model, "rooms", req.Rooms)
		return
	}
	c.JSON(http.StatusOK, newPathResponse(res))
}

// @Summary      FED per room
// @Description  Single-room curves for an occupant who stays in each room from ignition, with configured defaults.
// @Tags         fed
// @Produce      json
// @Param        id     path      string  true   "Simulation ID"
// @Param        model  query     string  false  "FED model"  Enums(co,thermal)  default(co)
// @Param        rooms  query     string  false  "Comma-separated room names; all rooms when omitted"
// @Success      200    {object}  map[string]interface{}  "model, count, rooms"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/simulations/{id}/fed/rooms [get]
// @Security     BearerAuth
func (h *Handler) perRoomFED(c *gin.Context) {
	id := c.Param("id")
	model := c.DefaultQuery("model", models.ModelCO)
	results, err := h.services.PerRoom(c.Request.Context(), id, model, queryList(c, "rooms"))
	if err != nil {
		h.respondError(c, "fed_per_room_failed", err, "id", id, "model", model)
		return
	}
	out := make([]tenability.RoomResponse, 0, len(results))
	for _, r := range results {
		out = append(out, tenability.RoomResponse{
			Room:   r.Room,
			Curve:  tenability.NewFEDCurve(r.Series),
			Report: tenability.NewVerdict(r.Report),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"model": model,
		"count": len(out),
		"rooms": out,
	})
}
