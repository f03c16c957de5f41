package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"tenability"
	"tenability/internal/models"
	"tenability/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from'; use seconds since ignition"
	errToInvalid   = "invalid 'to'; use seconds since ignition"
)

// ImportRequest is the body of POST /simulations.
type ImportRequest struct {
	// Results directory or zip archive readable by the server
	Path string `json:"path" binding:"required" example:"/data/run1.zip"`
}

// @Summary      Import simulation
// @Description  Reads the event log, input file and results workbook of a B-RISK run and stores them. Re-importing a path replaces it.
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        body  body      ImportRequest  true  "Results location"
// @Success      201   {object}  tenability.Simulation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/simulations [post]
// @Security     BearerAuth
func (h *Handler) importSimulation(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	sim, err := h.services.ImportSimulation(c.Request.Context(), req.Path)
	if err != nil {
		// The location is supplied by the client, so unreadable input is their error.
		if statusFor(err) == http.StatusInternalServerError {
			if h.log != nil {
				h.log.Infow("simulation_import_failed", "err", err, "path", req.Path, "user", currentUser(c))
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.respondError(c, "simulation_import_failed", err, "path", req.Path, "user", currentUser(c))
		return
	}
	c.JSON(http.StatusCreated, tenability.NewSimulation(sim))
}

// @Summary      List simulations
// @Tags         simulations
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, simulations"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulations [get]
// @Security     BearerAuth
func (h *Handler) listSimulations(c *gin.Context) {
	sims, err := h.services.ListSimulations(c.Request.Context())
	if err != nil {
		h.respondError(c, "simulation_list_failed", err)
		return
	}
	out := make([]tenability.Simulation, 0, len(sims))
	for _, s := range sims {
		out = append(out, tenability.NewSimulation(s))
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(out),
		"simulations": out,
	})
}

// @Summary      Get simulation
// @Tags         simulations
// @Produce      json
// @Param        id   path      string  true  "Simulation ID"
// @Success      200  {object}  tenability.Simulation
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/simulations/{id} [get]
// @Security     BearerAuth
func (h *Handler) getSimulation(c *gin.Context) {
	id := c.Param("id")
	sim, err := h.services.GetSimulation(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "simulation_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, tenability.NewSimulation(sim))
}

// @Summary      Delete simulation
// @Description  Removes one of the caller's imports with everything stored for it. Shared imports cannot be deleted.
// @Tags         simulations
// @Param        id   path      string  true  "Simulation ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/simulations/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteSimulation(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.DeleteSimulation(c.Request.Context(), id); err != nil {
		h.respondError(c, "simulation_delete_failed", err, "id", id, "user", currentUser(c))
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      List rooms
// @Description  Room geometry from the input file. The Outside pseudo-room is not listed.
// @Tags         simulations
// @Produce      json
// @Param        id   path      string  true  "Simulation ID"
// @Success      200  {object}  map[string]interface{}  "count, rooms"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/simulations/{id}/rooms [get]
// @Security     BearerAuth
func (h *Handler) getRooms(c *gin.Context) {
	id := c.Param("id")
	rooms, err := h.services.SimulationRooms(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "simulation_rooms_failed", err, "id", id)
		return
	}
	if rooms == nil {
		rooms = []models.RoomGeometry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(rooms),
		"rooms": rooms,
	})
}

// @Summary      List events
// @Description  Sprinkler and smoke detector activations, filtered by simulation time in seconds.
// @Tags         simulations
// @Produce      json
// @Param        id    path    string  true   "Simulation ID"
// @Param        from  query   number  false  "Start of range, s"  example(0)
// @Param        to    query   number  false  "End of range, s"  example(300)
// @Param        type  query   string  false  "Event type"  Enums(SPRINKLER,SMOKE_DETECTOR)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/simulations/{id}/events [get]
// @Security     BearerAuth
func (h *Handler) getEvents(c *gin.Context) {
	id := c.Param("id")
	f := service.LogFilter{
		SimulationID: id,
		// Normalize event type: trim spaces and uppercase to match expected values.
		Type: strings.ToUpper(strings.TrimSpace(c.Query("type"))),
	}
	var ok bool
	if f.From, ok = queryFloat(c, "from"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
		return
	}
	if f.To, ok = queryFloat(c, "to"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, "events_list_failed", err, "id", id, "type", f.Type)
		return
	}
	if events == nil {
		events = []models.SimulationEvent{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// @Summary      Room variable
// @Description  One results column of a room, e.g. HRR (kW), Visibility (m) or Upper Layer Temp (C). Names ignore case and spacing. Without var, lists the available names.
// @Tags         simulations
// @Produce      json
// @Param        id    path      string  true   "Simulation ID"
// @Param        room  path      string  true   "Room name"
// @Param        var   query     string  false  "Column header"  example(HRR (kW))
// @Success      200   {object}  tenability.Variable
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/simulations/{id}/rooms/{room}/series [get]
// @Security     BearerAuth
func (h *Handler) getRoomSeries(c *gin.Context) {
	id, room := c.Param("id"), c.Param("room")
	name := strings.TrimSpace(c.Query("var"))
	if name == "" {
		names, err := h.services.RoomVariableNames(c.Request.Context(), id, room)
		if err != nil {
			h.respondError(c, "room_variables_failed", err, "id", id, "room", room)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"room":      room,
			"count":     len(names),
			"variables": names,
		})
		return
	}

	v, err := h.services.RoomVariable(c.Request.Context(), id, room, name)
	if err != nil {
		h.respondError(c, "room_variable_failed", err, "id", id, "room", room, "var", name)
		return
	}
	c.JSON(http.StatusOK, tenability.NewVariable(room, v))
}

// queryFloat parses an optional numeric query parameter. ok is false for a malformed value.
func queryFloat(c *gin.Context, key string) (v *float64, ok bool) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil, false
	}
	return &f, true
}

// queryList splits a comma-separated query parameter, dropping empty items.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, s := range strings.Split(c.Query(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
