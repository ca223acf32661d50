package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/timetable-api/internal/dto"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
	"github.com/uniplan/timetable-api/pkg/response"
)

type occupancyService interface {
	RoomOccupancy(ctx context.Context, scheduleID int64, room string) (*dto.OccupancyResponse, error)
	FacultyPresence(name, lastSeenRaw string) (*dto.PresenceResponse, error)
}

// OccupancyHandler exposes real-time occupancy and presence answers.
type OccupancyHandler struct {
	service occupancyService
}

// NewOccupancyHandler constructs the handler.
func NewOccupancyHandler(service occupancyService) *OccupancyHandler {
	return &OccupancyHandler{service: service}
}

// RoomOccupancy godoc
// @Summary Whether a room is in use right now
// @Tags Occupancy
// @Produce json
// @Param id path int true "Schedule ID"
// @Param room path string true "Room code"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/rooms/{room}/occupancy [get]
func (h *OccupancyHandler) RoomOccupancy(c *gin.Context) {
	scheduleID, ok := schedulePathID(c)
	if !ok {
		return
	}
	room := strings.TrimSpace(c.Param("room"))
	result, err := h.service.RoomOccupancy(c.Request.Context(), scheduleID, room)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// FacultyPresence godoc
// @Summary Presence badge for a faculty member
// @Tags Occupancy
// @Produce json
// @Param name path string true "Faculty name"
// @Param lastSeen query string true "RFC 3339 last-activity timestamp"
// @Success 200 {object} response.Envelope
// @Router /faculty/{name}/presence [get]
func (h *OccupancyHandler) FacultyPresence(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	lastSeen := strings.TrimSpace(c.Query("lastSeen"))
	if lastSeen == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "lastSeen query param is required"))
		return
	}
	result, err := h.service.FacultyPresence(name, lastSeen)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
