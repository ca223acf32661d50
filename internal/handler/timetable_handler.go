package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/timetable-api/internal/dto"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
	"github.com/uniplan/timetable-api/pkg/response"
)

type timetableService interface {
	ComputeGrid(ctx context.Context, scheduleID int64, query dto.TimetableQuery) (*dto.TimetableResponse, error)
	Diagnostics(ctx context.Context, scheduleID int64) (*dto.DiagnosticsResponse, error)
	Blocks(ctx context.Context, scheduleID int64, query dto.TimetableQuery) (*dto.BlocksResponse, error)
}

// TimetableHandler exposes computed timetable views.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(service timetableService) *TimetableHandler {
	return &TimetableHandler{service: service}
}

// Grid godoc
// @Summary Weekly grid for one room, faculty member or section
// @Tags Timetable
// @Produce json
// @Param id path int true "Schedule ID"
// @Param view query string true "room | faculty | section"
// @Param value query string true "Subject value, e.g. room code"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/timetable [get]
func (h *TimetableHandler) Grid(c *gin.Context) {
	scheduleID, ok := schedulePathID(c)
	if !ok {
		return
	}
	query, ok := timetableQuery(c)
	if !ok {
		return
	}
	grid, err := h.service.ComputeGrid(c.Request.Context(), scheduleID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Diagnostics godoc
// @Summary Allocation rows excluded from computation
// @Tags Timetable
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/timetable/diagnostics [get]
func (h *TimetableHandler) Diagnostics(c *gin.Context) {
	scheduleID, ok := schedulePathID(c)
	if !ok {
		return
	}
	diags, err := h.service.Diagnostics(c.Request.Context(), scheduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, diags, nil)
}

// Blocks godoc
// @Summary Merged export-ready blocks for one view
// @Tags Timetable
// @Produce json
// @Param id path int true "Schedule ID"
// @Param view query string true "room | faculty | section"
// @Param value query string true "Subject value"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/blocks [get]
func (h *TimetableHandler) Blocks(c *gin.Context) {
	scheduleID, ok := schedulePathID(c)
	if !ok {
		return
	}
	query, ok := timetableQuery(c)
	if !ok {
		return
	}
	blocks, err := h.service.Blocks(c.Request.Context(), scheduleID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks, nil)
}

func schedulePathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "schedule id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func timetableQuery(c *gin.Context) (dto.TimetableQuery, bool) {
	query := dto.TimetableQuery{
		View:  strings.ToLower(strings.TrimSpace(c.Query("view"))),
		Value: strings.TrimSpace(c.Query("value")),
	}
	if query.View == "" || query.Value == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "view and value query params are required"))
		return dto.TimetableQuery{}, false
	}
	return query, true
}
