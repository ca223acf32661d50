package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/timetable-api/internal/dto"
	"github.com/uniplan/timetable-api/internal/models"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
	"github.com/uniplan/timetable-api/pkg/response"
)

type requestService interface {
	Submit(ctx context.Context, req dto.CreateRescheduleRequest, actor *models.JWTClaims) (*dto.CreateRescheduleResponse, error)
	List(ctx context.Context, query dto.RequestQuery, actor *models.JWTClaims) ([]models.RescheduleRequest, int, error)
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.RescheduleRequest, error)
	Approve(ctx context.Context, id string, req dto.DecideRequest, actor *models.JWTClaims) (*models.RescheduleRequest, error)
	Reject(ctx context.Context, id string, req dto.DecideRequest, actor *models.JWTClaims) (*models.RescheduleRequest, error)
}

// RequestHandler exposes the reschedule-request workflow endpoints.
type RequestHandler struct {
	service requestService
}

// NewRequestHandler constructs the handler.
func NewRequestHandler(service requestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Create godoc
// @Summary Submit a reschedule request
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.CreateRescheduleRequest true "Proposal payload"
// @Success 201 {object} response.Envelope
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid reschedule payload"))
		return
	}
	result, err := h.service.Submit(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, result, nil)
}

// List godoc
// @Summary List reschedule requests
// @Tags Requests
// @Produce json
// @Param scheduleId query int false "Schedule ID"
// @Param status query string false "PENDING | APPROVED | REJECTED"
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	query := dto.RequestQuery{
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
	}
	if raw := c.Query("scheduleId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "scheduleId must be an integer"))
			return
		}
		query.ScheduleID = id
	}
	if raw := c.Query("page"); raw != "" {
		query.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.Query("limit"); raw != "" {
		query.Limit, _ = strconv.Atoi(raw)
	}

	requests, total, err := h.service.List(c.Request.Context(), query, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	pagination := &models.Pagination{
		Page:       max(query.Page, 1),
		PageSize:   len(requests),
		TotalCount: total,
	}
	response.JSON(c, http.StatusOK, requests, pagination)
}

// Get godoc
// @Summary Fetch one reschedule request
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	request, err := h.service.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// Approve godoc
// @Summary Approve a pending request and move the allocation
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.DecideRequest false "Decision note"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

// Reject godoc
// @Summary Reject a pending request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.DecideRequest false "Decision note"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

func (h *RequestHandler) decide(c *gin.Context, decideFn func(ctx context.Context, id string, req dto.DecideRequest, actor *models.JWTClaims) (*models.RescheduleRequest, error)) {
	var req dto.DecideRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid decision payload"))
			return
		}
	}
	request, err := decideFn(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}
