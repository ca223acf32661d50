package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/timetable-api/internal/dto"
	"github.com/uniplan/timetable-api/internal/middleware"
	"github.com/uniplan/timetable-api/internal/models"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
)

type requestServiceMock struct {
	submitResp *dto.CreateRescheduleResponse
	listResp   []models.RescheduleRequest
	getResp    *models.RescheduleRequest
	decided    *models.RescheduleRequest
	err        error
	lastActor  *models.JWTClaims
}

func (m *requestServiceMock) Submit(ctx context.Context, req dto.CreateRescheduleRequest, actor *models.JWTClaims) (*dto.CreateRescheduleResponse, error) {
	m.lastActor = actor
	if m.err != nil {
		return nil, m.err
	}
	return m.submitResp, nil
}

func (m *requestServiceMock) List(ctx context.Context, query dto.RequestQuery, actor *models.JWTClaims) ([]models.RescheduleRequest, int, error) {
	m.lastActor = actor
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.listResp, len(m.listResp), nil
}

func (m *requestServiceMock) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.RescheduleRequest, error) {
	m.lastActor = actor
	if m.err != nil {
		return nil, m.err
	}
	return m.getResp, nil
}

func (m *requestServiceMock) Approve(ctx context.Context, id string, req dto.DecideRequest, actor *models.JWTClaims) (*models.RescheduleRequest, error) {
	m.lastActor = actor
	if m.err != nil {
		return nil, m.err
	}
	return m.decided, nil
}

func (m *requestServiceMock) Reject(ctx context.Context, id string, req dto.DecideRequest, actor *models.JWTClaims) (*models.RescheduleRequest, error) {
	m.lastActor = actor
	if m.err != nil {
		return nil, m.err
	}
	return m.decided, nil
}

func newRequestContext(t *testing.T, method, target string, body interface{}, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, w
}

func TestRequestHandlerCreate(t *testing.T) {
	mock := &requestServiceMock{submitResp: &dto.CreateRescheduleResponse{
		Request: models.RescheduleRequest{ID: "req-1", Status: models.RequestStatusPending},
	}}
	h := NewRequestHandler(mock)

	payload := dto.CreateRescheduleRequest{
		AllocationID: 7,
		ProposedDay:  "TTH",
		ProposedTime: "3:00 PM - 4:30 PM",
		ProposedRoom: "R205",
		Reason:       "projector broken",
	}
	claims := &models.JWTClaims{UserID: "user-1", Role: models.RoleFaculty}
	c, w := newRequestContext(t, http.MethodPost, "/requests", payload, claims)

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "user-1", mock.lastActor.UserID)
}

func TestRequestHandlerCreateInvalidBody(t *testing.T) {
	h := NewRequestHandler(&requestServiceMock{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/requests", bytes.NewReader([]byte(`not json`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandlerListBadScheduleID(t *testing.T) {
	h := NewRequestHandler(&requestServiceMock{})

	c, w := newRequestContext(t, http.MethodGet, "/requests?scheduleId=abc", nil, nil)
	h.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandlerApproveConflict(t *testing.T) {
	mock := &requestServiceMock{err: appErrors.WithDetails(
		appErrors.Clone(appErrors.ErrConflict, "proposed placement conflicts with the current timetable"),
		dto.ConflictReport{},
	)}
	h := NewRequestHandler(mock)

	claims := &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
	c, w := newRequestContext(t, http.MethodPost, "/requests/req-1/approve", dto.DecideRequest{}, claims)
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}

	h.Approve(c)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "conflicts")
}

func TestRequestHandlerRejectWithoutBody(t *testing.T) {
	mock := &requestServiceMock{decided: &models.RescheduleRequest{ID: "req-1", Status: models.RequestStatusRejected}}
	h := NewRequestHandler(mock)

	claims := &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
	c, w := newRequestContext(t, http.MethodPost, "/requests/req-1/reject", nil, claims)
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}

	h.Reject(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "REJECTED")
}
