package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/timetable-api/internal/dto"
	"github.com/uniplan/timetable-api/internal/timetable"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
)

type timetableServiceMock struct {
	gridResp   *dto.TimetableResponse
	blocksResp *dto.BlocksResponse
	diagResp   *dto.DiagnosticsResponse
	err        error
	lastQuery  dto.TimetableQuery
}

func (m *timetableServiceMock) ComputeGrid(ctx context.Context, scheduleID int64, query dto.TimetableQuery) (*dto.TimetableResponse, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.gridResp, nil
}

func (m *timetableServiceMock) Diagnostics(ctx context.Context, scheduleID int64) (*dto.DiagnosticsResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.diagResp, nil
}

func (m *timetableServiceMock) Blocks(ctx context.Context, scheduleID int64, query dto.TimetableQuery) (*dto.BlocksResponse, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.blocksResp, nil
}

func newGridContext(t *testing.T, target string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = params
	return c, w
}

func TestTimetableHandlerGrid(t *testing.T) {
	mock := &timetableServiceMock{gridResp: &dto.TimetableResponse{ScheduleID: 1, View: "room", Value: "R203"}}
	h := NewTimetableHandler(mock)

	c, w := newGridContext(t, "/schedules/1/timetable?view=Room&value=R203", gin.Params{{Key: "id", Value: "1"}})
	h.Grid(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "room", mock.lastQuery.View)
	require.Equal(t, "R203", mock.lastQuery.Value)
}

func TestTimetableHandlerGridBadScheduleID(t *testing.T) {
	h := NewTimetableHandler(&timetableServiceMock{})

	c, w := newGridContext(t, "/schedules/zero/timetable?view=room&value=R203", gin.Params{{Key: "id", Value: "zero"}})
	h.Grid(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerGridMissingQuery(t *testing.T) {
	h := NewTimetableHandler(&timetableServiceMock{})

	c, w := newGridContext(t, "/schedules/1/timetable?view=room", gin.Params{{Key: "id", Value: "1"}})
	h.Grid(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerGridUpstreamUnavailable(t *testing.T) {
	mock := &timetableServiceMock{err: appErrors.ErrUnavailable}
	h := NewTimetableHandler(mock)

	c, w := newGridContext(t, "/schedules/1/timetable?view=room&value=R203", gin.Params{{Key: "id", Value: "1"}})
	h.Grid(c)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTimetableHandlerBlocks(t *testing.T) {
	mock := &timetableServiceMock{blocksResp: &dto.BlocksResponse{Blocks: []timetable.Block{}}}
	h := NewTimetableHandler(mock)

	c, w := newGridContext(t, "/schedules/1/blocks?view=section&value=A", gin.Params{{Key: "id", Value: "1"}})
	h.Blocks(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "section", mock.lastQuery.View)
}

func TestTimetableHandlerDiagnostics(t *testing.T) {
	mock := &timetableServiceMock{diagResp: &dto.DiagnosticsResponse{ScheduleID: 1}}
	h := NewTimetableHandler(mock)

	c, w := newGridContext(t, "/schedules/1/timetable/diagnostics", gin.Params{{Key: "id", Value: "1"}})
	h.Diagnostics(c)

	require.Equal(t, http.StatusOK, w.Code)
}
