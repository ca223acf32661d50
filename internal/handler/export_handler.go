package handler

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/timetable-api/internal/dto"
	"github.com/uniplan/timetable-api/internal/service"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
	"github.com/uniplan/timetable-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, scheduleID int64, query dto.TimetableQuery, format string) (*dto.ExportResponse, error)
	OpenDownload(token string) (*service.DownloadFile, error)
}

// ExportHandler renders timetable artifacts and serves signed downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Render a timetable view as csv, pdf or ics
// @Tags Exports
// @Produce json
// @Param id path int true "Schedule ID"
// @Param view query string true "room | faculty | section"
// @Param value query string true "Subject value"
// @Param format query string true "csv | pdf | ics"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	scheduleID, ok := schedulePathID(c)
	if !ok {
		return
	}
	query, ok := timetableQuery(c)
	if !ok {
		return
	}
	format := strings.TrimSpace(c.Query("format"))
	result, err := h.service.Export(c.Request.Context(), scheduleID, query, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download a rendered artifact via signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "download token is required"))
		return
	}
	download, err := h.service.OpenDownload(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close() //nolint:errcheck

	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(download.Name))
	c.Header("Content-Type", contentTypeFor(download.Name))
	http.ServeContent(c.Writer, c.Request, filepath.Base(download.Name), download.ModTime, download.File)
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	case ".ics":
		return "text/calendar"
	default:
		return "application/octet-stream"
	}
}
