package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uniplan/timetable-api/internal/dto"
	"github.com/uniplan/timetable-api/internal/timetable"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
	"github.com/uniplan/timetable-api/pkg/export"
	"github.com/uniplan/timetable-api/pkg/storage"
)

type blockProvider interface {
	Blocks(ctx context.Context, scheduleID int64, query dto.TimetableQuery) (*dto.BlocksResponse, error)
	GridConfig() timetable.GridConfig
}

// ExportService renders timetable views into downloadable artifacts. Files
// land on local storage and are handed out through short-lived signed URLs;
// a cron job sweeps expired files.
type ExportService struct {
	blocks  blockProvider
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	ics     *export.ICSExporter
	store   *storage.LocalStorage
	signer  *storage.SignedURLSigner
	fileTTL time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(blocks blockProvider, store *storage.LocalStorage, signer *storage.SignedURLSigner, fileTTL time.Duration, logger *zap.Logger) *ExportService {
	if fileTTL <= 0 {
		fileTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		blocks:  blocks,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		ics:     export.NewICSExporter(),
		store:   store,
		signer:  signer,
		fileTTL: fileTTL,
		now:     time.Now,
		logger:  logger,
	}
}

// Export renders one view in the requested format, stores the artifact and
// returns a signed download URL.
func (s *ExportService) Export(ctx context.Context, scheduleID int64, query dto.TimetableQuery, format string) (*dto.ExportResponse, error) {
	format = strings.ToLower(strings.TrimSpace(format))

	payload, err := s.blocks.Blocks(ctx, scheduleID, query)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Timetable %s %s", query.View, query.Value)
	var data []byte
	var ext string
	switch format {
	case "csv":
		data, err = s.csv.Render(blocksDataset(payload.Blocks))
		ext = "csv"
	case "pdf":
		data, err = s.pdf.RenderWeekly(title, payload.Grid, payload.Blocks)
		ext = "pdf"
	case "ics":
		data, err = s.ics.Render(title, payload.Blocks, s.now())
		ext = "ics"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv, pdf or ics")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	jobID := uuid.NewString()
	filename := fmt.Sprintf("%d/%s.%s", scheduleID, jobID, ext)
	relPath, err := s.store.Save(filename, data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export url")
	}

	return &dto.ExportResponse{
		Format:    format,
		URL:       "/exports/" + token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

// DownloadFile is an open artifact handle ready for streaming.
type DownloadFile struct {
	File    *os.File
	Name    string
	ModTime time.Time
}

// OpenDownload validates a signed token and opens the referenced artifact.
func (s *ExportService) OpenDownload(token string) (*DownloadFile, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export no longer available")
	}
	modTime := s.now()
	if info, err := file.Stat(); err == nil {
		modTime = info.ModTime()
	}
	return &DownloadFile{File: file, Name: relPath, ModTime: modTime}, nil
}

// CleanupExpired deletes artifacts past their TTL. Wired to the cron
// scheduler at startup.
func (s *ExportService) CleanupExpired() {
	deleted, err := s.store.CleanupOlderThan(s.fileTTL)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("removed expired exports", zap.Int("count", len(deleted)))
	}
}

// blocksDataset flattens merged blocks into the tabular shape shared by the
// CSV and simple-PDF renderers.
func blocksDataset(blocks []timetable.Block) export.Dataset {
	headers := []string{"Day", "Time", "Course", "Title", "Section", "Room", "Building", "Faculty"}
	rows := make([]map[string]string, 0, len(blocks))
	for _, block := range blocks {
		rows = append(rows, map[string]string{
			"Day":      block.Day,
			"Time":     block.TimeLabel(),
			"Course":   block.CourseCode,
			"Title":    block.CourseName,
			"Section":  block.Section,
			"Room":     block.Room,
			"Building": block.Building,
			"Faculty":  block.FacultyName,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
