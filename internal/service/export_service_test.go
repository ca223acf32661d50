package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/uniplan/timetable-api/internal/dto"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
	"github.com/uniplan/timetable-api/pkg/storage"
)

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	store := &allocationStoreStub{allocations: scheduleFixture()}
	timetableSvc := newTimetableService(store, nil)

	fileStore, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)

	return NewExportService(timetableSvc, fileStore, signer, time.Hour, nil)
}

func TestExportServiceCSVRoundTrip(t *testing.T) {
	svc := newExportServiceForTest(t)
	query := dto.TimetableQuery{View: "room", Value: "R203"}

	resp, err := svc.Export(context.Background(), 1, query, "csv")
	require.NoError(t, err)
	require.Equal(t, "csv", resp.Format)
	require.True(t, strings.HasPrefix(resp.URL, "/exports/"))

	token := strings.TrimPrefix(resp.URL, "/exports/")
	download, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer download.File.Close()

	content, err := io.ReadAll(download.File)
	require.NoError(t, err)
	text := string(content)
	require.Contains(t, text, "Day,Time,Course")
	require.Contains(t, text, "CS101")
	require.Contains(t, text, "Monday")
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportServiceForTest(t)

	resp, err := svc.Export(context.Background(), 1, dto.TimetableQuery{View: "faculty", Value: "Dr. Cruz"}, "pdf")
	require.NoError(t, err)

	token := strings.TrimPrefix(resp.URL, "/exports/")
	download, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer download.File.Close()

	header := make([]byte, 5)
	_, err = io.ReadFull(download.File, header)
	require.NoError(t, err)
	require.Equal(t, "%PDF-", string(header))
}

func TestExportServiceICS(t *testing.T) {
	svc := newExportServiceForTest(t)

	resp, err := svc.Export(context.Background(), 1, dto.TimetableQuery{View: "section", Value: "A"}, "ics")
	require.NoError(t, err)

	token := strings.TrimPrefix(resp.URL, "/exports/")
	download, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer download.File.Close()

	content, err := io.ReadAll(download.File)
	require.NoError(t, err)
	text := string(content)
	require.Contains(t, text, "BEGIN:VCALENDAR")
	require.Contains(t, text, "FREQ=WEEKLY;BYDAY=MO")
	require.Contains(t, text, "SUMMARY:CS101 A")
}

func TestExportServiceUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.Export(context.Background(), 1, dto.TimetableQuery{View: "room", Value: "R203"}, "xlsx")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRejectsTamperedToken(t *testing.T) {
	svc := newExportServiceForTest(t)

	resp, err := svc.Export(context.Background(), 1, dto.TimetableQuery{View: "room", Value: "R203"}, "csv")
	require.NoError(t, err)

	token := strings.TrimPrefix(resp.URL, "/exports/") + "x"
	_, err = svc.OpenDownload(token)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
