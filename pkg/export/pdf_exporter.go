package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/uniplan/timetable-api/internal/timetable"
)

// PDFExporter renders timetable data into printable PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a simple tabular PDF from a generic dataset.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderWeekly draws merged timetable blocks as a landscape weekly grid,
// one column per configured day. Block coordinates arrive as minute-of-day
// and weekday; all pixel geometry is decided here.
func (e *PDFExporter) RenderWeekly(title string, grid timetable.GridConfig, blocks []timetable.Block) ([]byte, error) {
	if grid.SlotMinutes <= 0 || grid.DayEndMinute <= grid.DayStartMinute {
		return nil, fmt.Errorf("invalid grid geometry")
	}
	if len(grid.Days) == 0 {
		return nil, fmt.Errorf("grid day set is empty")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}

	const timeColWidth = 24.0
	const headerHeight = 8.0
	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	originY := pdf.GetY()
	dayColWidth := (pageWidth - left - right - timeColWidth) / float64(len(grid.Days))
	bodyHeight := pageHeight - originY - bottom - headerHeight

	totalMinutes := float64(grid.DayEndMinute - grid.DayStartMinute)
	minuteHeight := bodyHeight / totalMinutes

	// Header row: blank time corner plus one cell per day.
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(timeColWidth, headerHeight, "", "1", 0, "C", false, 0, "")
	for _, day := range grid.Days {
		pdf.CellFormat(dayColWidth, headerHeight, day, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	// Time gutter and empty slot rows.
	gridTop := pdf.GetY()
	pdf.SetFont("Arial", "", 7)
	for _, slotTime := range grid.SlotTimes() {
		y := gridTop + float64(slotTime-grid.DayStartMinute)*minuteHeight
		slotHeight := float64(grid.SlotMinutes) * minuteHeight
		pdf.SetXY(left, y)
		pdf.CellFormat(timeColWidth, slotHeight, timetable.FormatClock(slotTime), "1", 0, "C", false, 0, "")
		for range grid.Days {
			pdf.CellFormat(dayColWidth, slotHeight, "", "1", 0, "", false, 0, "")
		}
	}

	dayIndex := make(map[string]int, len(grid.Days))
	for i, day := range grid.Days {
		dayIndex[day] = i
	}

	// Blocks drawn on top of the empty grid.
	pdf.SetFillColor(225, 235, 245)
	for _, block := range blocks {
		col, ok := dayIndex[block.Day]
		if !ok {
			continue
		}
		start := block.Start
		end := block.End
		if end <= grid.DayStartMinute || start >= grid.DayEndMinute {
			continue
		}
		if start < grid.DayStartMinute {
			start = grid.DayStartMinute
		}
		if end > grid.DayEndMinute {
			end = grid.DayEndMinute
		}

		x := left + timeColWidth + float64(col)*dayColWidth
		y := gridTop + float64(start-grid.DayStartMinute)*minuteHeight
		h := float64(end-start) * minuteHeight
		pdf.Rect(x, y, dayColWidth, h, "DF")

		label := block.CourseCode
		if block.Section != "" {
			label += " " + block.Section
		}
		pdf.SetFont("Arial", "B", 7)
		pdf.SetXY(x, y+0.5)
		pdf.CellFormat(dayColWidth, 3.5, label, "", 2, "C", false, 0, "")
		pdf.SetFont("Arial", "", 6)
		pdf.CellFormat(dayColWidth, 3, block.TimeLabel(), "", 2, "C", false, 0, "")
		detail := block.Room
		if block.FacultyName != "" {
			detail += " / " + block.FacultyName
		}
		pdf.CellFormat(dayColWidth, 3, detail, "", 2, "C", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render weekly pdf: %w", err)
	}
	return buf.Bytes(), nil
}
