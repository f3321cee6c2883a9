package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"campusleave/internal/domain/leave"
)

// LeavePDF renders the reviewer export: one row per request, newest first
// (the caller passes them already ordered).
func LeavePDF(requests []leave.LeaveRequest) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(60, 10, "Leave Requests")
	pdf.Ln(12)

	headers := []string{"Requester", "Type", "From", "To", "Course", "Status", "Comment"}
	widths := []float64{45, 22, 40, 40, 30, 25, 65}

	pdf.SetFont("Helvetica", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, req := range requests {
		courseCode := ""
		if req.Course != nil {
			courseCode = req.Course.CourseCode
		}
		row := []string{
			req.RequesterName,
			req.Type,
			req.StartAt.Format("2006-01-02 15:04"),
			req.EndAt.Format("2006-01-02 15:04"),
			courseCode,
			req.Status,
			req.ReviewComment,
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("%d request(s)", len(requests)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
