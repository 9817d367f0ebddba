package service

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/iliyamo/teacher-slot-booking/internal/model"
)

// Report formats for download.
const (
	FormatHTML = "html"
	FormatCSV  = "csv"
)

// ReportRow is one rendered booking line.  Fields are pre-formatted for
// display; the renderer performs no further transformation.
type ReportRow struct {
	Name      string
	Class     string
	Date      string
	TimeSlots string
	Status    string
	Submitted string
}

// Report is the exportable view of a booking sequence.  Counts cover
// the exported set only, not the global store, and Rows preserve the
// input order exactly — the caller decides the ordering (normally via
// DeriveView) and export never re-sorts.
type Report struct {
	GeneratedAt time.Time
	Total       int
	Approved    int
	Pending     int
	Rejected    int
	Rows        []ReportRow
}

// reportColumns is the fixed header of the export table.
var reportColumns = []string{"Teacher Name", "Class", "Date", "Time Slots", "Status", "Submitted"}

const humanDate = "Jan 2, 2006"
const humanDateTime = "Jan 2, 2006 15:04"

// BuildReport assembles a Report from an already-ordered booking
// sequence.
func BuildReport(bookings []model.Booking, now time.Time) Report {
	rep := Report{GeneratedAt: now, Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case model.StatusApproved:
			rep.Approved++
		case model.StatusPending:
			rep.Pending++
		case model.StatusRejected:
			rep.Rejected++
		}
		rep.Rows = append(rep.Rows, ReportRow{
			Name:      b.Name,
			Class:     b.Class,
			Date:      formatHumanDate(b.Date),
			TimeSlots: strings.Join(b.Times.Labels(), ", "),
			Status:    strings.ToUpper(b.Status),
			Submitted: b.CreatedAt.Format(humanDateTime),
		})
	}
	return rep
}

// Filename names the downloaded artifact after the generation day, e.g.
// booking-report-2025-06-01.html.
func (r Report) Filename(format string) string {
	return fmt.Sprintf("booking-report-%s.%s", r.GeneratedAt.Format(model.DateLayout), format)
}

// Summary renders the count line shown in the report header.
func (r Report) Summary() string {
	return fmt.Sprintf("Total: %d | Approved: %d | Pending: %d | Rejected: %d",
		r.Total, r.Approved, r.Pending, r.Rejected)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Teacher Booking Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { font-size: 1.4em; }
.meta { color: #666; margin-bottom: 1em; }
table { border-collapse: collapse; width: 100%; }
th { background: #3b82f6; color: #fff; padding: 6px 10px; text-align: center; }
td { border: 1px solid #ddd; padding: 6px 10px; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Teacher Booking Report</h1>
<div class="meta">
<div>Generated: {{.Generated}}</div>
<div>{{.Summary}}</div>
</div>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Name}}</td><td>{{.Class}}</td><td>{{.Date}}</td><td>{{.TimeSlots}}</td><td>{{.Status}}</td><td>{{.Submitted}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// RenderHTML writes the report as a standalone HTML document.
func (r Report) RenderHTML(w io.Writer) error {
	return reportTemplate.Execute(w, struct {
		Generated string
		Summary   string
		Columns   []string
		Rows      []ReportRow
	}{
		Generated: r.GeneratedAt.Format(humanDate),
		Summary:   r.Summary(),
		Columns:   reportColumns,
		Rows:      r.Rows,
	})
}

// RenderCSV writes the report as CSV.  Header metadata occupies comment
// rows above the column header so the artifact stays a single file.
func (r Report) RenderCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	records := [][]string{
		{"Teacher Booking Report"},
		{"Generated", r.GeneratedAt.Format(humanDate)},
		{"Summary", r.Summary()},
		reportColumns,
	}
	for _, row := range r.Rows {
		records = append(records, []string{row.Name, row.Class, row.Date, row.TimeSlots, row.Status, row.Submitted})
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatHumanDate renders a yyyy-MM-dd date for display, falling back
// to the raw value when it does not parse.
func formatHumanDate(s string) string {
	if t, err := time.Parse(model.DateLayout, model.NormalizeDate(s)); err == nil {
		return t.Format(humanDate)
	}
	return s
}
