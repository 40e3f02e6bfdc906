// export.go
package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Export formats accepted by the admin export endpoints.
const (
	FormatCSV         = "csv"
	FormatSpreadsheet = "excel" // HTML table that Excel/LibreOffice open natively
)

// Timestamps are stored in UTC and shifted to the office clock for display.
// Kuala Lumpur has no daylight saving, so a fixed offset is correct.
const exportTimeOffset = 8 * time.Hour

// utf8BOM is prefixed to CSV output so spreadsheet tools detect the encoding
// instead of guessing a legacy codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var applicantColumns = []string{"ID", "Full Name", "Email", "Position", "Availability", "Filename", "File Path", "Submitted At"}
var proposalColumns = []string{"ID", "Company Name", "Email", "Service", "Proposal Details", "Submitted At"}

// formatExportTime renders a stored UTC timestamp on the office clock.
func formatExportTime(t time.Time) string {
	return t.UTC().Add(exportTimeOffset).Format("2006-01-02 15:04:05")
}

// exportFilename stamps the download name with the generation time so
// repeated exports never shadow each other on the admin's disk.
func exportFilename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().UTC().Add(exportTimeOffset).Format("20060102_150405"), ext)
}

// ApplicantRows flattens applicants into export cells. Callers pass the rows
// already ordered newest first.
func ApplicantRows(applicants []Applicant) [][]string {
	rows := make([][]string, 0, len(applicants))
	for _, a := range applicants {
		rows = append(rows, []string{
			fmt.Sprintf("%d", a.ID),
			a.FullName,
			a.Email,
			a.Position,
			a.Availability,
			a.Filename,
			a.FilePath,
			formatExportTime(a.CreatedAt),
		})
	}
	return rows
}

// ProposalRows flattens proposals into export cells.
func ProposalRows(proposals []Proposal) [][]string {
	rows := make([][]string, 0, len(proposals))
	for _, p := range proposals {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			p.CompanyName,
			p.ClientEmail,
			p.Service,
			p.ProposalDetails,
			formatExportTime(p.CreatedAt),
		})
	}
	return rows
}

// ExportCSV renders header + rows as UTF-8 CSV with a BOM prefix. Every cell
// is quoted, not just the ones that need it: some spreadsheet importers
// mangle unquoted cells that merely look numeric. The whole document is built
// in memory, so a caller never streams half a file.
func ExportCSV(header []string, rows [][]string) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	writeCSVLine(&buf, header)
	for _, row := range rows {
		writeCSVLine(&buf, row)
	}
	return buf.Bytes()
}

func writeCSVLine(buf *bytes.Buffer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

// spreadsheetEscaper covers the characters that would let user text inject
// markup into the generated document.
var spreadsheetEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// ExportSpreadsheetHTML renders rows as an HTML table Excel opens directly.
// Each cell carries mso-number-format:'\@' so the opening application keeps
// phone numbers, IDs and dates as text instead of reformatting them.
func ExportSpreadsheetHTML(title string, header []string, rows [][]string) []byte {
	var buf bytes.Buffer
	buf.WriteString("<html><head><meta charset=\"utf-8\"></head><body>\n")
	fmt.Fprintf(&buf, "<table border=\"1\"><caption>%s</caption>\n", spreadsheetEscaper.Replace(title))
	for range header {
		buf.WriteString("<col width=\"150\">\n")
	}
	buf.WriteString("<tr>")
	for _, h := range header {
		fmt.Fprintf(&buf, "<th>%s</th>", spreadsheetEscaper.Replace(h))
	}
	buf.WriteString("</tr>\n")
	for _, row := range rows {
		buf.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&buf, `<td style="mso-number-format:'\@'">%s</td>`, spreadsheetEscaper.Replace(cell))
		}
		buf.WriteString("</tr>\n")
	}
	buf.WriteString("</table></body></html>\n")
	return buf.Bytes()
}

// ListApplicants returns all applicants newest first.
func (app *App) ListApplicants() ([]Applicant, error) {
	if app.DB == nil {
		return nil, &PersistError{Err: fmt.Errorf("no database configured")}
	}
	var applicants []Applicant
	if err := app.DB.Order("created_at DESC").Find(&applicants).Error; err != nil {
		return nil, &PersistError{Err: err, SchemaMissing: !app.DB.Migrator().HasTable(&Applicant{})}
	}
	return applicants, nil
}

// ListProposals returns all proposals newest first.
func (app *App) ListProposals() ([]Proposal, error) {
	if app.DB == nil {
		return nil, &PersistError{Err: fmt.Errorf("no database configured")}
	}
	var proposals []Proposal
	if err := app.DB.Order("created_at DESC").Find(&proposals).Error; err != nil {
		return nil, &PersistError{Err: err, SchemaMissing: !app.DB.Migrator().HasTable(&Proposal{})}
	}
	return proposals, nil
}
