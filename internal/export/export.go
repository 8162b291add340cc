// Package export renders evidence records as downloadable spreadsheets.
package export

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/collab-radar/internal/model"
)

// Format identifies an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format string, defaulting to CSV when empty.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return Format(s), nil
	}
	return "", eris.Errorf("export: unsupported format %q", s)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename returns the download filename for the format.
func (f Format) Filename() string {
	return "evidence." + string(f)
}

// row is the flattened export shape: one row per evidence link.
type row struct {
	SubjectCompany    string `csv:"subject_company"`
	Counterparty      string `csv:"counterparty"`
	CollaborationType string `csv:"collaboration_type"`
	ImpactLevel       string `csv:"impact_level"`
	SourceType        string `csv:"source_type"`
	EvidenceTitle     string `csv:"evidence_title"`
	EvidenceSource    string `csv:"evidence_source"`
	EvidenceDate      string `csv:"evidence_date"`
	EvidenceURL       string `csv:"evidence_url"`
	Notes             string `csv:"notes"`
}

var headers = []string{
	"subject_company", "counterparty", "collaboration_type", "impact_level",
	"source_type", "evidence_title", "evidence_source", "evidence_date",
	"evidence_url", "notes",
}

// flatten expands each record into one row per evidence link. Records with
// no links still produce one row so no evidence is silently dropped.
func flatten(records []model.EvidenceRecord) []row {
	var rows []row
	for _, rec := range records {
		base := row{
			SubjectCompany:    rec.SubjectCompany,
			Counterparty:      rec.Counterparty,
			CollaborationType: string(rec.CollaborationType),
			ImpactLevel:       string(rec.ImpactLevel),
			SourceType:        rec.SourceType,
			Notes:             rec.Notes,
		}
		if len(rec.EvidenceLinks) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, link := range rec.EvidenceLinks {
			r := base
			r.EvidenceTitle = link.Title
			r.EvidenceSource = link.Source
			r.EvidenceDate = link.Date
			r.EvidenceURL = link.URL
			rows = append(rows, r)
		}
	}
	return rows
}

// WriteCSV writes records to w as CSV with a header row. The csv writer
// handles quoting for delimiters, quotes, and embedded newlines.
func WriteCSV(w io.Writer, records []model.EvidenceRecord) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	for _, r := range flatten(records) {
		if err := enc.Encode(r); err != nil {
			return eris.Wrap(err, "export: encode CSV row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush CSV")
}

// WriteXLSX writes records to w as a single-sheet XLSX workbook.
func WriteXLSX(w io.Writer, records []model.EvidenceRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Evidence")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}
	for _, r := range flatten(records) {
		xr := sheet.AddRow()
		for _, v := range []string{
			r.SubjectCompany, r.Counterparty, r.CollaborationType, r.ImpactLevel,
			r.SourceType, r.EvidenceTitle, r.EvidenceSource, r.EvidenceDate,
			r.EvidenceURL, r.Notes,
		} {
			xr.AddCell().SetString(v)
		}
	}
	return eris.Wrap(file.Write(w), "export: write workbook")
}

// Write renders records in the given format.
func Write(w io.Writer, format Format, records []model.EvidenceRecord) error {
	if format == FormatXLSX {
		return WriteXLSX(w, records)
	}
	return WriteCSV(w, records)
}
