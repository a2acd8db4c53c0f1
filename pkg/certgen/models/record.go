// Package models defines data structures for certificate generation.
package models

// Column headers a certificate table must carry.
const (
	ColumnBatch    = "Batch Initials & Name"
	ColumnTemplate = "Template"
	ColumnTitle    = "Title"
	ColumnFullName = "Full_Name"
	ColumnDomain   = "Domain"
	ColumnFrom     = "From"
	ColumnTo       = "To"
	ColumnGpa      = "Gpa"
	ColumnEmail    = "Email"
)

// RequiredColumns lists the headers in the order they are validated.
var RequiredColumns = []string{
	ColumnBatch,
	ColumnTemplate,
	ColumnTitle,
	ColumnFullName,
	ColumnDomain,
	ColumnFrom,
	ColumnTo,
	ColumnGpa,
	ColumnEmail,
}

// PathColumns lists the headers whose values become output path segments.
var PathColumns = []string{ColumnBatch, ColumnEmail}

// Record represents one spreadsheet row, i.e. one recipient.
type Record struct {
	// Row is the sheet row index (1-based).
	Row int `json:"row"`
	// Batch is the batch folder name ("Batch Initials & Name").
	Batch string `json:"batch"`
	// Template is the template image file name inside the templates directory.
	Template string `json:"template"`
	Title    string `json:"title"`
	FullName string `json:"full_name"`
	// Domain is the course name printed in the paragraph.
	Domain string `json:"domain"`
	From   string `json:"from"`
	To     string `json:"to"`
	Gpa    string `json:"gpa"`
	Email  string `json:"email"`
}

// DisplayName returns the name as drawn on the certificate, e.g. "Dr.Jane Doe".
func (r Record) DisplayName() string {
	return r.Title + "." + r.FullName
}

// Field returns the value stored under a column header.
func (r Record) Field(column string) string {
	switch column {
	case ColumnBatch:
		return r.Batch
	case ColumnTemplate:
		return r.Template
	case ColumnTitle:
		return r.Title
	case ColumnFullName:
		return r.FullName
	case ColumnDomain:
		return r.Domain
	case ColumnFrom:
		return r.From
	case ColumnTo:
		return r.To
	case ColumnGpa:
		return r.Gpa
	case ColumnEmail:
		return r.Email
	}
	return ""
}

// SetField stores value under a column header. Unknown headers are ignored.
func (r *Record) SetField(column, value string) {
	switch column {
	case ColumnBatch:
		r.Batch = value
	case ColumnTemplate:
		r.Template = value
	case ColumnTitle:
		r.Title = value
	case ColumnFullName:
		r.FullName = value
	case ColumnDomain:
		r.Domain = value
	case ColumnFrom:
		r.From = value
	case ColumnTo:
		r.To = value
	case ColumnGpa:
		r.Gpa = value
	case ColumnEmail:
		r.Email = value
	}
}
