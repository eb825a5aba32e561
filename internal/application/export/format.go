// Package export renders weekly menus into downloadable text, CSV, JSON and
// PDF payloads.
package export

import (
	"strings"
)

// Format is an export format name
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	// FormatPDF is a placeholder: the payload is the text rendering saved
	// under a .pdf name until a real renderer is integrated.
	FormatPDF Format = "pdf"
)

// Formats lists the supported formats in menu order
var Formats = []Format{FormatText, FormatCSV, FormatJSON, FormatPDF}

// ParseFormat matches a format name exactly. Unknown names return false.
func ParseFormat(name string) (Format, bool) {
	for _, f := range Formats {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Extension returns the filename extension without the dot
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return "txt"
	default:
		return string(f)
	}
}

// ContentType returns the MIME type for downloads
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Filename builds Weekly_Menu_<week>.<ext> with dashes in the week label
// replaced by underscores.
func Filename(week string, f Format) string {
	return "Weekly_Menu_" + strings.ReplaceAll(week, "-", "_") + "." + f.Extension()
}
