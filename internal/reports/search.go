package reports

import (
	"strings"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
)

// Search matches term case-insensitively against name, summary and report number of the
// unified collection. A blank term matches everything.
func (d *Dataset) Search(term string, kind domain.ReportKind) []domain.Report {
	needle := strings.ToLower(strings.TrimSpace(term))
	return filterReports(d.all, func(r domain.Report) bool {
		if kind != "" && r.Kind != kind {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(r.Summary), needle) ||
			strings.Contains(strings.ToLower(r.ReportNumber), needle)
	})
}
