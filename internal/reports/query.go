package reports

import (
	"sort"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
)

// AvailableYears returns the distinct years of the unified collection, newest first.
func (d *Dataset) AvailableYears() []int {
	out := make([]int, len(d.years))
	copy(out, d.years)
	return out
}

// ReportsForYear filters the unified collection, or one kind's array when kind is set,
// by exact year.
func (d *Dataset) ReportsForYear(year int, kind domain.ReportKind) []domain.Report {
	return filterReports(d.Kind(kind), func(r domain.Report) bool {
		return r.Year != nil && *r.Year == year
	})
}

// ReportsForDateKey filters by exact YYYY-MM key.
func (d *Dataset) ReportsForDateKey(dateKey string, kind domain.ReportKind) []domain.Report {
	return filterReports(d.Kind(kind), func(r domain.Report) bool {
		return r.DateKey != nil && *r.DateKey == dateKey
	})
}

// ChartSeries builds the month-by-month series of one year, oldest month first. The sales
// view reads valid monthly reports and the rawMaterial view reads valid material reports;
// any other view yields an empty series. The returned slice is the caller's to keep.
func (d *Dataset) ChartSeries(year int, view domain.ChartView) []domain.ChartPoint {
	var kind domain.ReportKind
	switch view {
	case domain.ChartViewSales:
		kind = domain.KindMonthly
	case domain.ChartViewRawMaterial:
		kind = domain.KindMaterial
	default:
		return []domain.ChartPoint{}
	}

	key := chartKey{year: year, view: view}
	d.chartMu.Lock()
	defer d.chartMu.Unlock()
	series, ok := d.chartCache[key]
	if !ok {
		series = buildSeries(d.Kind(kind), year)
		d.chartCache[key] = series
	}

	out := make([]domain.ChartPoint, len(series))
	copy(out, series)
	return out
}

func buildSeries(reports []domain.Report, year int) []domain.ChartPoint {
	points := filterReports(reports, func(r domain.Report) bool {
		return r.IsValid && r.MonthNumber != nil && r.YearValue() == year
	})
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].MonthValue() < points[j].MonthValue()
	})

	series := make([]domain.ChartPoint, 0, len(points))
	for _, r := range points {
		series = append(series, domain.ChartPoint{
			MonthLabel: MonthAbbrev(r.MonthValue()),
			Primary:    r.PrimaryMetric,
			Secondary:  r.Secondary(),
			ReportID:   r.ID,
		})
	}
	return series
}

func filterReports(reports []domain.Report, keep func(domain.Report) bool) []domain.Report {
	out := make([]domain.Report, 0)
	for _, r := range reports {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
