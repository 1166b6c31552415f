package reports

import "github.com/andresuchdata/panaderia-reports/internal/domain"

// Stats summarizes the dataset for the dashboard cards. Sums run over the per-kind
// arrays, so invalid records still contribute their parsed metrics.
func (d *Dataset) Stats() domain.ReportStats {
	stats := domain.ReportStats{
		TotalReports:      len(d.all),
		ValidReports:      len(d.all),
		DuplicatesRemoved: len(d.collisions),
		ByKind: domain.KindCounts{
			Daily:    len(d.daily),
			Monthly:  len(d.monthly),
			Material: len(d.material),
		},
	}

	for _, group := range [][]domain.Report{d.daily, d.monthly, d.material} {
		for _, r := range group {
			if !r.IsValid {
				stats.InvalidReports++
			}
		}
	}

	for _, r := range d.daily {
		stats.TotalSalesAcrossAllDaily += r.PrimaryMetric
	}
	for _, r := range d.monthly {
		stats.TotalSalesAcrossAllMonthly += r.PrimaryMetric
	}
	for _, r := range d.material {
		stats.TotalCostAcrossAllMaterial += r.PrimaryMetric
	}
	stats.TotalOverallSales = stats.TotalSalesAcrossAllDaily + stats.TotalSalesAcrossAllMonthly
	stats.TotalOverallCost = stats.TotalCostAcrossAllMaterial

	return stats
}
