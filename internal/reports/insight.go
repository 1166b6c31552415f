package reports

import (
	"math"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
)

// Insight compares a report of the unified collection with the average of its period:
// the month for daily reports, the year for monthly and material reports.
func (d *Dataset) Insight(id string) (domain.ReportInsight, bool) {
	r, ok := d.Find(id)
	if !ok {
		return domain.ReportInsight{}, false
	}

	insight := domain.ReportInsight{
		ReportID:     r.ID,
		Kind:         r.Kind,
		Year:         r.Year,
		MonthName:    r.MonthName,
		CurrentValue: r.PrimaryMetric,
	}

	switch r.Kind {
	case domain.KindDaily:
		peers := filterReports(d.daily, func(p domain.Report) bool {
			return p.YearValue() == r.YearValue() && p.MonthValue() == r.MonthValue()
		})
		insight.Average = averagePrimary(peers)
		insight.AverageScope = "month"
		if r.Daily != nil {
			breads := r.Daily.BreadsSold
			customers := r.Daily.CustomersServed
			insight.BreadsSold = &breads
			insight.CustomersServed = &customers
			insight.TopProduct = r.Daily.TopProduct
		}
		if insight.TopProduct == "" {
			insight.TopProduct = unavailable
		}
	case domain.KindMonthly:
		insight.Average = averagePrimary(d.ReportsForYear(r.YearValue(), domain.KindMonthly))
		insight.AverageScope = "year"
		profit := r.Secondary()
		margin := percentOf(profit, r.PrimaryMetric)
		insight.NetProfit = &profit
		insight.ProfitMargin = &margin
	case domain.KindMaterial:
		insight.Average = averagePrimary(d.ReportsForYear(r.YearValue(), domain.KindMaterial))
		insight.AverageScope = "year"
		share := percentOf(r.Secondary(), r.PrimaryMetric)
		insight.MainIngredientPct = &share
	}

	if insight.Average > 0 {
		insight.PercentageVsAvg = round1((r.PrimaryMetric - insight.Average) / insight.Average * 100)
	}
	return insight, true
}

func averagePrimary(reports []domain.Report) float64 {
	if len(reports) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reports {
		sum += r.PrimaryMetric
	}
	return sum / float64(len(reports))
}

func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(part / whole * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
