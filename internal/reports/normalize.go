package reports

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
)

const unavailable = "N/A"

// Normalizer turns raw fixture records into normalized reports. It never fails: fields that
// cannot be parsed degrade to nil or 0 and are listed in Report.Issues.
type Normalizer struct {
	ids IDStrategy
}

// NewNormalizer creates a Normalizer using the given id strategy.
func NewNormalizer(ids IDStrategy) *Normalizer {
	if ids == "" {
		ids = IDStrategyDeterministic
	}
	return &Normalizer{ids: ids}
}

// NormalizeDaily normalizes one daily report. ordinal is its position in the daily source.
func (n *Normalizer) NormalizeDaily(raw domain.RawDailyReport, ordinal int) domain.Report {
	var details domain.RawDailyDetails
	if raw.Details != nil {
		details = *raw.Details
	}

	rawDate := firstNonBlank(details.Date, raw.Date)
	report := domain.Report{
		Kind:        domain.KindDaily,
		Summary:     raw.Summary,
		DisplayDate: rawDate,
	}
	daily := &domain.DailyDetails{
		RawDate:    rawDate,
		TopProduct: firstNonBlank(details.TopProduct, raw.TopProduct),
	}

	if date, ok := ParseReportDate(rawDate); ok {
		year, month, day := date.Year, date.Month, date.Day
		iso := date.ISO()
		key := date.DateKey()

		report.Year = &year
		report.MonthNumber = &month
		report.DateKey = &key
		report.MonthName = MonthName(month)
		report.DisplayDate = iso
		daily.Day = &day
		daily.ISODate = &iso
	} else if strings.TrimSpace(rawDate) == "" {
		report.Issues = append(report.Issues, "missing date")
	} else {
		report.Issues = append(report.Issues, fmt.Sprintf("unparseable date %q", rawDate))
	}

	salesField := firstSet(details.TotalSales, raw.TotalSales)
	sales, ok := salesField.Float()
	if !ok && !salesField.IsEmpty() {
		report.Issues = append(report.Issues, fmt.Sprintf("non-numeric totalSales %q", salesField.String()))
	}
	breadsField := firstSet(details.BreadsSold, raw.BreadsSold)
	breads, ok := breadsField.Int()
	if !ok && !breadsField.IsEmpty() {
		report.Issues = append(report.Issues, fmt.Sprintf("non-integer breadsSold %q", breadsField.String()))
	}
	customers, _ := firstSet(details.CustomersServed, raw.CustomersServed).Int()

	daily.TotalSales = sales
	daily.BreadsSold = breads
	daily.CustomersServed = customers

	report.ReportNumber = firstSet(details.ReportNumber, raw.ReportNumber).String()
	if report.ReportNumber == "" {
		report.ReportNumber = unavailable
	}
	report.Name = strings.TrimSpace(raw.Name)
	if report.Name == "" {
		report.Name = "Reporte Diario #" + report.ReportNumber
	}

	secondary := float64(breads)
	report.PrimaryMetric = sales
	report.SecondaryMetric = &secondary
	report.Daily = daily
	report.IsValid = daily.ISODate != nil && report.Year != nil && report.MonthNumber != nil

	report.ID = n.resolveID(raw.ID, raw.Name, report.DateKeyValue(), domain.KindDaily, ordinal)
	return report
}

// NormalizePeriod normalizes a monthly or material report. Any other kind yields an
// invalid report with zero metrics.
func (n *Normalizer) NormalizePeriod(raw domain.RawPeriodReport, kind domain.ReportKind, ordinal int) domain.Report {
	report := domain.Report{
		Kind:        kind,
		Summary:     raw.Summary,
		DisplayDate: unavailable,
	}

	month, ok := raw.MonthNumber.Int()
	if ok && month >= 1 && month <= 12 {
		report.MonthNumber = &month
	} else if !raw.MonthNumber.IsEmpty() {
		report.Issues = append(report.Issues, fmt.Sprintf("invalid monthNumber %q", raw.MonthNumber.String()))
	} else {
		report.Issues = append(report.Issues, "missing monthNumber")
	}

	year, ok := raw.Year.Int()
	switch {
	case ok && ValidYear(year):
		report.Year = &year
	case ok:
		report.Issues = append(report.Issues, fmt.Sprintf("year %d out of range %d-%d", year, MinYear, MaxYear))
	case !raw.Year.IsEmpty():
		report.Issues = append(report.Issues, fmt.Sprintf("invalid year %q", raw.Year.String()))
	default:
		report.Issues = append(report.Issues, "missing year")
	}

	switch {
	case strings.TrimSpace(raw.Month) != "":
		report.MonthName = Capitalize(raw.Month)
	case report.MonthNumber != nil && report.Year != nil:
		report.MonthName = MonthName(*report.MonthNumber)
	}

	if report.MonthNumber != nil && report.Year != nil {
		key := FormatDateKey(*report.Year, *report.MonthNumber)
		report.DateKey = &key
		report.DisplayDate = key + "-01"
	}

	switch kind {
	case domain.KindMonthly:
		sales := floatOrZero(raw.TotalSalesForMonth)
		profit := floatOrNil(raw.NetProfitForMonth)
		report.PrimaryMetric = sales
		report.SecondaryMetric = profit
		report.Monthly = &domain.MonthlyDetails{TotalSales: sales, NetProfit: profit}
	case domain.KindMaterial:
		cost := floatOrZero(raw.TotalCostOfRawMaterials)
		var ingredient string
		var ingredientCost *float64
		if raw.CostOfMainIngredient != nil {
			ingredient = strings.TrimSpace(raw.CostOfMainIngredient.Name)
			ingredientCost = floatOrNil(raw.CostOfMainIngredient.Cost)
		}
		report.PrimaryMetric = cost
		report.SecondaryMetric = ingredientCost
		report.Material = &domain.MaterialDetails{
			TotalCost:          cost,
			MainIngredient:     ingredient,
			MainIngredientCost: ingredientCost,
		}
	default:
		report.Issues = append(report.Issues, fmt.Sprintf("unknown report kind %q", kind))
	}

	yearLabel := ""
	if report.Year != nil {
		yearLabel = fmt.Sprintf("%d", *report.Year)
	}
	periodLabel := strings.TrimSpace(report.MonthName + " " + yearLabel)

	var detailNumber domain.FlexValue
	if raw.Details != nil {
		detailNumber = raw.Details.ReportNumber
	}
	report.ReportNumber = firstSet(detailNumber, raw.ReportNumber).String()
	if report.ReportNumber == "" {
		report.ReportNumber = periodLabel
	}

	report.Name = strings.TrimSpace(raw.Name)
	if report.Name == "" {
		label := "Mensual"
		if kind == domain.KindMaterial {
			label = "Materia Prima"
		}
		report.Name = strings.TrimSpace("Reporte " + label + " " + periodLabel)
	}

	known := kind == domain.KindMonthly || kind == domain.KindMaterial
	report.IsValid = known && report.MonthNumber != nil && report.Year != nil && report.DateKey != nil

	report.ID = n.resolveID(raw.ID, raw.Name, report.DateKeyValue(), kind, ordinal)
	return report
}

func (n *Normalizer) resolveID(raw domain.FlexValue, name, dateKey string, kind domain.ReportKind, ordinal int) string {
	if !raw.IsEmpty() {
		if id := CanonicalID(raw.String()); id != "" {
			return id
		}
	}
	return SynthesizeID(n.ids, name, dateKey, kind, ordinal)
}

// floatOrZero parses a primary metric; missing or malformed values count as 0.
func floatOrZero(v domain.FlexValue) float64 {
	f, _ := v.Float()
	return f
}

// floatOrNil parses a secondary metric. An absent field stays nil, a present but
// malformed one degrades to 0.
func floatOrNil(v domain.FlexValue) *float64 {
	if !v.IsSet() {
		return nil
	}
	f, _ := v.Float()
	return &f
}

func firstSet(values ...domain.FlexValue) domain.FlexValue {
	for _, v := range values {
		if !v.IsEmpty() {
			return v
		}
	}
	return domain.FlexValue{}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
