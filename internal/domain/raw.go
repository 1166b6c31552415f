// internal/domain/raw.go
package domain

// RawDailyReport is a daily report as it appears in the bundled fixtures. Most fields may
// live either at the top level or under Details; the details block wins when both are set.
type RawDailyReport struct {
	ID              FlexValue        `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	Summary         string           `json:"summary" yaml:"summary"`
	Details         *RawDailyDetails `json:"details" yaml:"details"`
	Date            string           `json:"date" yaml:"date"`
	TotalSales      FlexValue        `json:"totalSales" yaml:"totalSales"`
	BreadsSold      FlexValue        `json:"breadsSold" yaml:"breadsSold"`
	ReportNumber    FlexValue        `json:"reportNumber" yaml:"reportNumber"`
	TopProduct      string           `json:"topProduct" yaml:"topProduct"`
	CustomersServed FlexValue        `json:"customersServed" yaml:"customersServed"`
}

// RawDailyDetails is the nested details block of a daily report.
type RawDailyDetails struct {
	Date            string    `json:"date" yaml:"date"`
	TotalSales      FlexValue `json:"totalSales" yaml:"totalSales"`
	BreadsSold      FlexValue `json:"breadsSold" yaml:"breadsSold"`
	ReportNumber    FlexValue `json:"reportNumber" yaml:"reportNumber"`
	TopProduct      string    `json:"topProduct" yaml:"topProduct"`
	CustomersServed FlexValue `json:"customersServed" yaml:"customersServed"`
}

// RawPeriodReport covers both monthly sales reports and monthly raw-material reports.
type RawPeriodReport struct {
	ID                      FlexValue          `json:"id" yaml:"id"`
	Name                    string             `json:"name" yaml:"name"`
	Summary                 string             `json:"summary" yaml:"summary"`
	Month                   string             `json:"month" yaml:"month"`
	MonthNumber             FlexValue          `json:"monthNumber" yaml:"monthNumber"`
	Year                    FlexValue          `json:"year" yaml:"year"`
	ReportNumber            FlexValue          `json:"reportNumber" yaml:"reportNumber"`
	TotalSalesForMonth      FlexValue          `json:"totalSalesForMonth" yaml:"totalSalesForMonth"`
	NetProfitForMonth       FlexValue          `json:"netProfitForMonth" yaml:"netProfitForMonth"`
	TotalCostOfRawMaterials FlexValue          `json:"totalCostOfRawMaterials" yaml:"totalCostOfRawMaterials"`
	CostOfMainIngredient    *RawIngredientCost `json:"costOfMainIngredient" yaml:"costOfMainIngredient"`
	Details                 *RawPeriodDetails  `json:"details" yaml:"details"`
}

// RawIngredientCost is the main-ingredient block of a raw-material report.
type RawIngredientCost struct {
	Name string    `json:"name" yaml:"name"`
	Cost FlexValue `json:"cost" yaml:"cost"`
}

// RawPeriodDetails carries the optional report number of a period report.
type RawPeriodDetails struct {
	ReportNumber FlexValue `json:"reportNumber" yaml:"reportNumber"`
}

// RawSet is the immutable input of the normalization pipeline.
type RawSet struct {
	Daily    []RawDailyReport
	Monthly  []RawPeriodReport
	Material []RawPeriodReport
}

// Len returns the total number of raw records.
func (s RawSet) Len() int {
	return len(s.Daily) + len(s.Monthly) + len(s.Material)
}

// Merge appends the records of other to a copy of s.
func (s RawSet) Merge(other RawSet) RawSet {
	return RawSet{
		Daily:    append(append([]RawDailyReport(nil), s.Daily...), other.Daily...),
		Monthly:  append(append([]RawPeriodReport(nil), s.Monthly...), other.Monthly...),
		Material: append(append([]RawPeriodReport(nil), s.Material...), other.Material...),
	}
}
