package domain

import (
	"fmt"
	"strings"
)

// ReportKind identifies which of the three report families a record belongs to.
type ReportKind string

const (
	KindDaily    ReportKind = "daily"
	KindMonthly  ReportKind = "monthly"
	KindMaterial ReportKind = "material"
)

// ReportKinds lists the kinds in source concatenation order.
var ReportKinds = []ReportKind{KindDaily, KindMonthly, KindMaterial}

// ParseReportKind returns the kind for a label (case-insensitive).
func ParseReportKind(label string) (ReportKind, bool) {
	switch ReportKind(strings.ToLower(strings.TrimSpace(label))) {
	case KindDaily:
		return KindDaily, true
	case KindMonthly:
		return KindMonthly, true
	case KindMaterial:
		return KindMaterial, true
	}
	return "", false
}

// Report is a normalized report. The header is shared by every kind; exactly one of
// Daily, Monthly or Material is non-nil and matches Kind.
type Report struct {
	ID              string     `json:"id" db:"id"`
	Kind            ReportKind `json:"kind" db:"kind"`
	Name            string     `json:"name" db:"name"`
	Summary         string     `json:"summary,omitempty" db:"summary"`
	ReportNumber    string     `json:"report_number" db:"report_number"`
	Year            *int       `json:"year" db:"year"`
	MonthNumber     *int       `json:"month_number" db:"month_number"`
	MonthName       string     `json:"month_name" db:"month_name"`
	DateKey         *string    `json:"date_key" db:"date_key"`
	DisplayDate     string     `json:"display_date" db:"display_date"`
	PrimaryMetric   float64    `json:"primary_metric" db:"primary_metric"`
	SecondaryMetric *float64   `json:"secondary_metric" db:"secondary_metric"`
	IsValid         bool       `json:"is_valid" db:"is_valid"`
	Issues          []string   `json:"issues,omitempty" db:"-"`
	IsFavorite      bool       `json:"is_favorite" db:"-"`

	Daily    *DailyDetails    `json:"daily,omitempty" db:"-"`
	Monthly  *MonthlyDetails  `json:"monthly,omitempty" db:"-"`
	Material *MaterialDetails `json:"material,omitempty" db:"-"`
}

// DailyDetails holds the fields only a daily report carries.
type DailyDetails struct {
	Day             *int    `json:"day"`
	ISODate         *string `json:"iso_date"`
	RawDate         string  `json:"raw_date"`
	TotalSales      float64 `json:"total_sales"`
	BreadsSold      int     `json:"breads_sold"`
	TopProduct      string  `json:"top_product,omitempty"`
	CustomersServed int     `json:"customers_served"`
}

// MonthlyDetails holds the fields of a monthly sales report.
type MonthlyDetails struct {
	TotalSales float64  `json:"total_sales"`
	NetProfit  *float64 `json:"net_profit"`
}

// MaterialDetails holds the fields of a monthly raw-material report.
type MaterialDetails struct {
	TotalCost          float64  `json:"total_cost"`
	MainIngredient     string   `json:"main_ingredient,omitempty"`
	MainIngredientCost *float64 `json:"main_ingredient_cost"`
}

// ISODate returns the YYYY-MM-DD date of a daily report, nil for other kinds.
func (r Report) ISODate() *string {
	if r.Daily == nil {
		return nil
	}
	return r.Daily.ISODate
}

// Day returns the day of month of a daily report, nil for other kinds.
func (r Report) Day() *int {
	if r.Daily == nil {
		return nil
	}
	return r.Daily.Day
}

// Secondary returns the secondary metric, 0 when the source field was absent.
func (r Report) Secondary() float64 {
	if r.SecondaryMetric == nil {
		return 0
	}
	return *r.SecondaryMetric
}

// YearValue returns the year or 0 when unknown.
func (r Report) YearValue() int {
	if r.Year == nil {
		return 0
	}
	return *r.Year
}

// MonthValue returns the month number or 0 when unknown.
func (r Report) MonthValue() int {
	if r.MonthNumber == nil {
		return 0
	}
	return *r.MonthNumber
}

// DateKeyValue returns the YYYY-MM key or "" when unknown.
func (r Report) DateKeyValue() string {
	if r.DateKey == nil {
		return ""
	}
	return *r.DateKey
}

// FavoriteKey identifies a report across kinds, ids alone may repeat between kinds.
func (r Report) FavoriteKey() string {
	return FavoriteKey(r.ID, r.Kind)
}

// FavoriteKey builds the "<id>-<kind>" identifier used for favorites.
func FavoriteKey(id string, kind ReportKind) string {
	return fmt.Sprintf("%s-%s", id, kind)
}

// ReportCollections is the read-only structure handed to consumers.
type ReportCollections struct {
	Daily    []Report `json:"daily"`
	Monthly  []Report `json:"monthly"`
	Material []Report `json:"material"`
	All      []Report `json:"all"`
}
