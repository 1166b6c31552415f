package domain

import "time"

// ChartView selects which kind and metric pair a chart reads.
type ChartView string

const (
	ChartViewSales       ChartView = "sales"
	ChartViewRawMaterial ChartView = "rawMaterial"
)

// ChartPoint is one month of a chart series
type ChartPoint struct {
	MonthLabel string  `json:"month_label"`
	Primary    float64 `json:"primary"`
	Secondary  float64 `json:"secondary"`
	ReportID   string  `json:"report_id"`
}

// KindCounts counts reports per kind
type KindCounts struct {
	Daily    int `json:"daily"`
	Monthly  int `json:"monthly"`
	Material int `json:"material"`
}

// ReportStats backs the summary cards of the dashboard
type ReportStats struct {
	TotalReports               int        `json:"total_reports"`
	ValidReports               int        `json:"valid_reports"`
	InvalidReports             int        `json:"invalid_reports"`
	DuplicatesRemoved          int        `json:"duplicates_removed"`
	ByKind                     KindCounts `json:"by_kind"`
	TotalSalesAcrossAllDaily   float64    `json:"total_sales_across_all_daily"`
	TotalSalesAcrossAllMonthly float64    `json:"total_sales_across_all_monthly"`
	TotalCostAcrossAllMaterial float64    `json:"total_cost_across_all_material"`
	TotalOverallSales          float64    `json:"total_overall_sales"`
	TotalOverallCost           float64    `json:"total_overall_cost"`
}

// ReportInsight compares one report against its period average.
// Only the fields relevant to the report kind are filled.
type ReportInsight struct {
	ReportID          string     `json:"report_id"`
	Kind              ReportKind `json:"kind"`
	Year              *int       `json:"year"`
	MonthName         string     `json:"month_name"`
	CurrentValue      float64    `json:"current_value"`
	Average           float64    `json:"average"`
	AverageScope      string     `json:"average_scope"` // "month" or "year"
	PercentageVsAvg   float64    `json:"percentage_vs_avg"`
	BreadsSold        *int       `json:"breads_sold,omitempty"`
	CustomersServed   *int       `json:"customers_served,omitempty"`
	TopProduct        string     `json:"top_product,omitempty"`
	NetProfit         *float64   `json:"net_profit,omitempty"`
	ProfitMargin      *float64   `json:"profit_margin,omitempty"`
	MainIngredientPct *float64   `json:"main_ingredient_pct,omitempty"`
}

// TopProductMode selects the period granularity of a top-products query.
type TopProductMode string

const (
	TopProductsByDay   TopProductMode = "day"
	TopProductsByMonth TopProductMode = "month"
	TopProductsByYear  TopProductMode = "year"
)

// TopProduct is one bar of the best-selling products chart
type TopProduct struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	TotalSales float64 `json:"total_sales"`
}

// IDCollision records a report dropped because an earlier report claimed the same id.
type IDCollision struct {
	ID          string     `json:"id"`
	KeptKind    ReportKind `json:"kept_kind"`
	DroppedKind ReportKind `json:"dropped_kind"`
	DroppedName string     `json:"dropped_name"`
}

// LoadSummary describes the outcome of building the dataset from a source.
type LoadSummary struct {
	Source            string    `json:"source"`
	RawRecords        int       `json:"raw_records"`
	UnifiedReports    int       `json:"unified_reports"`
	InvalidReports    int       `json:"invalid_reports"`
	DuplicatesRemoved int       `json:"duplicates_removed"`
	Years             []int     `json:"years"`
	LoadedAt          time.Time `json:"loaded_at"`
}

// FavoriteToggle is the result of toggling a favorite.
type FavoriteToggle struct {
	Key        string `json:"key"`
	IsFavorite bool   `json:"is_favorite"`
}

// SyncResult is returned after persisting the unified collection.
type SyncResult struct {
	Load  LoadSummary `json:"load"`
	Saved int         `json:"saved"`
}
