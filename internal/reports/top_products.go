package reports

import (
	"sort"
	"strconv"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
)

// DefaultTopProducts is the number of products shown on the best-sellers chart.
const DefaultTopProducts = 5

// TopProducts aggregates the top product of every valid daily report in a period by
// quantity and revenue. period is an ISO date, a YYYY-MM key or a year depending on mode;
// when blank the latest period with data is used.
func (d *Dataset) TopProducts(mode domain.TopProductMode, period string, limit int) []domain.TopProduct {
	if limit <= 0 {
		limit = DefaultTopProducts
	}

	periodOf := func(r domain.Report) string {
		switch mode {
		case domain.TopProductsByDay:
			if iso := r.ISODate(); iso != nil {
				return *iso
			}
		case domain.TopProductsByMonth:
			return r.DateKeyValue()
		case domain.TopProductsByYear:
			if r.Year != nil {
				return strconv.Itoa(*r.Year)
			}
		}
		return ""
	}

	daily := FilterValid(d.daily)
	if period == "" {
		// zero-padded keys compare chronologically as strings
		for _, r := range daily {
			if p := periodOf(r); p > period {
				period = p
			}
		}
	}
	if period == "" {
		return []domain.TopProduct{}
	}

	totals := make(map[string]*domain.TopProduct)
	for _, r := range daily {
		if r.Daily == nil || r.Daily.TopProduct == "" || periodOf(r) != period {
			continue
		}
		p, ok := totals[r.Daily.TopProduct]
		if !ok {
			p = &domain.TopProduct{Name: r.Daily.TopProduct}
			totals[r.Daily.TopProduct] = p
		}
		p.Quantity += r.Daily.BreadsSold
		p.TotalSales += r.Daily.TotalSales
	}

	products := make([]domain.TopProduct, 0, len(totals))
	for _, p := range totals {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Quantity != products[j].Quantity {
			return products[i].Quantity > products[j].Quantity
		}
		return products[i].Name < products[j].Name
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return products
}
