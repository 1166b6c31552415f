package reports

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dateKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func build(raw domain.RawSet) *Dataset {
	return Build(raw, WithLogger(zerolog.Nop()))
}

func monthly(id string, month, year int, sales, profit float64) domain.RawPeriodReport {
	return domain.RawPeriodReport{
		ID:                 domain.Flex(id),
		MonthNumber:        domain.FlexNumber(float64(month)),
		Year:               domain.FlexNumber(float64(year)),
		TotalSalesForMonth: domain.FlexNumber(sales),
		NetProfitForMonth:  domain.FlexNumber(profit),
	}
}

func material(id string, month, year int, cost, ingredient float64) domain.RawPeriodReport {
	return domain.RawPeriodReport{
		ID:                      domain.Flex(id),
		MonthNumber:             domain.FlexNumber(float64(month)),
		Year:                    domain.FlexNumber(float64(year)),
		TotalCostOfRawMaterials: domain.FlexNumber(cost),
		CostOfMainIngredient:    &domain.RawIngredientCost{Name: "Harina", Cost: domain.FlexNumber(ingredient)},
	}
}

func daily(id, date string, sales float64, breads int, product string) domain.RawDailyReport {
	return domain.RawDailyReport{
		ID: domain.Flex(id),
		Details: &domain.RawDailyDetails{
			Date:       date,
			TotalSales: domain.FlexNumber(sales),
			BreadsSold: domain.FlexNumber(float64(breads)),
			TopProduct: product,
		},
	}
}

func sampleSet() domain.RawSet {
	return domain.RawSet{
		Daily: []domain.RawDailyReport{
			daily("reporte-diario-1", "2025-06-01", 100, 10, "Bolillo"),
			daily("reporte-diario-2", "1 de julio de 2025", 200, 20, "Concha"),
			daily("reporte-diario-3", "invalid-date", 50, 5, "Dona"),
			daily("reporte-diario-4", "2 de julio de 2025", 300, 40, "Bolillo"),
			daily("reporte-diario-5", "2026-01-15", 120, 12, "Rosca"),
		},
		Monthly: []domain.RawPeriodReport{
			monthly("reporte-mensual-2025-08", 8, 2025, 8000, 800),
			monthly("reporte-mensual-2025-06", 6, 2025, 6000, 600),
			monthly("reporte-mensual-2025-07", 7, 2025, 7000, 700),
			monthly("reporte-mensual-2026-01", 1, 2026, 9000, 900),
		},
		Material: []domain.RawPeriodReport{
			material("reporte-material-rm-2025-07", 7, 2025, 3000, 1200),
			material("reporte-material-rm-2025-06", 6, 2025, 2500, 1000),
		},
	}
}

func TestBuild_DailyScenario(t *testing.T) {
	d := build(domain.RawSet{Daily: []domain.RawDailyReport{
		daily("june", "2025-06-01", 100, 1, ""),
		daily("july", "1 de julio de 2025", 200, 1, ""),
		daily("bad", "invalid-date", 50, 1, ""),
	}})

	c := d.Collections()
	require.Len(t, c.Daily, 3)
	assert.False(t, c.Daily[2].IsValid)

	require.Len(t, c.All, 2)
	assert.Equal(t, "july", c.All[0].ID)
	assert.Equal(t, "june", c.All[1].ID)
	assert.Equal(t, 200.0, c.All[0].PrimaryMetric)
}

func TestBuild_Invariants(t *testing.T) {
	d := build(sampleSet())
	all := d.All()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for _, r := range all {
		assert.True(t, r.IsValid, r.ID)
		require.NotNil(t, r.Year, r.ID)
		assert.Regexp(t, dateKeyPattern, r.DateKeyValue())
		if r.Kind == domain.KindDaily {
			require.NotNil(t, r.ISODate())
		}
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}

	for i := 1; i < len(all); i++ {
		prev, _ := EffectiveDate(all[i-1])
		cur, _ := EffectiveDate(all[i])
		assert.False(t, cur.After(prev), "%s sorted after %s", all[i].ID, all[i-1].ID)
	}
}

func TestBuild_YearsBeyondFourDigitsAreInvalid(t *testing.T) {
	d := build(domain.RawSet{
		Daily: []domain.RawDailyReport{daily("far", "1 de julio de 12345", 10, 1, "")},
		Monthly: []domain.RawPeriodReport{
			monthly("a", 6, 12345, 100, 10),
			monthly("b", 6, 2025, 200, 20),
		},
	})

	c := d.Collections()
	require.Len(t, c.Monthly, 2)
	assert.False(t, c.Monthly[0].IsValid)
	assert.Nil(t, c.Monthly[0].Year)
	assert.Nil(t, c.Monthly[0].DateKey)
	assert.Contains(t, c.Monthly[0].Issues, "year 12345 out of range 1-9999")
	assert.False(t, c.Daily[0].IsValid)

	require.Len(t, c.All, 1)
	assert.Equal(t, "b", c.All[0].ID)
	assert.Regexp(t, dateKeyPattern, c.All[0].DateKeyValue())
	assert.Equal(t, []int{2025}, d.AvailableYears())
}

func TestBuild_IsRepeatable(t *testing.T) {
	raw := sampleSet()
	raw.Monthly = append(raw.Monthly, domain.RawPeriodReport{
		Name: "Sin id", MonthNumber: domain.FlexNumber(9), Year: domain.FlexNumber(2025),
	})

	first := build(raw).Collections()
	second := build(raw).Collections()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("builds differ (-first +second):\n%s", diff)
	}
}

func TestDataset_Version(t *testing.T) {
	first := build(sampleSet())
	second := build(sampleSet())
	assert.Len(t, first.Version(), 12)
	assert.Equal(t, first.Version(), second.Version())

	changed := sampleSet()
	changed.Monthly[0] = monthly("reporte-mensual-2025-08", 8, 2025, 8100, 800)
	assert.NotEqual(t, first.Version(), build(changed).Version())
	assert.NotEqual(t, first.Version(), build(domain.RawSet{}).Version())
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	raw := sampleSet()
	before := raw.Daily[0].Details.Date
	build(raw)
	assert.Equal(t, before, raw.Daily[0].Details.Date)
	assert.Len(t, raw.Daily, 5)
}

func TestBuild_SynthesizedIDsDoNotCollideOnName(t *testing.T) {
	d := build(domain.RawSet{Monthly: []domain.RawPeriodReport{
		{Name: "Ventas", MonthNumber: domain.FlexNumber(6), Year: domain.FlexNumber(2025)},
		{Name: "Ventas", MonthNumber: domain.FlexNumber(7), Year: domain.FlexNumber(2025)},
	}})

	all := d.All()
	require.Len(t, all, 2)
	assert.NotEqual(t, all[0].ID, all[1].ID)
	assert.Regexp(t, `^Ventas-2025-07-monthly-`, all[0].ID)
	assert.Regexp(t, `^Ventas-2025-06-monthly-`, all[1].ID)
}

func TestBuild_DuplicateIDAcrossKinds(t *testing.T) {
	d := build(domain.RawSet{
		Daily:   []domain.RawDailyReport{daily("shared", "2025-06-10", 10, 1, "")},
		Monthly: []domain.RawPeriodReport{monthly("shared", 6, 2025, 6000, 600)},
	})

	all := d.All()
	require.Len(t, all, 1)
	assert.Equal(t, domain.KindDaily, all[0].Kind)

	require.Len(t, d.Collisions(), 1)
	assert.Equal(t, domain.KindMonthly, d.Collisions()[0].DroppedKind)
	// per-kind arrays keep both records
	assert.Len(t, d.Kind(domain.KindMonthly), 1)
}

func TestSortByDateDesc_OrderIndependentOfInput(t *testing.T) {
	// daily reports of the sample all fall on distinct dates
	valid := build(sampleSet()).ReportsForYear(2025, "")
	valid = filterReports(valid, func(r domain.Report) bool { return r.Kind == domain.KindDaily })
	valid = append(valid, build(sampleSet()).ReportsForYear(2026, domain.KindDaily)...)
	require.Len(t, valid, 4)
	want := SortByDateDesc(valid)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]domain.Report(nil), valid...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := SortByDateDesc(shuffled)
		ids := func(rs []domain.Report) []string {
			out := make([]string, len(rs))
			for i, r := range rs {
				out[i] = r.ID + "/" + string(r.Kind)
			}
			return out
		}
		assert.Equal(t, ids(want), ids(got))
	}
}

func TestSortByDateDesc_StableOnTies(t *testing.T) {
	d := build(domain.RawSet{
		Monthly:  []domain.RawPeriodReport{monthly("m-06", 6, 2025, 1, 1)},
		Material: []domain.RawPeriodReport{material("rm-06", 6, 2025, 1, 1)},
	})
	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, "m-06", all[0].ID)
	assert.Equal(t, "rm-06", all[1].ID)
}

func TestDataset_Kind(t *testing.T) {
	d := build(sampleSet())
	assert.Len(t, d.Kind(""), len(d.All()))
	assert.Len(t, d.Kind(domain.KindDaily), 5)
	assert.Len(t, d.Kind(domain.KindMonthly), 4)
	assert.Len(t, d.Kind(domain.KindMaterial), 2)
	assert.Nil(t, d.Kind("weekly"))
}

func TestDataset_Find(t *testing.T) {
	d := build(sampleSet())

	r, ok := d.Find("2025-07")
	require.True(t, ok)
	assert.Equal(t, domain.KindMonthly, r.Kind)

	_, ok = d.Find("3")
	assert.False(t, ok, "invalid records are not in the unified collection")
}
