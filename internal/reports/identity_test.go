package reports

import (
	"regexp"
	"testing"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalID(t *testing.T) {
	tests := map[string]string{
		"reporte-diario-2025-06-01":   "2025-06-01",
		"reporte-mensual-junio-2025":  "junio-2025",
		"reporte-material-rm-01":      "rm-01",
		"report-daily-42":             "42",
		"  reporte-diario-7 ":         "7",
		"plain-id":                    "plain-id",
	}
	for in, want := range tests {
		assert.Equal(t, want, CanonicalID(in), in)
	}

	// only the first prefix is stripped
	assert.Equal(t, "x-reporte-diario-1", CanonicalID("x-reporte-diario-reporte-diario-1"))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "Ventas-de-Junio", Slug("Ventas de Junio"))
	assert.Equal(t, "reporte", Slug(""))
	assert.Equal(t, "a--b", Slug("a \tb"))
}

var synthesizedID = regexp.MustCompile(`^Ventas-2025-06-monthly-[0-9a-f]{9}$`)

func TestSynthesizeID(t *testing.T) {
	t.Run("deterministic strategy is stable", func(t *testing.T) {
		a := SynthesizeID(IDStrategyDeterministic, "Ventas", "2025-06", domain.KindMonthly, 0)
		b := SynthesizeID(IDStrategyDeterministic, "Ventas", "2025-06", domain.KindMonthly, 0)
		assert.Equal(t, a, b)
		assert.Regexp(t, synthesizedID, a)
	})

	t.Run("position separates identical records", func(t *testing.T) {
		a := SynthesizeID(IDStrategyDeterministic, "Ventas", "2025-06", domain.KindMonthly, 0)
		b := SynthesizeID(IDStrategyDeterministic, "Ventas", "2025-06", domain.KindMonthly, 1)
		assert.NotEqual(t, a, b)
	})

	t.Run("random strategy keeps the shape", func(t *testing.T) {
		a := SynthesizeID(IDStrategyRandom, "Ventas", "2025-06", domain.KindMonthly, 0)
		assert.Regexp(t, synthesizedID, a)
	})

	t.Run("missing date key", func(t *testing.T) {
		id := SynthesizeID(IDStrategyDeterministic, "", "", domain.KindDaily, 3)
		assert.Regexp(t, `^reporte-no-date-daily-[0-9a-f]{9}$`, id)
	})
}

func TestParseIDStrategy(t *testing.T) {
	assert.Equal(t, IDStrategyRandom, ParseIDStrategy("Random"))
	assert.Equal(t, IDStrategyDeterministic, ParseIDStrategy("deterministic"))
	assert.Equal(t, IDStrategyDeterministic, ParseIDStrategy("whatever"))
}

func TestDedupe(t *testing.T) {
	in := []domain.Report{
		{ID: "x", Kind: domain.KindDaily, Name: "daily x"},
		{ID: "y", Kind: domain.KindDaily},
		{ID: "x", Kind: domain.KindMonthly, Name: "monthly x"},
		{ID: "", Kind: domain.KindMaterial},
		{ID: "z", Kind: domain.KindMaterial},
	}

	out, collisions := Dedupe(in)

	require.Len(t, out, 3)
	assert.Equal(t, "x", out[0].ID)
	assert.Equal(t, domain.KindDaily, out[0].Kind)
	assert.Equal(t, "y", out[1].ID)
	assert.Equal(t, "z", out[2].ID)

	require.Len(t, collisions, 1)
	assert.Equal(t, domain.IDCollision{
		ID:          "x",
		KeptKind:    domain.KindDaily,
		DroppedKind: domain.KindMonthly,
		DroppedName: "monthly x",
	}, collisions[0])
}
