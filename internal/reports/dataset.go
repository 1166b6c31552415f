package reports

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const versionLength = 12

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	ids    IDStrategy
	logger zerolog.Logger
}

// WithIDStrategy selects how ids are synthesized for records without one.
func WithIDStrategy(s IDStrategy) Option {
	return func(o *buildOptions) { o.ids = s }
}

// WithLogger overrides the logger used to report invalid records and id collisions.
func WithLogger(l zerolog.Logger) Option {
	return func(o *buildOptions) { o.logger = l }
}

// Dataset is the normalized, immutable view over one raw report set.
// Slices returned by its methods must be treated as read-only.
type Dataset struct {
	daily    []domain.Report
	monthly  []domain.Report
	material []domain.Report
	all      []domain.Report

	collisions []domain.IDCollision
	years      []int
	byID       map[string]int
	version    string

	chartMu    sync.Mutex
	chartCache map[chartKey][]domain.ChartPoint
}

type chartKey struct {
	year int
	view domain.ChartView
}

// Build normalizes every raw record, drops duplicate ids (first wins, in daily, monthly,
// material order), keeps valid reports only and sorts them newest first.
func Build(raw domain.RawSet, opts ...Option) *Dataset {
	o := buildOptions{ids: IDStrategyDeterministic, logger: log.Logger}
	for _, opt := range opts {
		opt(&o)
	}
	n := NewNormalizer(o.ids)

	d := &Dataset{
		daily:      make([]domain.Report, 0, len(raw.Daily)),
		monthly:    make([]domain.Report, 0, len(raw.Monthly)),
		material:   make([]domain.Report, 0, len(raw.Material)),
		chartCache: make(map[chartKey][]domain.ChartPoint),
	}
	for i, r := range raw.Daily {
		d.daily = append(d.daily, n.NormalizeDaily(r, i))
	}
	for i, r := range raw.Monthly {
		d.monthly = append(d.monthly, n.NormalizePeriod(r, domain.KindMonthly, i))
	}
	for i, r := range raw.Material {
		d.material = append(d.material, n.NormalizePeriod(r, domain.KindMaterial, i))
	}

	combined := make([]domain.Report, 0, raw.Len())
	combined = append(combined, d.daily...)
	combined = append(combined, d.monthly...)
	combined = append(combined, d.material...)

	for _, r := range combined {
		if !r.IsValid {
			o.logger.Warn().
				Str("id", r.ID).
				Str("kind", string(r.Kind)).
				Strs("issues", r.Issues).
				Msg("reports: invalid record excluded from unified collection")
		}
	}

	unique, collisions := Dedupe(combined)
	for _, c := range collisions {
		o.logger.Warn().
			Str("id", c.ID).
			Str("kept_kind", string(c.KeptKind)).
			Str("dropped_kind", string(c.DroppedKind)).
			Msg("reports: duplicate id dropped")
	}

	d.all = SortByDateDesc(FilterValid(unique))
	d.collisions = collisions
	d.years = collectYears(d.all)
	d.byID = make(map[string]int, len(d.all))
	for i, r := range d.all {
		d.byID[r.ID] = i
	}
	d.version = fingerprint(d, o.logger)

	o.logger.Info().
		Int("daily", len(d.daily)).
		Int("monthly", len(d.monthly)).
		Int("material", len(d.material)).
		Int("unified", len(d.all)).
		Int("duplicates_removed", len(collisions)).
		Str("version", d.version).
		Msg("reports: dataset built")

	return d
}

// fingerprint hashes the normalized collections, so equal bundles share a version.
func fingerprint(d *Dataset, logger zerolog.Logger) string {
	h := sha1.New()
	err := json.NewEncoder(h).Encode(domain.ReportCollections{
		Daily:    d.daily,
		Monthly:  d.monthly,
		Material: d.material,
		All:      d.all,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("reports: fingerprint failed, using a random version")
		return uuid.NewString()[:versionLength]
	}
	return hex.EncodeToString(h.Sum(nil))[:versionLength]
}

// FilterValid returns the reports whose IsValid flag is set.
func FilterValid(reports []domain.Report) []domain.Report {
	out := make([]domain.Report, 0, len(reports))
	for _, r := range reports {
		if r.IsValid {
			out = append(out, r)
		}
	}
	return out
}

// SortByDateDesc returns a copy sorted by effective date, newest first. Equal dates keep
// their input order.
func SortByDateDesc(reports []domain.Report) []domain.Report {
	type keyed struct {
		report domain.Report
		at     time.Time
	}
	items := make([]keyed, len(reports))
	for i, r := range reports {
		at, _ := EffectiveDate(r)
		items[i] = keyed{report: r, at: at}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})

	out := make([]domain.Report, len(items))
	for i, it := range items {
		out[i] = it.report
	}
	return out
}

// EffectiveDate is the instant used to order reports: the ISO date of a daily report,
// the first day of the month otherwise.
func EffectiveDate(r domain.Report) (time.Time, bool) {
	value := r.DisplayDate
	if iso := r.ISODate(); iso != nil {
		value = *iso
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func collectYears(reports []domain.Report) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range reports {
		if r.Year == nil {
			continue
		}
		if _, ok := seen[*r.Year]; ok {
			continue
		}
		seen[*r.Year] = struct{}{}
		years = append(years, *r.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Collections returns the per-kind normalized arrays (including invalid records) and the
// unified collection.
func (d *Dataset) Collections() domain.ReportCollections {
	return domain.ReportCollections{
		Daily:    d.daily,
		Monthly:  d.monthly,
		Material: d.material,
		All:      d.all,
	}
}

// All returns the unified collection.
func (d *Dataset) All() []domain.Report {
	return d.all
}

// Kind returns the normalized array of one kind. An empty kind means the unified collection
// and an unknown kind yields nil.
func (d *Dataset) Kind(kind domain.ReportKind) []domain.Report {
	switch kind {
	case "":
		return d.all
	case domain.KindDaily:
		return d.daily
	case domain.KindMonthly:
		return d.monthly
	case domain.KindMaterial:
		return d.material
	}
	return nil
}

// Version identifies the content of the dataset. Derived views cached outside the dataset
// are keyed by it.
func (d *Dataset) Version() string {
	return d.version
}

// Collisions lists the reports dropped during deduplication.
func (d *Dataset) Collisions() []domain.IDCollision {
	return d.collisions
}

// Find looks a report up in the unified collection.
func (d *Dataset) Find(id string) (domain.Report, bool) {
	i, ok := d.byID[id]
	if !ok {
		return domain.Report{}, false
	}
	return d.all[i], true
}
