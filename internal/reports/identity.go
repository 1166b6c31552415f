package reports

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/google/uuid"
)

var (
	idPrefixPattern   = regexp.MustCompile(`(?:reporte-(?:diario|mensual|material)|report-(?:daily|monthly|material))-`)
	whitespacePattern = regexp.MustCompile(`\s`)

	// namespace for name-based synthesized id suffixes
	reportIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("panaderia-reports/report-id"))
)

const (
	defaultIDName  = "reporte"
	noDateKey      = "no-date"
	idSuffixLength = 9
)

// IDStrategy decides how the suffix of a synthesized id is produced.
type IDStrategy string

const (
	// IDStrategyDeterministic hashes name, date key, kind and source position, so the same
	// bundle always yields the same ids.
	IDStrategyDeterministic IDStrategy = "deterministic"
	// IDStrategyRandom draws a fresh suffix on every build.
	IDStrategyRandom IDStrategy = "random"
)

// ParseIDStrategy maps a config value to a strategy, defaulting to deterministic.
func ParseIDStrategy(s string) IDStrategy {
	if IDStrategy(strings.ToLower(strings.TrimSpace(s))) == IDStrategyRandom {
		return IDStrategyRandom
	}
	return IDStrategyDeterministic
}

// CanonicalID strips the first known "reporte-<kind>-" style prefix from a source id.
func CanonicalID(raw string) string {
	raw = strings.TrimSpace(raw)
	loc := idPrefixPattern.FindStringIndex(raw)
	if loc == nil {
		return raw
	}
	return raw[:loc[0]] + raw[loc[1]:]
}

// Slug replaces every whitespace character with a dash.
func Slug(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultIDName
	}
	return whitespacePattern.ReplaceAllString(name, "-")
}

// SynthesizeID builds "<slug>-<dateKey|no-date>-<kind>-<suffix>" for a record without id.
// ordinal is the record's position in its source collection.
func SynthesizeID(strategy IDStrategy, name, dateKey string, kind domain.ReportKind, ordinal int) string {
	if dateKey == "" {
		dateKey = noDateKey
	}
	prefix := fmt.Sprintf("%s-%s-%s", Slug(name), dateKey, kind)

	var u uuid.UUID
	if strategy == IDStrategyRandom {
		u = uuid.New()
	} else {
		u = uuid.NewSHA1(reportIDNamespace, []byte(fmt.Sprintf("%s|%d", prefix, ordinal)))
	}
	suffix := strings.ReplaceAll(u.String(), "-", "")[:idSuffixLength]
	return prefix + "-" + suffix
}

// Dedupe keeps the first report for every id and reports each dropped one.
// Reports with an empty id are dropped as well.
func Dedupe(reports []domain.Report) ([]domain.Report, []domain.IDCollision) {
	unique := make([]domain.Report, 0, len(reports))
	seen := make(map[string]domain.ReportKind, len(reports))
	var collisions []domain.IDCollision

	for _, r := range reports {
		if r.ID == "" {
			continue
		}
		if keptKind, ok := seen[r.ID]; ok {
			collisions = append(collisions, domain.IDCollision{
				ID:          r.ID,
				KeptKind:    keptKind,
				DroppedKind: r.Kind,
				DroppedName: r.Name,
			})
			continue
		}
		seen[r.ID] = r.Kind
		unique = append(unique, r)
	}

	return unique, collisions
}
