package source

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/reports"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedFormat is returned when a document extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported report format")

const defaultReadConcurrency = 4

// Source produces the raw report bundle the pipeline normalizes.
type Source interface {
	Load(ctx context.Context) (domain.RawSet, error)
}

// Document is a named report file. Name is slash separated and relative to the source root,
// e.g. "monthly/2025.yaml".
type Document struct {
	Name string
	Kind domain.ReportKind
}

// ReadFunc returns the content of a document.
type ReadFunc func(ctx context.Context, doc Document) ([]byte, error)

// KindFromPath resolves the report kind of a document from its directory or file name.
// "daily/june.json", "reports/monthly/2025.yaml" and "material.xlsx" all resolve.
func KindFromPath(name string) (domain.ReportKind, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	segments := strings.Split(path.Dir(name), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if kind, ok := kindAlias(segments[i]); ok {
			return kind, true
		}
	}

	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	if kind, ok := kindAlias(base); ok {
		return kind, true
	}
	if prefix, _, found := strings.Cut(base, "-"); found {
		return kindAlias(prefix)
	}
	return "", false
}

func kindAlias(s string) (domain.ReportKind, bool) {
	switch strings.ToLower(s) {
	case "diario", "diarios":
		return domain.KindDaily, true
	case "mensual", "mensuales":
		return domain.KindMonthly, true
	case "dailyreports", "daily-reports":
		return domain.KindDaily, true
	case "monthlyreports", "monthly-reports":
		return domain.KindMonthly, true
	case "materia-prima", "raw-material", "materials", "rawmaterialreports", "raw-material-reports":
		return domain.KindMaterial, true
	}
	return domain.ParseReportKind(s)
}

// Supported reports whether a document name has a known extension.
func Supported(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml", ".xlsx":
		return true
	}
	return false
}

// Documents turns object names into documents, skipping names without a kind or with an
// unsupported extension. The result is in calendar order of the period each name covers,
// then by name, so "d1-june", "d1-july", "d1-august" load in that order.
func Documents(names []string) []Document {
	docs := make([]Document, 0, len(names))
	for _, name := range names {
		if !Supported(name) {
			log.Debug().Str("document", name).Msg("skipping unsupported document")
			continue
		}
		kind, ok := KindFromPath(name)
		if !ok {
			log.Debug().Str("document", name).Msg("skipping document without report kind")
			continue
		}
		docs = append(docs, Document{Name: name, Kind: kind})
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := documentPeriod(docs[i].Name), documentPeriod(docs[j].Name)
		if a != b {
			return a.before(b)
		}
		return docs[i].Name < docs[j].Name
	})
	return docs
}

type period struct {
	year, month int
}

func (p period) before(o period) bool {
	if p.year != o.year {
		return p.year < o.year
	}
	return p.month < o.month
}

// documentPeriod reads the year and month a document covers from its path, e.g.
// "daily/2025/d1-june.json" or "monthly/2025-07.yaml". Unknown parts stay 0, so undated
// documents load first.
func documentPeriod(name string) period {
	var p period
	tokens := strings.FieldsFunc(strings.ToLower(strings.TrimSuffix(name, path.Ext(name))), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if n, err := strconv.Atoi(token); err == nil {
			switch {
			case len(token) == 4 && reports.ValidYear(n):
				p.year = n
			case p.year != 0 && len(token) <= 2 && n >= 1 && n <= 12 && p.month == 0:
				p.month = n
			}
			continue
		}
		if month, ok := monthFromToken(token); ok {
			p.month = month
		}
	}
	return p
}

func monthFromToken(token string) (int, bool) {
	if month, ok := reports.MonthFromName(token); ok {
		return month, true
	}
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == token {
			return int(m), true
		}
	}
	return 0, false
}

// LoadDocuments reads and decodes docs concurrently and merges them in document order.
func LoadDocuments(ctx context.Context, docs []Document, read ReadFunc) (domain.RawSet, error) {
	parts := make([]domain.RawSet, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultReadConcurrency)
	for i, doc := range docs {
		g.Go(func() error {
			data, err := read(gctx, doc)
			if err != nil {
				return fmt.Errorf("read %s: %w", doc.Name, err)
			}
			set, err := Decode(doc.Kind, doc.Name, data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", doc.Name, err)
			}
			parts[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.RawSet{}, err
	}

	var out domain.RawSet
	for i, part := range parts {
		log.Debug().
			Str("document", docs[i].Name).
			Str("kind", string(docs[i].Kind)).
			Int("records", part.Len()).
			Msg("document loaded")
		out = out.Merge(part)
	}
	return out, nil
}
