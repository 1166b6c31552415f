package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/storage"
	"github.com/rs/zerolog/log"
)

// ObjectSource loads report documents stored under a bucket prefix using the same layout as
// FileSource.
type ObjectSource struct {
	store  storage.ObjectStorage
	prefix string
}

func NewObjectSource(store storage.ObjectStorage, prefix string) *ObjectSource {
	return &ObjectSource{store: store, prefix: prefix}
}

func (s *ObjectSource) Load(ctx context.Context) (domain.RawSet, error) {
	objects, err := s.store.ListObjects(ctx, s.prefix)
	if err != nil {
		return domain.RawSet{}, fmt.Errorf("list report objects: %w", err)
	}

	names := make([]string, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		names = append(names, strings.TrimPrefix(obj.Key, s.prefix))
	}

	docs := Documents(names)
	raw, err := LoadDocuments(ctx, docs, func(ctx context.Context, doc Document) ([]byte, error) {
		return s.store.ReadObject(ctx, s.prefix+doc.Name)
	})
	if err != nil {
		return domain.RawSet{}, err
	}

	log.Info().
		Str("prefix", s.prefix).
		Int("documents", len(docs)).
		Int("records", raw.Len()).
		Msg("Loaded report documents from object storage")
	return raw, nil
}
