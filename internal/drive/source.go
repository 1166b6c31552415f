package drive

import (
	"context"
	"fmt"
	"path"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/source"
	"github.com/rs/zerolog/log"
)

// FileStore is the part of the Drive API the report source needs.
type FileStore interface {
	ListFiles(ctx context.Context, folderID string) ([]*File, error)
	ReadFile(ctx context.Context, file *File) ([]byte, error)
	FindFolderByPath(ctx context.Context, path string) (string, error)
}

// Source loads report documents from a Drive folder laid out like the data directory:
// one sub-folder per report kind, or files named after their kind.
type Source struct {
	store      FileStore
	folderID   string
	folderPath string
}

func NewSource(store FileStore, folderID, folderPath string) *Source {
	return &Source{store: store, folderID: folderID, folderPath: folderPath}
}

func (s *Source) Load(ctx context.Context) (domain.RawSet, error) {
	rootID := s.folderID
	if rootID == "" {
		id, err := s.store.FindFolderByPath(ctx, s.folderPath)
		if err != nil {
			return domain.RawSet{}, err
		}
		rootID = id
	}

	files, err := s.collect(ctx, rootID, "")
	if err != nil {
		return domain.RawSet{}, err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}

	docs := source.Documents(names)
	raw, err := source.LoadDocuments(ctx, docs, func(ctx context.Context, doc source.Document) ([]byte, error) {
		return s.store.ReadFile(ctx, files[doc.Name])
	})
	if err != nil {
		return domain.RawSet{}, err
	}

	log.Info().
		Str("folder_id", rootID).
		Int("documents", len(docs)).
		Int("records", raw.Len()).
		Msg("Loaded report documents from Google Drive")
	return raw, nil
}

// collect walks folder one level deep and names every file by its relative path.
func (s *Source) collect(ctx context.Context, folderID, prefix string) (map[string]*File, error) {
	entries, err := s.store.ListFiles(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list drive folder %s: %w", folderID, err)
	}

	files := make(map[string]*File)
	for _, entry := range entries {
		name := path.Join(prefix, entry.Name)
		switch {
		case entry.IsFolder():
			if prefix != "" {
				continue
			}
			nested, err := s.collect(ctx, entry.ID, entry.Name)
			if err != nil {
				return nil, err
			}
			for k, v := range nested {
				files[k] = v
			}
		case entry.IsSpreadsheet():
			files[name+".xlsx"] = entry
		default:
			files[name] = entry
		}
	}
	return files, nil
}
