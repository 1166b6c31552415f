package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/rs/zerolog/log"
)

// FileSource loads report documents from a directory tree such as:
//
//	data/reports/dailyReports/2025/d1-june.json
//	data/reports/monthly/*.yaml
//	data/reports/material/*.xlsx
type FileSource struct {
	root string
	fsys fs.FS
}

func NewFileSource(root string) *FileSource {
	return &FileSource{root: root}
}

// NewFSSource loads documents from fsys, e.g. the bundled sample reports. label names the
// tree in logs.
func NewFSSource(fsys fs.FS, label string) *FileSource {
	return &FileSource{root: label, fsys: fsys}
}

func (s *FileSource) Load(ctx context.Context) (domain.RawSet, error) {
	fsys := s.fsys
	if fsys == nil {
		info, err := os.Stat(s.root)
		if err != nil {
			return domain.RawSet{}, fmt.Errorf("open report directory: %w", err)
		}
		if !info.IsDir() {
			return domain.RawSet{}, fmt.Errorf("report path %s is not a directory", s.root)
		}
		fsys = os.DirFS(s.root)
	}

	names, err := walkNames(fsys)
	if err != nil {
		return domain.RawSet{}, fmt.Errorf("walk report directory: %w", err)
	}

	docs := Documents(names)
	raw, err := LoadDocuments(ctx, docs, func(ctx context.Context, doc Document) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fs.ReadFile(fsys, doc.Name)
	})
	if err != nil {
		return domain.RawSet{}, err
	}

	log.Info().
		Str("root", s.root).
		Int("documents", len(docs)).
		Int("records", raw.Len()).
		Msg("Loaded report documents from disk")
	return raw, nil
}

// walkNames lists every regular file of fsys as a slash separated path.
func walkNames(fsys fs.FS) ([]string, error) {
	var names []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, p)
		}
		return nil
	})
	return names, err
}
