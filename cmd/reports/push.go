package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/andresuchdata/panaderia-reports/internal/config"
	"github.com/andresuchdata/panaderia-reports/internal/source"
	"github.com/andresuchdata/panaderia-reports/internal/storage"
	"github.com/urfave/cli/v2"
)

// runPush mirrors the supported report documents of --data-dir under the storage prefix.
func runPush(c *cli.Context) error {
	cfg := config.Load()
	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}

	root := c.String("data-dir")
	var names []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}

	for _, doc := range source.Documents(names) {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(doc.Name)))
		if err != nil {
			return err
		}
		if err := client.UploadObject(c.Context, cfg.Storage.Prefix+doc.Name, data); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "uploaded %s\n", doc.Name)
	}
	return nil
}
