package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/panaderia-reports/data"
	"github.com/andresuchdata/panaderia-reports/internal/config"
	"github.com/andresuchdata/panaderia-reports/internal/drive"
	"github.com/andresuchdata/panaderia-reports/internal/source"
	"github.com/andresuchdata/panaderia-reports/internal/storage"
)

const (
	SourceBundled = "bundled"
	SourceFile    = "file"
	SourceS3      = "s3"
	SourceDrive   = "drive"
)

// NewSource builds the report source selected by cfg.App.Source and returns it with a label
// for logs.
func NewSource(ctx context.Context, cfg *config.Config) (source.Source, string, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.App.Source))
	switch kind {
	case "", SourceBundled:
		return source.NewFSSource(data.Reports(), "bundled"), "bundled", nil
	case SourceFile:
		return source.NewFileSource(cfg.App.DataDir), "file:" + cfg.App.DataDir, nil
	case SourceS3:
		client, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			return nil, "", err
		}
		return source.NewObjectSource(client, cfg.Storage.Prefix), fmt.Sprintf("s3:%s/%s", cfg.Storage.Bucket, cfg.Storage.Prefix), nil
	case SourceDrive:
		if cfg.Drive.CredentialsJSON == "" {
			return nil, "", fmt.Errorf("GOOGLE_DRIVE_CREDENTIALS_JSON is required for the drive source")
		}
		svc, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
		if err != nil {
			return nil, "", err
		}
		label := "drive:" + cfg.Drive.FolderID
		if cfg.Drive.FolderID == "" {
			label = "drive:" + cfg.Drive.FolderPath
		}
		return drive.NewSource(svc, cfg.Drive.FolderID, cfg.Drive.FolderPath), label, nil
	}
	return nil, "", fmt.Errorf("unknown report source %q (want bundled, file, s3 or drive)", cfg.App.Source)
}
