// Package data bundles the sample bakery reports served when no other source is configured.
package data

import (
	"embed"
	"io/fs"
)

//go:embed reports
var bundle embed.FS

// Reports returns the bundled report tree rooted at its kind directories.
func Reports() fs.FS {
	sub, err := fs.Sub(bundle, "reports")
	if err != nil {
		panic(err)
	}
	return sub
}
