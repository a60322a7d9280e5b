package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed templates/*
var templatesFS embed.FS

// Templates returns the view templates to render.
func Templates() (fs.FS, error) {
	// Dev mode: serve from disk
	if dir := os.Getenv("TEMPLATES_DIR"); dir != "" {
		return os.DirFS(dir), nil
	}

	return fs.Sub(templatesFS, "templates")
}
