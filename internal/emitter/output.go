package emitter

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/jsbind/internal/gofile"
)

// Archive packs the files into a txtar archive, one section per file.
func Archive(comment string, files []gofile.GeneratedFile) []byte {
	a := &txtar.Archive{Comment: []byte(comment)}
	for _, f := range files {
		a.Files = append(a.Files, txtar.File{Name: f.Filename, Data: f.Content})
	}
	return txtar.Format(a)
}

// Unarchive is the inverse of Archive.
func Unarchive(data []byte) []gofile.GeneratedFile {
	a := txtar.Parse(data)
	files := make([]gofile.GeneratedFile, len(a.Files))
	for i, f := range a.Files {
		files[i] = gofile.GeneratedFile{Filename: f.Name, Content: f.Data}
	}
	return files
}

// WriteDir writes the files under dir, creating package directories.
func WriteDir(dir string, files []gofile.GeneratedFile) error {
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.Filename))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
