// Package export writes extracted text to office documents.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
)

// OutputPath returns <outDir>/<base of pdfPath without extension>.<ext>.
func OutputPath(outDir, pdfPath, ext string) string {
	base := filepath.Base(pdfPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+"."+strings.TrimPrefix(ext, "."))
}

// writeAtomic creates the parent directory of path, streams write into a
// temp file next to it and renames it into place. A failed write never
// leaves a partial file at path.
func writeAtomic(op, path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return failure.New(failure.DirectoryCreateFailed, op, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return failure.New(failure.WriteFailed, op, path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) }

	if err := write(tmp); err != nil {
		tmp.Close()
		cleanup()
		return failure.New(failure.WriteFailed, op, path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return failure.New(failure.WriteFailed, op, path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return failure.New(failure.WriteFailed, op, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return failure.New(failure.WriteFailed, op, path, fmt.Errorf("rename into place: %w", err))
	}
	return nil
}
