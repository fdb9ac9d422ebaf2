// Package catalog finds PDF files on disk and orders them the way
// multi-part scans are numbered.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
)

// Entry describes one PDF found in a directory.
type Entry struct {
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"path" yaml:"path"`
	Size  int64  `json:"size" yaml:"size"`
	Pages int    `json:"pages" yaml:"pages"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// IsPDF reports whether path has a .pdf extension, ignoring case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// List returns the PDFs directly inside dir, sorted by numeric suffix,
// with page counts. A file pdfcpu cannot read is still listed with Error
// set.
func List(dir string) ([]Entry, error) {
	paths, err := Find(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e := Entry{Name: filepath.Base(p), Path: p}
		if info, err := os.Stat(p); err == nil {
			e.Size = info.Size()
		}
		pages, err := PageCount(p)
		if err != nil {
			e.Error = err.Error()
		}
		e.Pages = pages
		entries = append(entries, e)
	}
	return entries, nil
}

// Find returns the paths of the PDFs directly inside dir in sorted order.
func Find(dir string) ([]string, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, failure.New(failure.FileNotFound, "list pdfs", dir, err)
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, de := range des {
		if de.IsDir() || !IsPDF(de.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}
	return SortByNumber(paths), nil
}

// Expand resolves args into PDF paths. Directories expand to the PDFs they
// contain. Files are kept as given so a missing file surfaces later as
// FileNotFound.
func Expand(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			paths, err := Find(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, paths...)
			continue
		}
		out = append(out, arg)
	}
	return out, nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	n, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return n, nil
}

var numberSuffix = regexp.MustCompile(`(?i)-(\d+)\.pdf$`)

// SortByNumber sorts PDF paths by their numeric suffix.
// e.g., ["book-2.pdf", "book-1.pdf", "book-10.pdf"] -> ["book-1.pdf", "book-2.pdf", "book-10.pdf"]
// Files without a suffix come first, alphabetically.
func SortByNumber(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)

	sort.SliceStable(sorted, func(i, j int) bool {
		mi := numberSuffix.FindStringSubmatch(sorted[i])
		mj := numberSuffix.FindStringSubmatch(sorted[j])

		if len(mi) > 1 && len(mj) > 1 {
			ni, _ := strconv.Atoi(mi[1])
			nj, _ := strconv.Atoi(mj[1])
			if ni != nj {
				return ni < nj
			}
			return sorted[i] < sorted[j]
		}

		if len(mi) > 1 {
			return false
		}
		if len(mj) > 1 {
			return true
		}

		return sorted[i] < sorted[j]
	})

	return sorted
}
