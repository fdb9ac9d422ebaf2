// Package pdftext pulls the selectable text layer out of a PDF, one page
// at a time, using github.com/ledongthuc/pdf.
package pdftext

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
)

// Document is an open PDF whose pages can be read for text.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int
	// PageText returns the text layer of a 1-indexed page. A page without a
	// text layer returns "" and no error.
	PageText(page int) (string, error)
	Close() error
}

// Opener opens a PDF path as a Document.
type Opener interface {
	Open(path string) (Document, error)
}

// Reader is the ledongthuc/pdf-backed Opener.
type Reader struct{}

// NewReader returns an Opener backed by ledongthuc/pdf.
func NewReader() *Reader {
	return &Reader{}
}

// Open opens the PDF at path. A missing file fails with FileNotFound and
// anything the parser rejects fails with UnreadablePDF.
func (Reader) Open(path string) (doc Document, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			return nil, failure.New(failure.FileNotFound, "open pdf", path, statErr)
		}
		return nil, failure.New(failure.UnreadablePDF, "open pdf", path, statErr)
	}

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = failure.New(failure.UnreadablePDF, "open pdf", path, fmt.Errorf("parser panic: %v", r))
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		if f != nil {
			f.Close()
		}
		return nil, failure.New(failure.UnreadablePDF, "open pdf", path, openErr)
	}
	return &document{file: f, reader: r}, nil
}

type document struct {
	file   *os.File
	reader *pdf.Reader
}

func (d *document) NumPages() int {
	return d.reader.NumPage()
}

func (d *document) PageText(page int) (text string, err error) {
	if page < 1 || page > d.reader.NumPage() {
		return "", fmt.Errorf("page %d out of range 1..%d", page, d.reader.NumPage())
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page %d: content stream panic: %v", page, r)
		}
	}()

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	if rows, ok := pageRows(p); ok {
		return strings.Join(rows, "\n"), nil
	}
	return p.GetPlainText(nil)
}

// row is the glyphs drawn on one baseline, in content stream order.
type row struct {
	y      int64
	glyphs []pdf.Text
}

// pageRows lays the page's glyphs out as lines, top to bottom. Glyphs are
// grouped by baseline after the full text matrix is applied, so lines
// positioned with Td, TD or Tm split the same way as those using T*. It
// reports false when the content stream cannot be interpreted.
func pageRows(p pdf.Page) (lines []string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			lines, ok = nil, false
		}
	}()

	var rows []*row
	byY := make(map[int64]*row)
	for _, g := range p.Content().Text {
		if g.S == "\n" {
			continue
		}
		y := int64(math.Round(g.Y))
		r, seen := byY[y]
		if !seen {
			r = &row{y: y}
			byY[y] = r
			rows = append(rows, r)
		}
		r.glyphs = append(r.glyphs, g)
	}

	// PDF y grows upward.
	sort.Slice(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines = make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, r.text())
	}
	return lines, true
}

// text joins a row's glyphs, adding a space where the gap before a glyph
// is wider than a third of the font size. Fonts without a Widths array
// report zero widths, so no gaps are inferred for them.
func (r *row) text() string {
	var sb strings.Builder
	for i, g := range r.glyphs {
		if i > 0 {
			prev := r.glyphs[i-1]
			if prev.W > 0 && g.X-(prev.X+prev.W) > g.FontSize/3 &&
				!strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " ") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(g.S)
	}
	return sb.String()
}

func (d *document) Close() error {
	return d.file.Close()
}
