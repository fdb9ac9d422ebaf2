package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fumiama/go-docx"
)

// Builder creates WordprocessingML (.docx) files with one paragraph per
// line, using the default go-docx theme.
type Builder struct {
	lines []string
}

// NewBuilder creates a docx builder for lines.
func NewBuilder(lines []string) *Builder {
	return &Builder{lines: lines}
}

// WriteDocx writes lines to path as a .docx document. Whitespace-only lines
// become empty paragraphs.
func WriteDocx(path string, lines []string) error {
	return NewBuilder(lines).Build(path)
}

// Build writes the document to path atomically.
func (b *Builder) Build(path string) error {
	return writeAtomic("write docx", path, b.WriteTo)
}

// document builds the in-memory go-docx document for the lines.
func (b *Builder) document() *docx.Docx {
	doc := docx.New().WithDefaultTheme()
	for _, line := range b.lines {
		p := doc.AddParagraph()
		if strings.TrimSpace(line) == "" {
			continue
		}
		run := p.AddText(cleanText(line))
		for _, c := range run.Children {
			if t, ok := c.(*docx.Text); ok {
				t.XMLSpace = "preserve"
			}
		}
	}
	return doc
}

// WriteTo writes the docx package to w. go-docx emits its parts in map
// order, so the package is rewritten with sorted parts and a fixed
// timestamp to keep identical input byte-identical.
func (b *Builder) WriteTo(w io.Writer) error {
	var raw bytes.Buffer
	if _, err := b.document().WriteTo(&raw); err != nil {
		return fmt.Errorf("failed to render docx: %w", err)
	}
	return repack(w, raw.Bytes())
}

// docxEpoch is stamped on every zip entry.
var docxEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

const contentTypesPart = "[Content_Types].xml"

func repack(w io.Writer, data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to read rendered docx: %w", err)
	}

	files := append([]*zip.File(nil), zr.File...)
	sort.Slice(files, func(i, j int) bool {
		a, b := files[i].Name, files[j].Name
		if (a == contentTypesPart) != (b == contentTypesPart) {
			return a == contentTypesPart
		}
		return a < b
	})

	zw := zip.NewWriter(w)
	for _, f := range files {
		if err := copyPart(zw, f); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

func copyPart(zw *zip.Writer, f *zip.File) error {
	dst, err := zw.CreateHeader(&zip.FileHeader{
		Name:     f.Name,
		Method:   zip.Deflate,
		Modified: docxEpoch,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", f.Name, err)
	}
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer src.Close()
	_, err = io.Copy(dst, src)
	return err
}

// cleanText drops runes XML 1.0 cannot carry (control characters, invalid
// UTF-8). encoding/xml would otherwise write U+FFFD in their place.
func cleanText(s string) string {
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || !isXMLChar(r) {
			return -1
		}
		return r
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// ReadDocx returns the text of every paragraph in the docx at path, in
// document order. Empty paragraphs are returned as "".
func ReadDocx(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat docx: %w", err)
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			paragraphs = append(paragraphs, p.String())
		}
	}
	return paragraphs, nil
}
