// Package testutil holds fixtures shared by package tests: minimal PDF
// documents and fake external executables.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Layout selects the text operators a fixture page uses to move between
// lines.
type Layout int

const (
	// LayoutOffset positions every line with a relative Td move, the way
	// word processors and TeX lay out text.
	LayoutOffset Layout = iota
	// LayoutLeading sets a leading with TL and breaks lines with T*.
	LayoutLeading
)

// BuildPDF returns a minimal, valid PDF with one page per entry in pages,
// laid out with LayoutOffset. Each page's text is split on "\n" and drawn
// line by line in Helvetica. An empty string produces a page with an empty
// content stream, which is what a scanned page looks like to a text
// extractor.
func BuildPDF(pages ...string) []byte {
	return BuildPDFLayout(LayoutOffset, pages...)
}

// BuildPDFLayout is BuildPDF with an explicit line layout.
func BuildPDFLayout(layout Layout, pages ...string) []byte {
	// Object layout: 1 catalog, 2 page tree, 3 font, then a page object
	// and a content stream per page.
	var objects []string
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, text := range pages {
		content := contentStream(layout, text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func contentStream(layout Layout, text string) string {
	if text == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("BT\n/F1 12 Tf\n")
	if layout == LayoutLeading {
		sb.WriteString("14 TL\n72 720 Td\n")
	}
	for i, line := range strings.Split(text, "\n") {
		switch {
		case layout == LayoutLeading && i > 0:
			sb.WriteString("T*\n")
		case layout == LayoutOffset && i == 0:
			sb.WriteString("72 720 Td\n")
		case layout == LayoutOffset:
			sb.WriteString("0 -14 Td\n")
		}
		fmt.Fprintf(&sb, "(%s) Tj\n", escapePDFString(line))
	}
	sb.WriteString("ET")
	return sb.String()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// WritePDF writes BuildPDF(pages...) to dir/name and returns the path.
func WritePDF(t testing.TB, dir, name string, pages ...string) string {
	t.Helper()
	return WritePDFLayout(t, dir, name, LayoutOffset, pages...)
}

// WritePDFLayout writes BuildPDFLayout(layout, pages...) to dir/name and
// returns the path.
func WritePDFLayout(t testing.TB, dir, name string, layout Layout, pages ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildPDFLayout(layout, pages...), 0o644); err != nil {
		t.Fatalf("failed to write test pdf: %v", err)
	}
	return path
}

// WriteScript writes an executable shell script to dir/name and returns its
// path. Tests that depend on it are skipped on Windows.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures are not supported on windows")
	}
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write script %s: %v", name, err)
	}
	return path
}
