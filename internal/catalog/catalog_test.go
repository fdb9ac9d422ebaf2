package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
	"github.com/CarlosRamz1/pdf-converter/internal/testutil"
)

func TestSortByNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "already sorted",
			input:    []string{"book-1.pdf", "book-2.pdf", "book-3.pdf"},
			expected: []string{"book-1.pdf", "book-2.pdf", "book-3.pdf"},
		},
		{
			name:     "reverse order",
			input:    []string{"book-3.pdf", "book-2.pdf", "book-1.pdf"},
			expected: []string{"book-1.pdf", "book-2.pdf", "book-3.pdf"},
		},
		{
			name:     "mixed with double digits",
			input:    []string{"book-10.pdf", "book-2.pdf", "book-1.pdf"},
			expected: []string{"book-1.pdf", "book-2.pdf", "book-10.pdf"},
		},
		{
			name:     "numbered and unnumbered",
			input:    []string{"book-2.pdf", "book.pdf", "book-1.pdf"},
			expected: []string{"book.pdf", "book-1.pdf", "book-2.pdf"},
		},
		{
			name:     "upper-case extension",
			input:    []string{"scan-2.PDF", "scan-1.pdf"},
			expected: []string{"scan-1.pdf", "scan-2.PDF"},
		},
		{
			name:     "unnumbered alphabetical",
			input:    []string{"zeta.pdf", "alpha.pdf"},
			expected: []string{"alpha.pdf", "zeta.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SortByNumber(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSortByNumber_DoesNotMutateInput(t *testing.T) {
	in := []string{"b-2.pdf", "b-1.pdf"}
	SortByNumber(in)
	if in[0] != "b-2.pdf" {
		t.Error("input slice was modified")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePDF(t, dir, "part-2.pdf", "two")
	testutil.WritePDF(t, dir, "part-1.pdf", "one", "one again")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"broken.pdf", "part-1.pdf", "part-2.pdf"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}

	if entries[0].Error == "" {
		t.Error("expected an error for the broken PDF")
	}
	if entries[1].Error != "" || entries[1].Pages != 2 {
		t.Errorf("unexpected entry %+v", entries[1])
	}
	if entries[2].Pages != 1 || entries[2].Size == 0 {
		t.Errorf("unexpected entry %+v", entries[2])
	}
}

func TestList_MissingDir(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "nope"))
	if !failure.Is(err, failure.FileNotFound) {
		t.Fatalf("expected FileNotFound, got %v", err)
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "a-2.pdf", "x")
	b := testutil.WritePDF(t, dir, "a-1.pdf", "x")
	missing := filepath.Join(dir, "missing.pdf")

	got, err := Expand([]string{dir, missing})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	want := []string{b, a, missing}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}
