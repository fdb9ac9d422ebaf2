package classify

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		role  Role
		level int
	}{
		{"upper-case heading", "HELLO WORLD", Title, 1},
		{"upper-case with digits", "CHAPTER 1: INTRODUCTION", Title, 1},
		{"digits only count as upper", "2024", Title, 1},
		{"upper-case at limit", strings.Repeat("A", 50), Title, 1},
		{"upper-case past limit falls to subtitle", strings.Repeat("A", 51), Subtitle, 2},
		{"capitalized short line", "Introduction", Subtitle, 2},
		{"capitalized ending with period", "The end.", Text, 3},
		{"capitalized long sentence with period", "This is a paragraph that is definitely long enough.", Paragraph, 3},
		{"capitalized at subtitle limit", "A" + strings.Repeat("b", 99), Subtitle, 2},
		{"capitalized past subtitle limit", "A" + strings.Repeat("b", 100), Paragraph, 3},
		{"lower-case long line", "and then the committee agreed on the terms", Paragraph, 3},
		{"lower-case short", "ok", Text, 3},
		{"lower-case exactly 20", strings.Repeat("x", 20), Text, 3},
		{"lower-case 21", strings.Repeat("x", 21), Paragraph, 3},
		{"accented upper-case", "ÉTICA Y CONDUCTA", Title, 1},
		{"accented capital first rune", "Ética profesional", Subtitle, 2},
		{"multi-byte length counts runes", "ñ" + strings.Repeat("é", 20), Paragraph, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, level, err := Classify(tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if role != tt.role || level != tt.level {
				t.Errorf("Classify(%q) = (%s, %d), want (%s, %d)", tt.line, role, level, tt.role, tt.level)
			}
		})
	}
}

func TestClassify_EmptyLine(t *testing.T) {
	_, _, err := Classify("")
	if !errors.Is(err, ErrEmptyLine) {
		t.Fatalf("expected ErrEmptyLine, got %v", err)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	line := "Section Two"
	r1, l1, _ := Classify(line)
	r2, l2, _ := Classify(line)
	if r1 != r2 || l1 != l2 {
		t.Error("Classify must be deterministic")
	}
}

func TestLines(t *testing.T) {
	text := "HELLO WORLD\n\nThis is a paragraph that is definitely long enough.\nok"

	got := Lines(text)
	want := []Line{
		{Role: Title, Text: "HELLO WORLD", Level: 1},
		{Role: Paragraph, Text: "This is a paragraph that is definitely long enough.", Level: 3},
		{Role: Text, Text: "ok", Level: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestLines_StripsAndSkipsWhitespace(t *testing.T) {
	got := Lines("   \n\t\n  Summary  \n")
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d: %+v", len(got), got)
	}
	if got[0].Text != "Summary" || got[0].Role != Subtitle {
		t.Errorf("unexpected line %+v", got[0])
	}
}

func TestLines_Empty(t *testing.T) {
	if got := Lines(""); len(got) != 0 {
		t.Errorf("expected no lines, got %+v", got)
	}
}
