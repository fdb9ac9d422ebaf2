// Package classify labels lines of extracted text with a coarse structural
// role using only the text itself.
package classify

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Role is the inferred structural label of a line.
type Role string

const (
	Title     Role = "Title"
	Subtitle  Role = "Subtitle"
	Paragraph Role = "Paragraph"
	Text      Role = "Text"
)

const (
	maxTitleLen    = 50
	maxSubtitleLen = 100
	minParagraph   = 20
)

// ErrEmptyLine is returned when Classify is called with an empty line.
// Callers are expected to drop blank lines first (see Lines).
var ErrEmptyLine = errors.New("classify: empty line")

// Line is a classified line of text.
type Line struct {
	Role  Role   `json:"role" yaml:"role"`
	Text  string `json:"text" yaml:"text"`
	Level int    `json:"level" yaml:"level"`
}

// Classify returns the role and nesting level for a single non-empty line.
// Rules are applied in order and the first match wins:
//
//	all upper-case, at most 50 runes          -> Title, 1
//	upper-case first rune, at most 100 runes,
//	not ending in "."                         -> Subtitle, 2
//	more than 20 runes                        -> Paragraph, 3
//	anything else                             -> Text, 3
func Classify(line string) (Role, int, error) {
	if line == "" {
		return "", 0, ErrEmptyLine
	}
	n := utf8.RuneCountInString(line)

	if strings.ToUpper(line) == line && n <= maxTitleLen {
		return Title, 1, nil
	}

	first, _ := utf8.DecodeRuneInString(line)
	if unicode.IsUpper(first) && n <= maxSubtitleLen && !strings.HasSuffix(line, ".") {
		return Subtitle, 2, nil
	}

	if n > minParagraph {
		return Paragraph, 3, nil
	}
	return Text, 3, nil
}

// Lines strips every line of text, drops the blank ones and classifies the
// rest in their original order.
func Lines(text string) []Line {
	var out []Line
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		role, level, err := Classify(line)
		if err != nil {
			continue
		}
		out = append(out, Line{Role: role, Text: line, Level: level})
	}
	return out
}
