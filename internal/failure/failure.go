// Package failure defines the typed error kinds surfaced by a conversion.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a conversion failure.
type Kind int

const (
	Unknown Kind = iota
	FileNotFound
	UnreadablePDF
	ExtractionFailed
	RenderFailed
	OCREngineUnavailable
	WriteFailed
	DirectoryCreateFailed
	MissingDependency
	Canceled
)

var kindNames = map[Kind]string{
	Unknown:               "unknown",
	FileNotFound:          "file_not_found",
	UnreadablePDF:         "unreadable_pdf",
	ExtractionFailed:      "extraction_failed",
	RenderFailed:          "render_failed",
	OCREngineUnavailable:  "ocr_engine_unavailable",
	WriteFailed:           "write_failed",
	DirectoryCreateFailed: "directory_create_failed",
	MissingDependency:     "missing_dependency",
	Canceled:              "canceled",
}

// String returns the snake_case name used in CLI output.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a failure tagged with its Kind.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "render page 3"
	Path string // file the operation was working on, may be empty
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an *Error of the given kind.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
