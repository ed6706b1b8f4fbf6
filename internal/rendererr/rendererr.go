// Package rendererr defines the error taxonomy used across the render
// pipeline: sentinel errors for fatal input problems, and a small enum
// of recoverable warning kinds that the tokenizer, command registry and
// rasterizer report instead of aborting.
package rendererr

import "errors"

// Sentinel errors. Render returns ErrInvalidDimensions directly; an
// empty source renders a blank bitmap rather than ErrEmptySource; the
// symbol backend returns ErrUnsupportedFormat, which the rasterizer
// turns into a render-failure warning and a drawn placeholder.
var (
	ErrEmptySource       = errors.New("rendererr: empty ZPL source")
	ErrInvalidDimensions = errors.New("rendererr: canvas width/height must be positive")
	ErrUnsupportedFormat = errors.New("rendererr: symbol format not supported by this backend")
)

// WarningKind enumerates the recoverable problem categories a render
// pass can encounter. Values mirror spec §7's error taxonomy.
type WarningKind string

const (
	// KindTokenizer covers malformed prefixes and truncated field data
	// that fell back to the generic payload rule.
	KindTokenizer WarningKind = "TOKENIZER_WARNING"
	// KindUnknownCommand covers a code not present in the registry.
	KindUnknownCommand WarningKind = "UNKNOWN_COMMAND"
	// KindParameterOutOfRange covers a numeric parameter clamped to
	// its documented bound.
	KindParameterOutOfRange WarningKind = "PARAMETER_OUT_OF_RANGE"
	// KindRenderFailure covers a drawer that could not produce its
	// real output and fell back to a placeholder.
	KindRenderFailure WarningKind = "RENDER_FAILURE"
)

// messages gives a human-readable description per kind, the same
// code→message table shape as the teacher's ErrorCodes map.
var messages = map[WarningKind]string{
	KindTokenizer:           "malformed or truncated command payload",
	KindUnknownCommand:      "unrecognized command code",
	KindParameterOutOfRange: "numeric parameter outside documented range, clamped",
	KindRenderFailure:       "element failed to render, placeholder drawn instead",
}

// Warning is a single recoverable diagnostic produced during tokenize,
// parse or render. It never aborts the pipeline that produced it.
type Warning struct {
	Kind    WarningKind
	Offset  int // byte offset in source, -1 if not applicable
	Detail  string
	Wrapped error
}

func (w *Warning) Error() string {
	msg := messages[w.Kind]
	if w.Detail != "" {
		msg = msg + ": " + w.Detail
	}
	return msg
}

func (w *Warning) Unwrap() error { return w.Wrapped }

// New constructs a Warning with the given kind and detail.
func New(kind WarningKind, offset int, detail string) *Warning {
	return &Warning{Kind: kind, Offset: offset, Detail: detail}
}

// Message returns the human-readable description for a warning kind,
// used by the validator to render its message list.
func Message(kind WarningKind) string {
	return messages[kind]
}
