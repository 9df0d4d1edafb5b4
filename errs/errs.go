// Package errs defines the sentinel error values returned by the ibt
// packages. Callers should test against these with errors.Is; wrapped
// context (offset, variable name, file) is attached by the package that
// raises the error, not by errs itself.
package errs

import "errors"

var (
	// ErrNotFound is returned when the underlying file cannot be located.
	ErrNotFound = errors.New("ibt: file not found")
	// ErrIO wraps an unexpected error from the underlying storage.
	ErrIO = errors.New("ibt: io error")
	// ErrTruncated is returned when a read demanded more bytes than the
	// file offered.
	ErrTruncated = errors.New("ibt: truncated read")
	// ErrUnsupportedVersion is returned when FileHeader.Version is not 2.
	ErrUnsupportedVersion = errors.New("ibt: unsupported file version")
	// ErrUnknownVarType is returned when a VarHeader's type tag is outside {0..5}.
	ErrUnknownVarType = errors.New("ibt: unknown variable type")
	// ErrVarOutOfFrame is returned when a VarHeader's declared region
	// would read past the end of the sample frame.
	ErrVarOutOfFrame = errors.New("ibt: variable out of frame bounds")
	// ErrSessionInfoMalformed is returned when the session info YAML
	// blob fails to parse.
	ErrSessionInfoMalformed = errors.New("ibt: session info malformed")
	// ErrProjectionEmpty is returned when, after filtering unknown
	// names, no projected variable resolved against the dictionary.
	ErrProjectionEmpty = errors.New("ibt: projection resolved no variables")
	// ErrCancelled is returned when a caller-supplied context was
	// cancelled mid-operation. It is not logged as an error.
	ErrCancelled = errors.New("ibt: cancelled")
	// ErrShortRead is returned during iteration when fewer than BufLen
	// bytes are available for a sample frame.
	ErrShortRead = errors.New("ibt: short read")
	// ErrClosed is returned when an operation is attempted on a
	// Telemetry handle that has already been closed.
	ErrClosed = errors.New("ibt: handle closed")
)

// Kind identifies which sentinel an *Error carries, so a caller can
// switch on it without holding a reference to the errs package's
// sentinel values directly.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindIO
	KindTruncated
	KindUnsupportedVersion
	KindUnknownVarType
	KindVarOutOfFrame
	KindSessionInfoMalformed
	KindProjectionEmpty
	KindCancelled
	KindShortRead
	KindClosed
)

// kindOf maps each sentinel to its Kind, so New and Wrap don't need a
// switch statement duplicated at every call site.
var kindOf = map[error]Kind{
	ErrNotFound:             KindNotFound,
	ErrIO:                   KindIO,
	ErrTruncated:            KindTruncated,
	ErrUnsupportedVersion:   KindUnsupportedVersion,
	ErrUnknownVarType:       KindUnknownVarType,
	ErrVarOutOfFrame:        KindVarOutOfFrame,
	ErrSessionInfoMalformed: KindSessionInfoMalformed,
	ErrProjectionEmpty:      KindProjectionEmpty,
	ErrCancelled:            KindCancelled,
	ErrShortRead:            KindShortRead,
	ErrClosed:               KindClosed,
}
