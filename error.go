package ibt

import "github.com/go-ibt/ibt/errs"

// Error is the typed carrier returned by this package's failing calls.
// Use errors.As to recover it: it exposes Kind, and, when the failure
// pinpoints a location, Offset and/or Variable.
type Error = errs.Error
