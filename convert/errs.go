package convert

import "errors"

var (
	// ErrConversionFailed reports a failure during a recursive build. In
	// debug mode the underlying cause is attached; otherwise the error
	// names only the source.
	ErrConversionFailed = errors.New("conversion failed")
)
