package compose

import "errors"

var (
	// ErrSourceUnreadable reports a source that could not be opened or
	// parsed. The message names the offending source.
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrInclude reports an include declaration whose path is unusable.
	ErrInclude = errors.New("invalid include")

	// ErrIncludeCycle reports an include chain that revisits a document.
	ErrIncludeCycle = errors.New("include cycle")
)
