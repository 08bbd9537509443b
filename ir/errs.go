package ir

import "errors"

var (
	// ErrDecode indicates malformed input handed to FromJSON.
	ErrDecode = errors.New("decode error")
)
