package store

import "errors"

var (
	// ErrNotFound is returned by Get when a chunk has never been created.
	ErrNotFound = errors.New("store: chunk not found")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store: is closed")

	// ErrBadRange is returned by Range when low exceeds high on any axis.
	ErrBadRange = errors.New("store: range low exceeds high")
)
