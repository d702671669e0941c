// Package wireerr holds the sentinel format errors shared by every
// LeafTree codec (internal/wire/basic, internal/wire/prefix), so callers
// can errors.Is against one stable value regardless of which codec
// produced it.
package wireerr

import "errors"

var (
	// ErrUnknownMarker is returned when a decoder reads a first byte that
	// does not match any marker its grammar defines.
	ErrUnknownMarker = errors.New("unknown marker byte")

	// ErrTruncatedInput is returned when the decoder runs out of bytes
	// before a node's encoding is complete.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrTemplateIndexOutOfRange is returned when a TEMPLATE_USE marker's
	// index does not refer to an already-recorded dictionary entry.
	ErrTemplateIndexOutOfRange = errors.New("template index out of range")

	// ErrCountOverflow is returned when a declared list length is larger
	// than could possibly be satisfied by the remaining input.
	ErrCountOverflow = errors.New("list length overflow")

	// ErrTrailingData is returned when bytes remain after a complete root
	// node has been decoded.
	ErrTrailingData = errors.New("trailing data after root node")
)
