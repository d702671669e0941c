package treecodec

import (
	"github.com/scigolib/treecodec/internal/wire/basic"
	"github.com/scigolib/treecodec/internal/wire/prefix"
	"github.com/scigolib/treecodec/internal/wireerr"
)

// Encoder turns a LeafTreeView into a flat byte sequence.
type Encoder interface {
	Encode(view LeafTreeView) ([]byte, error)
}

// Decoder replays a flat byte sequence to a LeafTreeVisitor.
type Decoder interface {
	Decode(data []byte, visitor LeafTreeVisitor) error
}

// Codec pairs an Encoder and a Decoder that agree on one wire grammar.
type Codec struct {
	encodeFn func(LeafTreeView) ([]byte, error)
	decodeFn func([]byte, LeafTreeVisitor) error
}

// Encode implements Encoder.
func (c Codec) Encode(view LeafTreeView) ([]byte, error) { return c.encodeFn(view) }

// Decode implements Decoder.
func (c Codec) Decode(data []byte, visitor LeafTreeVisitor) error { return c.decodeFn(data, visitor) }

var (
	// Basic is the one-byte-per-marker codec (component E): simplest to
	// read off the wire, used as the reference encoding in tests.
	Basic = Codec{encodeFn: basic.Encode, decodeFn: basic.Decode}

	// Prefix is the length-prefixed codec with a canonical inline form
	// for lists of 127 elements or fewer (component F).
	Prefix = Codec{encodeFn: prefix.Encode, decodeFn: prefix.Decode}

	// PrefixCompressed extends Prefix with a subtree-dedup dictionary
	// maintained in lock-step by encoder and decoder (component G).
	PrefixCompressed = Codec{encodeFn: prefix.EncodeCompressed, decodeFn: prefix.DecodeCompressed}
)

// EncodedLeafTree wraps an already-encoded byte sequence and a Decoder so
// the encoded form can itself be handed anywhere a LeafTreeView is
// expected (e.g. chained straight into the adapter's reverse direction)
// without a caller-visible intermediate decode step.
type EncodedLeafTree struct {
	Decoder Decoder
	Data    []byte
}

// Visit decodes Data and replays it to visitor. A malformed Data panics
// with the decode error, since LeafTreeView.Visit has no error return;
// callers that need to handle decode failures should call Decoder.Decode
// directly instead of going through this wrapper.
func (e EncodedLeafTree) Visit(visitor LeafTreeVisitor) {
	if err := e.Decoder.Decode(e.Data, visitor); err != nil {
		panic(err)
	}
}

// Public format error sentinels, re-exported from the internal wire
// packages so callers can errors.Is against them without importing
// internal paths.
var (
	ErrUnknownMarker           = wireerr.ErrUnknownMarker
	ErrTruncatedInput          = wireerr.ErrTruncatedInput
	ErrTemplateIndexOutOfRange = wireerr.ErrTemplateIndexOutOfRange
	ErrCountOverflow           = wireerr.ErrCountOverflow
	ErrTrailingData            = wireerr.ErrTrailingData
)
