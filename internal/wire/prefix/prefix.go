// Package prefix implements components F and G: the length-prefixed
// LeafTree codec with an inline short form for small lists, and its
// subtree-deduplicating extension.
package prefix

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/scigolib/treecodec/internal/leaftree"
	"github.com/scigolib/treecodec/internal/utils"
	"github.com/scigolib/treecodec/internal/wireerr"
)

// Wire markers for the length-prefixed grammar.
const (
	ListLong    byte = 0x00
	ValueMarker byte = 0x01

	// InlineListBase..0xFF encode a list length of 0..127 in the marker
	// byte itself: InlineListBase + n.
	InlineListBase byte = 0x80
	InlineListMax       = 0xFF - int(InlineListBase) // 127

	// TemplateUse is the compressed codec's dictionary back-reference
	// marker. It lives in this package (rather than its own) because
	// it shares the same length-prefix grammar for everything else.
	TemplateUse byte = 0x04
)

// Encode serializes view using the Prefix wire grammar (no compression).
// Lists of length <= 127 always use the inline marker form; this is the
// canonicalization rule that makes encoding deterministic and testable.
func Encode(view leaftree.LeafTreeView) ([]byte, error) {
	concrete, err := leaftree.CopyViewToConcrete(view)
	if err != nil {
		return nil, utils.WrapError("prefix encode", err)
	}
	if concrete.Kind == leaftree.KindList && len(concrete.Children) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	encodeNode(&buf, concrete)
	return buf.Bytes(), nil
}

func encodeNode(buf *bytes.Buffer, node *leaftree.ConcreteLeafTree) {
	if node.Kind == leaftree.KindValue {
		buf.WriteByte(ValueMarker)
		buf.WriteByte(node.Value)
		return
	}
	writeListMarker(buf, len(node.Children))
	for _, child := range node.Children {
		encodeNode(buf, child)
	}
}

func writeListMarker(buf *bytes.Buffer, count int) {
	if count <= InlineListMax {
		buf.WriteByte(InlineListBase + byte(count))
		return
	}
	buf.WriteByte(ListLong)
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(count))
	buf.Write(lenBuf[:])
}

// Decode parses data as a Prefix-encoded root node and replays it to
// visitor. Both the long and inline list forms are accepted on decode.
func Decode(data []byte, visitor leaftree.LeafTreeVisitor) error {
	if len(data) == 0 {
		return nil
	}

	node, pos, err := decodeNode(data, 0)
	if err != nil {
		return utils.WrapError("prefix decode", err)
	}
	if pos != len(data) {
		return utils.WrapError("prefix decode", wireerr.ErrTrailingData)
	}

	node.Visit(visitor)
	return nil
}

func decodeNode(data []byte, pos int) (*leaftree.ConcreteLeafTree, int, error) {
	if pos >= len(data) {
		return nil, pos, wireerr.ErrTruncatedInput
	}
	marker := data[pos]
	pos++

	switch {
	case marker == ValueMarker:
		if pos >= len(data) {
			return nil, pos, wireerr.ErrTruncatedInput
		}
		return leaftree.NewLeafValue(data[pos]), pos + 1, nil

	case marker == ListLong:
		if pos+8 > len(data) {
			return nil, pos, wireerr.ErrTruncatedInput
		}
		count := binary.LittleEndian.Uint64(data[pos : pos+8])
		pos += 8
		return decodeChildren(data, pos, count)

	case marker >= InlineListBase:
		count := uint64(marker - InlineListBase)
		return decodeChildren(data, pos, count)

	default:
		return nil, pos, wireerr.ErrUnknownMarker
	}
}

func decodeChildren(data []byte, pos int, count uint64) (*leaftree.ConcreteLeafTree, int, error) {
	if err := checkListLength(data, pos, count); err != nil {
		return nil, pos, err
	}

	children := make([]*leaftree.ConcreteLeafTree, 0, count)
	for i := uint64(0); i < count; i++ {
		child, next, err := decodeNode(data, pos)
		if err != nil {
			return nil, next, err
		}
		children = append(children, child)
		pos = next
	}
	return leaftree.NewLeafList(children...), pos, nil
}

// checkListLength guards against a malformed length prefix before it is
// used to size a slice allocation or drive a decode loop (a "count
// overflow" error condition).
func checkListLength(data []byte, pos int, count uint64) error {
	if err := utils.ValidateBufferSize(count, utils.MaxDecodedListLength, "list length"); err != nil {
		return fmt.Errorf("%w: %s", wireerr.ErrCountOverflow, err)
	}
	// Every child consumes at least one marker byte, so a count that
	// exceeds the remaining bytes can never be satisfied.
	if count > uint64(len(data)-pos) {
		return fmt.Errorf("%w: declared %d children, only %d bytes remain",
			wireerr.ErrCountOverflow, count, len(data)-pos)
	}
	return nil
}
