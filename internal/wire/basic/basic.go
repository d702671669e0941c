// Package basic implements component E: the reference LeafTree codec.
// One byte marks each node; lists are brace-delimited. It exists to
// cross-check the more compact Prefix/PrefixCompressed codecs, and its
// bytes are small and unambiguous enough to spell out literally in tests.
package basic

import (
	"bytes"

	"github.com/scigolib/treecodec/internal/leaftree"
	"github.com/scigolib/treecodec/internal/utils"
	"github.com/scigolib/treecodec/internal/wireerr"
)

// Wire markers.
const (
	ListMarker byte = 0x00
	ValueMarker byte = 0x01
	ListEnd     byte = 0x02
)

// Encode serializes view using the Basic wire grammar. An empty root list
// encodes to an empty byte sequence (a deliberate top-level quirk).
func Encode(view leaftree.LeafTreeView) ([]byte, error) {
	concrete, err := leaftree.CopyViewToConcrete(view)
	if err != nil {
		return nil, utils.WrapError("basic encode", err)
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
	buf.WriteByte(ListMarker)
	for _, child := range node.Children {
		encodeNode(buf, child)
	}
	buf.WriteByte(ListEnd)
}

// Decode parses data as a Basic-encoded root node and replays it to visitor.
// An empty byte sequence decodes to an empty list, the mirror of Encode's
// top-level quirk.
func Decode(data []byte, visitor leaftree.LeafTreeVisitor) error {
	if len(data) == 0 {
		return nil
	}

	node, pos, err := decodeNode(data, 0)
	if err != nil {
		return utils.WrapError("basic decode", err)
	}
	if pos != len(data) {
		return utils.WrapError("basic decode", wireerr.ErrTrailingData)
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

	switch marker {
	case ValueMarker:
		if pos >= len(data) {
			return nil, pos, wireerr.ErrTruncatedInput
		}
		v := data[pos]
		return leaftree.NewLeafValue(v), pos + 1, nil

	case ListMarker:
		var children []*leaftree.ConcreteLeafTree
		for {
			if pos >= len(data) {
				return nil, pos, wireerr.ErrTruncatedInput
			}
			if data[pos] == ListEnd {
				return leaftree.NewLeafList(children...), pos + 1, nil
			}
			child, next, err := decodeNode(data, pos)
			if err != nil {
				return nil, next, err
			}
			children = append(children, child)
			pos = next
		}

	default:
		return nil, pos, wireerr.ErrUnknownMarker
	}
}
