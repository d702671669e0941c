package prefix

import (
	"bytes"
	"encoding/binary"

	"github.com/scigolib/treecodec/internal/dict"
	"github.com/scigolib/treecodec/internal/leaftree"
	"github.com/scigolib/treecodec/internal/utils"
	"github.com/scigolib/treecodec/internal/wireerr"
)

// EncodeCompressed serializes view using the Prefix grammar extended with
// TEMPLATE_USE back-references. A fresh dictionary is built and
// consulted as the tree is walked post-order: every List subtree, whether
// it hits the dictionary or not, is recorded into it immediately after its
// children have been emitted.
func EncodeCompressed(view leaftree.LeafTreeView) ([]byte, error) {
	concrete, err := leaftree.CopyViewToConcrete(view)
	if err != nil {
		return nil, utils.WrapError("prefix-compressed encode", err)
	}
	if concrete.Kind == leaftree.KindList && len(concrete.Children) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	table := dict.New()
	encodeCompressedNode(&buf, concrete, table)
	return buf.Bytes(), nil
}

func encodeCompressedNode(buf *bytes.Buffer, node *leaftree.ConcreteLeafTree, table *dict.Table) {
	if node.Kind == leaftree.KindValue {
		buf.WriteByte(ValueMarker)
		buf.WriteByte(node.Value)
		return
	}

	if idx, ok := table.Lookup(node); ok {
		buf.WriteByte(TemplateUse)
		var idxBuf [4]byte
		binary.LittleEndian.PutUint32(idxBuf[:], uint32(idx))
		buf.Write(idxBuf[:])
		table.Record(node) // no-op: already present
		return
	}

	writeListMarker(buf, len(node.Children))
	for _, child := range node.Children {
		encodeCompressedNode(buf, child, table)
	}
	table.Record(node)
}

// DecodeCompressed parses data as a prefix-compressed root node and replays
// it to visitor. It rebuilds the same dictionary the encoder built, in the
// same post-order sequence, so a TEMPLATE_USE index always resolves to the
// subtree the encoder meant.
func DecodeCompressed(data []byte, visitor leaftree.LeafTreeVisitor) error {
	if len(data) == 0 {
		return nil
	}

	table := dict.New()
	node, pos, err := decodeCompressedNode(data, 0, table)
	if err != nil {
		return utils.WrapError("prefix-compressed decode", err)
	}
	if pos != len(data) {
		return utils.WrapError("prefix-compressed decode", wireerr.ErrTrailingData)
	}

	node.Visit(visitor)
	return nil
}

func decodeCompressedNode(data []byte, pos int, table *dict.Table) (*leaftree.ConcreteLeafTree, int, error) {
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

	case marker == TemplateUse:
		if pos+4 > len(data) {
			return nil, pos, wireerr.ErrTruncatedInput
		}
		idx := binary.LittleEndian.Uint32(data[pos : pos+4])
		pos += 4
		entry, ok := table.Get(int(idx))
		if !ok {
			return nil, pos, wireerr.ErrTemplateIndexOutOfRange
		}
		// The decoder never records on this branch: the subtree
		// was already recorded when it was first seen via LIST.
		return cloneLeafTree(entry), pos, nil

	case marker == ListLong:
		if pos+8 > len(data) {
			return nil, pos, wireerr.ErrTruncatedInput
		}
		count := binary.LittleEndian.Uint64(data[pos : pos+8])
		pos += 8
		return decodeCompressedChildren(data, pos, count, table)

	case marker >= InlineListBase:
		count := uint64(marker - InlineListBase)
		return decodeCompressedChildren(data, pos, count, table)

	default:
		return nil, pos, wireerr.ErrUnknownMarker
	}
}

func decodeCompressedChildren(data []byte, pos int, count uint64, table *dict.Table) (*leaftree.ConcreteLeafTree, int, error) {
	if err := checkListLength(data, pos, count); err != nil {
		return nil, pos, err
	}

	children := make([]*leaftree.ConcreteLeafTree, 0, count)
	for i := uint64(0); i < count; i++ {
		child, next, err := decodeCompressedNode(data, pos, table)
		if err != nil {
			return nil, next, err
		}
		children = append(children, child)
		pos = next
	}

	node := leaftree.NewLeafList(children...)
	table.Record(node)
	return node, pos, nil
}

// cloneLeafTree returns a deep copy of node. TEMPLATE_USE resolution hands
// out a dictionary entry that may be referenced again later; callers that
// mutate a decoded tree must not be able to reach back into the dictionary.
func cloneLeafTree(node *leaftree.ConcreteLeafTree) *leaftree.ConcreteLeafTree {
	if node.Kind == leaftree.KindValue {
		return leaftree.NewLeafValue(node.Value)
	}
	children := make([]*leaftree.ConcreteLeafTree, len(node.Children))
	for i, child := range node.Children {
		children[i] = cloneLeafTree(child)
	}
	return leaftree.NewLeafList(children...)
}
