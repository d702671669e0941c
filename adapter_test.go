package treecodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeViewer_LeafFlattensToTwoElementList(t *testing.T) {
	leaf := NewLeafNode(tid(9), []byte{1, 2, 3})
	flat, err := CopyViewToConcrete(TypeViewer(leaf))
	require.NoError(t, err)

	require.Equal(t, KindList, flat.Kind)
	require.Len(t, flat.Children, 2)

	typeIDBytes, err := leafListBytes(flat.Children[0])
	require.NoError(t, err)
	require.Equal(t, tid(9).Bytes(), typeIDBytes)

	content := flat.Children[1]
	require.Equal(t, KindList, content.Kind)
	payload, err := leafListBytes(content)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, payload)
}

func TestTypeViewer_StructEntriesSortedByFieldID(t *testing.T) {
	structNode := NewStructNode(tid(1),
		ConcreteMapEntry{FieldID: fid(9), Children: []*ConcreteTypedValueTree{NewLeafNode(tid(2), []byte{9})}},
		ConcreteMapEntry{FieldID: fid(1), Children: []*ConcreteTypedValueTree{NewLeafNode(tid(2), []byte{1})}},
	)

	flat, err := CopyViewToConcrete(TypeViewer(structNode))
	require.NoError(t, err)

	content := flat.Children[1]
	require.Len(t, content.Children, 1, "struct content holds exactly the map-marker list")
	markerList := content.Children[0]

	firstEntry := markerList.Children[0]
	firstFieldIDBytes, err := leafListBytes(firstEntry.Children[0])
	require.NoError(t, err)
	require.Equal(t, fid(1).Bytes(), firstFieldIDBytes, "entries must be sorted by field id regardless of insertion order")
}

func TestUnflatten_RoundTripsLeaf(t *testing.T) {
	original := NewLeafNode(tid(9), []byte{1, 2, 3})
	back, err := Unflatten(TypeViewer(original))
	require.NoError(t, err)
	require.True(t, original.Equal(back))
}

func TestUnflatten_RoundTripsStruct(t *testing.T) {
	original := NewStructNode(tid(1),
		ConcreteMapEntry{FieldID: fid(1), Children: []*ConcreteTypedValueTree{NewLeafNode(tid(2), []byte{1})}},
		ConcreteMapEntry{FieldID: fid(2), Children: []*ConcreteTypedValueTree{
			NewLeafNode(tid(2), []byte{2}),
			NewLeafNode(tid(2), []byte{3}),
		}},
	)
	back, err := Unflatten(TypeViewer(original))
	require.NoError(t, err)
	require.True(t, original.Equal(back))
}

func TestUnflatten_RoundTripsEmptyLeaf(t *testing.T) {
	original := NewLeafNode(tid(5), nil)
	back, err := Unflatten(TypeViewer(original))
	require.NoError(t, err)
	require.True(t, original.Equal(back))
}

func TestUnflatten_RoundTripsEmptyStruct(t *testing.T) {
	original := NewStructNode(tid(5))
	back, err := Unflatten(TypeViewer(original))
	require.NoError(t, err)
	require.True(t, original.Equal(back))
}

func TestUnflatten_RejectsMalformedShape(t *testing.T) {
	_, err := Unflatten(NewLeafList(NewLeafValue(1)))
	require.Error(t, err)
}
