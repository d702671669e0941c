package treecodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tid(n byte) TypeID  { return NewTypeID(uint64(n), 0) }
func fid(n byte) FieldID { return NewFieldID(uint64(n), 0) }

func TestCopyToConcrete_Leaf(t *testing.T) {
	leaf := NewLeafNode(tid(1), []byte{9, 8, 7})
	got, err := CopyToConcrete(leaf)
	require.NoError(t, err)
	require.True(t, got.Equal(leaf))
}

func TestCopyToConcrete_Struct(t *testing.T) {
	child := NewLeafNode(tid(2), []byte{1})
	structNode := NewStructNode(tid(1), ConcreteMapEntry{
		FieldID:  fid(1),
		Children: []*ConcreteTypedValueTree{child},
	})

	got, err := CopyToConcrete(structNode)
	require.NoError(t, err)
	require.True(t, got.Equal(structNode))
}

func TestEqual_MapEntryOrderInsensitive(t *testing.T) {
	a := NewStructNode(tid(1),
		ConcreteMapEntry{FieldID: fid(1), Children: []*ConcreteTypedValueTree{NewLeafNode(tid(2), []byte{1})}},
		ConcreteMapEntry{FieldID: fid(2), Children: []*ConcreteTypedValueTree{NewLeafNode(tid(2), []byte{2})}},
	)
	b := NewStructNode(tid(1),
		ConcreteMapEntry{FieldID: fid(2), Children: []*ConcreteTypedValueTree{NewLeafNode(tid(2), []byte{2})}},
		ConcreteMapEntry{FieldID: fid(1), Children: []*ConcreteTypedValueTree{NewLeafNode(tid(2), []byte{1})}},
	)
	require.True(t, a.Equal(b))
}

func TestEqual_ChildOrderSensitive(t *testing.T) {
	a := NewStructNode(tid(1), ConcreteMapEntry{
		FieldID: fid(1),
		Children: []*ConcreteTypedValueTree{
			NewLeafNode(tid(2), []byte{1}),
			NewLeafNode(tid(2), []byte{2}),
		},
	})
	b := NewStructNode(tid(1), ConcreteMapEntry{
		FieldID: fid(1),
		Children: []*ConcreteTypedValueTree{
			NewLeafNode(tid(2), []byte{2}),
			NewLeafNode(tid(2), []byte{1}),
		},
	})
	require.False(t, a.Equal(b))
}

func TestCopyToConcrete_DuplicateFieldIDRejected(t *testing.T) {
	view := dupFieldView{}
	_, err := CopyToConcrete(view)
	require.Error(t, err)
}

type dupFieldView struct{}

func (dupFieldView) Visit(v TypeVisitor) { v.OnMap(tid(1), dupFieldMapView{}) }

type dupFieldMapView struct{}

func (dupFieldMapView) Visit(v MapVisitor) {
	leaf := NewLeafNode(tid(2), []byte{1})
	VisitSingleField(v, fid(1), leaf)
	VisitSingleField(v, fid(1), leaf)
}

func TestCopyToConcrete_NeitherCallbackRejected(t *testing.T) {
	_, err := CopyToConcrete(silentView{})
	require.Error(t, err)
}

type silentView struct{}

func (silentView) Visit(v TypeVisitor) {}

func TestExpectSingleChild(t *testing.T) {
	leaf := NewLeafNode(tid(2), []byte{1})
	l := singleFieldListView{v: leaf}

	got, err := ExpectSingleChild(l)
	require.NoError(t, err)
	require.True(t, got.Equal(leaf))
}

func TestExpectSingleChild_WrongArity(t *testing.T) {
	empty := sliceListView(nil)
	_, err := ExpectSingleChild(empty)
	require.ErrorIs(t, err, ErrFieldArity)

	two := sliceListView([]TypeView{NewLeafNode(tid(2), []byte{1}), NewLeafNode(tid(2), []byte{2})})
	_, err = ExpectSingleChild(two)
	require.ErrorIs(t, err, ErrFieldArity)
}

func TestVisitListField(t *testing.T) {
	children := []TypeView{
		NewLeafNode(tid(2), []byte{1}),
		NewLeafNode(tid(2), []byte{2}),
		NewLeafNode(tid(2), []byte{3}),
	}

	cv := &captureMapVisitor{}
	VisitListField(cv, fid(1), children)
	require.Len(t, cv.entries, 1)

	lm := &listMaterializer{}
	cv.entries[0].lv.Visit(lm)
	require.NoError(t, lm.err)
	require.Len(t, lm.children, 3)
}

type captureMapVisitor struct {
	entries []struct {
		fieldID FieldID
		lv      ListView
	}
}

func (c *captureMapVisitor) OnEntry(fieldID FieldID, l ListView) {
	c.entries = append(c.entries, struct {
		fieldID FieldID
		lv      ListView
	}{fieldID, l})
}
