package template

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/treecodec/internal/leaftree"
)

func TestCheck_ListArityAndConstants(t *testing.T) {
	tree := leaftree.NewLeafList(leaftree.NewLeafValue(1), leaftree.NewLeafValue(2))
	tmpl := List(ConstantValue(1), ConstantValue(2))
	require.NoError(t, Check(tree, tmpl))
}

func TestCheck_ArityMismatch(t *testing.T) {
	tree := leaftree.NewLeafList(leaftree.NewLeafValue(1))
	tmpl := List(ConstantValue(1), ConstantValue(2))
	require.ErrorIs(t, Check(tree, tmpl), ErrArityMismatch)
}

func TestCheck_ConstantMismatch(t *testing.T) {
	tree := leaftree.NewLeafValue(5)
	tmpl := ConstantValue(6)
	require.ErrorIs(t, Check(tree, tmpl), ErrConstantMismatch)
}

func TestCheck_KindMismatch(t *testing.T) {
	tree := leaftree.NewLeafList()
	tmpl := ConstantValue(1)
	require.ErrorIs(t, Check(tree, tmpl), ErrKindMismatch)
}

func TestCheck_ValueFromStreamAcceptsAnyByte(t *testing.T) {
	tmpl := ValueFromStream()
	require.NoError(t, Check(leaftree.NewLeafValue(0), tmpl))
	require.NoError(t, Check(leaftree.NewLeafValue(255), tmpl))
	require.Error(t, Check(leaftree.NewLeafList(), tmpl))
}

func TestCheck_TreeFromStreamAcceptsAnySubtree(t *testing.T) {
	tmpl := TreeFromStream()
	require.NoError(t, Check(leaftree.NewLeafValue(0), tmpl))
	require.NoError(t, Check(leaftree.NewLeafList(leaftree.NewLeafList(), leaftree.NewLeafValue(1)), tmpl))
}

func TestCheck_TemplateUseRecurses(t *testing.T) {
	inner := ConstantValue(42)
	tmpl := List(Use(inner), Use(inner))
	tree := leaftree.NewLeafList(leaftree.NewLeafValue(42), leaftree.NewLeafValue(42))
	require.NoError(t, Check(tree, tmpl))

	badTree := leaftree.NewLeafList(leaftree.NewLeafValue(42), leaftree.NewLeafValue(1))
	require.ErrorIs(t, Check(badTree, tmpl), ErrConstantMismatch)
}

func TestCheck_TemplateUseCycleTolerated(t *testing.T) {
	// A recursive list template: the first element is a value and the
	// second is another instance of the same list shape. The cycle is only in the
	// template graph — the concrete tree it is checked against is always
	// finite.
	recursive := &Template{Kind: KindList}
	recursive.Children = []*Template{ValueFromStream(), Use(recursive)}

	tree := leaftree.NewLeafList(
		leaftree.NewLeafValue(1),
		leaftree.NewLeafList(leaftree.NewLeafValue(2), leaftree.NewLeafList()),
	)

	require.NoError(t, Check(tree, recursive))
}

func TestCheck_DanglingTemplateUse(t *testing.T) {
	tmpl := &Template{Kind: KindTemplateUse}
	require.ErrorIs(t, Check(leaftree.NewLeafValue(1), tmpl), ErrDanglingTemplateUse)
}

func TestCheckBytePattern_AlwaysUnsupported(t *testing.T) {
	err := CheckBytePattern(leaftree.NewLeafValue(1), &BytePatternTemplate{})
	require.ErrorIs(t, err, ErrUnsupportedBytePattern)
}
