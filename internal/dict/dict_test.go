package dict

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/treecodec/internal/leaftree"
)

func TestRecordAndLookup(t *testing.T) {
	table := New()
	a := leaftree.NewLeafList(leaftree.NewLeafValue(1), leaftree.NewLeafValue(2))
	b := leaftree.NewLeafList(leaftree.NewLeafValue(1), leaftree.NewLeafValue(2))
	c := leaftree.NewLeafList(leaftree.NewLeafValue(3))

	_, ok := table.Lookup(a)
	require.False(t, ok)

	table.Record(a)
	idx, ok := table.Lookup(b)
	require.True(t, ok, "structurally identical subtree should hit")
	require.Equal(t, 0, idx)

	table.Record(b) // no-op: already present
	require.Equal(t, 1, table.Len())

	table.Record(c)
	require.Equal(t, 2, table.Len())

	got, ok := table.Get(1)
	require.True(t, ok)
	require.True(t, got.Equal(c))

	_, ok = table.Get(99)
	require.False(t, ok)
}

func TestRecordPostOrderGrowth(t *testing.T) {
	// The dictionary only ever stores List subtrees: a child List
	// is recorded before its parent, mirroring the post-order insertion
	// the compressed codec performs.
	table := New()
	inner := leaftree.NewLeafList(leaftree.NewLeafValue(42))
	outer := leaftree.NewLeafList(inner, inner)

	table.Record(inner)
	table.Record(outer)

	require.Equal(t, 2, table.Len())
	first, _ := table.Get(0)
	require.True(t, first.Equal(inner))
	second, _ := table.Get(1)
	require.True(t, second.Equal(outer))
}
