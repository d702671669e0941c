// Package dict implements the subtree-dedup table shared by the encoder
// and decoder halves of the prefix-compressed codec (component G). Both
// sides insert structurally-identical subtrees in the same order, so the
// table assigns matching TEMPLATE_USE indices on both ends without any
// side-channel beyond the bytes already being exchanged.
package dict

import (
	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/scigolib/treecodec/internal/leaftree"
)

// logger traces dictionary hit/miss decisions at Debug level. It is a
// no-op by default so the library stays silent; cmd/treecodecbench wires
// a real logger in when its --debug flag is set.
var logger = zerolog.Nop()

// SetLogger installs l as the package-wide dictionary tracer. Not
// concurrency-safe to call while a Table is in use; intended to be set
// once at process startup.
func SetLogger(l zerolog.Logger) { logger = l }

type bucketEntry struct{ idx int }

// Table is a structural-equality dictionary of List subtrees. Lookup is
// O(1) average case: a content hash narrows candidates to a small bucket,
// then each candidate is confirmed with a deep structural comparison — the
// hash is only ever an index hint, never the equality decision itself.
type Table struct {
	buckets map[uint64][]bucketEntry
	entries []*leaftree.ConcreteLeafTree
}

// New returns an empty dictionary, scoped to a single encode or decode call
// (dictionaries are never persisted across calls).
func New() *Table {
	return &Table{buckets: make(map[uint64][]bucketEntry)}
}

// Lookup returns the index of node in the table, if an identical subtree
// was recorded previously.
func (t *Table) Lookup(node *leaftree.ConcreteLeafTree) (int, bool) {
	h := hashNode(node)
	for _, e := range t.buckets[h] {
		if t.entries[e.idx].Equal(node) {
			return e.idx, true
		}
	}
	return 0, false
}

// Record inserts node at the next index unless an identical subtree is
// already present, in which case it is a no-op. Both the
// encoder (on every List it processes, hit or miss) and the decoder (only
// on the LIST branch, never on TEMPLATE_USE) call Record post-order.
func (t *Table) Record(node *leaftree.ConcreteLeafTree) {
	if idx, ok := t.Lookup(node); ok {
		logger.Debug().Int("index", idx).Msg("dictionary record: already present")
		return
	}
	idx := len(t.entries)
	t.entries = append(t.entries, node)
	h := hashNode(node)
	t.buckets[h] = append(t.buckets[h], bucketEntry{idx: idx})
	logger.Debug().Int("index", idx).Int("children", len(node.Children)).Msg("dictionary record: new entry")
}

// Get returns the subtree recorded at idx, for TEMPLATE_USE resolution.
func (t *Table) Get(idx int) (*leaftree.ConcreteLeafTree, bool) {
	if idx < 0 || idx >= len(t.entries) {
		return nil, false
	}
	return t.entries[idx], true
}

// Len reports how many distinct subtrees have been recorded so far.
func (t *Table) Len() int { return len(t.entries) }

func hashNode(node *leaftree.ConcreteLeafTree) uint64 {
	d := xxhash.New()
	writeNode(d, node)
	return d.Sum64()
}

func writeNode(d *xxhash.Digest, node *leaftree.ConcreteLeafTree) {
	if node.Kind == leaftree.KindValue {
		_, _ = d.Write([]byte{1, node.Value})
		return
	}
	_, _ = d.Write([]byte{0})
	for _, child := range node.Children {
		writeNode(d, child)
	}
}
