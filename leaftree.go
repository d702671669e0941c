package treecodec

import "github.com/scigolib/treecodec/internal/leaftree"

// LeafTreeVisitor receives the structure of a LeafTreeView's single node.
// Exactly one of OnList (zero or more times, once per child, in order) or
// OnValue (exactly once) is the correct call sequence for a single Visit.
type LeafTreeVisitor = leaftree.LeafTreeVisitor

// LeafTreeView is the n-ary, byte-leaved tree abstraction of component A.
// Visit must be re-entrant and idempotent: calling it twice yields an
// identical call sequence to the visitor.
type LeafTreeView = leaftree.LeafTreeView

// LeafKind tags which alternative a ConcreteLeafTree node holds.
type LeafKind = leaftree.LeafKind

const (
	// KindList marks a node as a List of children (possibly empty).
	KindList = leaftree.KindList
	// KindValue marks a node as a single byte Value.
	KindValue = leaftree.KindValue
)

// ConcreteLeafTree is the materialized, in-memory form of a LeafTreeView.
type ConcreteLeafTree = leaftree.ConcreteLeafTree

// ErrMixedNodeKinds is returned when a LeafTreeView calls both OnList and
// OnValue (or OnValue more than once) while being visited at a single node.
var ErrMixedNodeKinds = leaftree.ErrMixedNodeKinds

// NewLeafList builds a concrete List node from the given children.
func NewLeafList(children ...*ConcreteLeafTree) *ConcreteLeafTree {
	return leaftree.NewLeafList(children...)
}

// NewLeafValue builds a concrete Value node holding a single byte.
func NewLeafValue(b byte) *ConcreteLeafTree {
	return leaftree.NewLeafValue(b)
}

// CopyViewToConcrete materializes any LeafTreeView into the concrete form.
func CopyViewToConcrete(view LeafTreeView) (*ConcreteLeafTree, error) {
	return leaftree.CopyViewToConcrete(view)
}
