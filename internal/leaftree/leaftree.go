// Package leaftree implements component A: the abstract n-ary, byte-leaved
// tree (LeafTreeView) and its concrete, materialized form. It is the one
// data model the wire codecs (internal/wire/...) operate on; the root
// package re-exports these names so callers never import this path
// directly.
package leaftree

import "errors"

// ErrMixedNodeKinds is returned when a LeafTreeView calls both OnList and
// OnValue (or OnValue more than once) while being visited at a single node —
// an encoder-side invariant violation, not a decode-time format error.
var ErrMixedNodeKinds = errors.New("leaf tree view mixed list and value callbacks at one node")

// LeafTreeVisitor receives the structure of a LeafTreeView's single node.
// Exactly one of OnList (zero or more times, once per child, in order) or
// OnValue (exactly once) is the correct call sequence for a single Visit.
type LeafTreeVisitor interface {
	OnList(child LeafTreeView)
	OnValue(b byte)
}

// LeafTreeView is the n-ary, byte-leaved tree abstraction of component A.
// Visit must be re-entrant and idempotent: calling it twice yields an
// identical call sequence to the visitor.
type LeafTreeView interface {
	Visit(v LeafTreeVisitor)
}

// LeafKind tags which alternative a ConcreteLeafTree node holds.
type LeafKind uint8

const (
	// KindList marks a node as a List of children (possibly empty).
	KindList LeafKind = iota
	// KindValue marks a node as a single byte Value.
	KindValue
)

// ConcreteLeafTree is the materialized, in-memory form of a LeafTreeView.
// Exactly one of Children/Value is meaningful, selected by Kind.
type ConcreteLeafTree struct {
	Kind     LeafKind
	Children []*ConcreteLeafTree
	Value    byte
}

// NewLeafList builds a concrete List node from the given children.
func NewLeafList(children ...*ConcreteLeafTree) *ConcreteLeafTree {
	return &ConcreteLeafTree{Kind: KindList, Children: children}
}

// NewLeafValue builds a concrete Value node holding a single byte.
func NewLeafValue(b byte) *ConcreteLeafTree {
	return &ConcreteLeafTree{Kind: KindValue, Value: b}
}

// Visit implements LeafTreeView over the materialized tree.
func (c *ConcreteLeafTree) Visit(v LeafTreeVisitor) {
	if c.Kind == KindValue {
		v.OnValue(c.Value)
		return
	}
	for _, child := range c.Children {
		v.OnList(child)
	}
}

// Equal reports whether two concrete leaf trees are structurally identical.
func (c *ConcreteLeafTree) Equal(other *ConcreteLeafTree) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Kind != other.Kind {
		return false
	}
	if c.Kind == KindValue {
		return c.Value == other.Value
	}
	if len(c.Children) != len(other.Children) {
		return false
	}
	for i, child := range c.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

type leafMaterializer struct {
	node     *ConcreteLeafTree
	sawValue bool
	sawList  bool
	err      error
}

func (m *leafMaterializer) OnList(child LeafTreeView) {
	if m.err != nil {
		return
	}
	if m.sawValue {
		m.err = ErrMixedNodeKinds
		return
	}
	m.sawList = true
	concreteChild, err := CopyViewToConcrete(child)
	if err != nil {
		m.err = err
		return
	}
	m.node.Children = append(m.node.Children, concreteChild)
}

func (m *leafMaterializer) OnValue(b byte) {
	if m.err != nil {
		return
	}
	if m.sawList || m.sawValue {
		m.err = ErrMixedNodeKinds
		return
	}
	m.sawValue = true
	m.node.Kind = KindValue
	m.node.Value = b
}

// CopyViewToConcrete materializes any LeafTreeView into the concrete form.
// A view that calls neither OnList nor OnValue is treated as an empty List
// (the degenerate empty-input edge case).
func CopyViewToConcrete(view LeafTreeView) (*ConcreteLeafTree, error) {
	m := &leafMaterializer{node: &ConcreteLeafTree{Kind: KindList}}
	view.Visit(m)
	if m.err != nil {
		return nil, m.err
	}
	return m.node, nil
}
