package treecodec

import (
	"errors"
	"fmt"
)

// ErrFieldArity is returned by ExpectSingleChild when a field expected to
// hold exactly one child holds zero or more than one (the
// original's visit_single_field helper panics on this; treecodec reports it
// as an ordinary error instead since it is caller-triggerable, not a bug).
var ErrFieldArity = errors.New("typed value map field does not have exactly one child")

// TypeVisitor receives a TypedValueTree node's content: exactly one of
// OnMap or OnLeaf is called, exactly once, per Visit.
type TypeVisitor interface {
	OnMap(typeID TypeID, m MapView)
	OnLeaf(typeID TypeID, data []byte)
}

// TypeView is the top level of the three layered TypedValueTree views
// (component B): it exposes the node's type-id and its Struct/Leaf content.
type TypeView interface {
	Visit(v TypeVisitor)
}

// MapVisitor receives one OnEntry callback per struct field, in whatever
// order the MapView chooses to present them (insertion order on the
// concrete form). The adapter sorts the entries it receives by field-id
// itself, so encoding is canonical whatever order a MapView uses.
type MapVisitor interface {
	OnEntry(fieldID FieldID, l ListView)
}

// MapView is the middle layer: a Struct node's field-id -> children mapping.
type MapView interface {
	Visit(v MapVisitor)
}

// ListVisitor receives one OnChild callback per element of a field's child
// sequence, in order.
type ListVisitor interface {
	OnChild(t TypeView)
}

// ListView is the bottom layer: the ordered sequence of children under one
// struct field, or under VisitSingleField/VisitListField.
type ListView interface {
	Visit(v ListVisitor)
}

// ValueKind tags which alternative a ConcreteTypedValueTree node holds.
type ValueKind uint8

const (
	// ValueKindStruct marks a node as a field-id -> children mapping.
	ValueKindStruct ValueKind = iota
	// ValueKindLeaf marks a node as a byte-vector terminal.
	ValueKindLeaf
)

// ConcreteMapEntry is one field-id -> ordered-children pair of a
// materialized Struct node. Entry order mirrors the order on_entry was
// called in (a determinism requirement for copy_to_concrete).
type ConcreteMapEntry struct {
	FieldID  FieldID
	Children []*ConcreteTypedValueTree
}

// ConcreteTypedValueTree is the materialized, in-memory form of a TypeView.
type ConcreteTypedValueTree struct {
	TypeID  TypeID
	Kind    ValueKind
	Entries []ConcreteMapEntry // meaningful iff Kind == ValueKindStruct
	Leaf    []byte             // meaningful iff Kind == ValueKindLeaf
}

// NewStructNode builds a concrete Struct node from its entries, in the
// given order.
func NewStructNode(typeID TypeID, entries ...ConcreteMapEntry) *ConcreteTypedValueTree {
	return &ConcreteTypedValueTree{TypeID: typeID, Kind: ValueKindStruct, Entries: entries}
}

// NewLeafNode builds a concrete Leaf node from its byte payload.
func NewLeafNode(typeID TypeID, data []byte) *ConcreteTypedValueTree {
	return &ConcreteTypedValueTree{TypeID: typeID, Kind: ValueKindLeaf, Leaf: data}
}

// Visit implements TypeView over the materialized tree.
func (c *ConcreteTypedValueTree) Visit(v TypeVisitor) {
	if c.Kind == ValueKindLeaf {
		v.OnLeaf(c.TypeID, c.Leaf)
		return
	}
	v.OnMap(c.TypeID, concreteMapView{entries: c.Entries})
}

type concreteMapView struct{ entries []ConcreteMapEntry }

func (m concreteMapView) Visit(v MapVisitor) {
	for _, e := range m.entries {
		v.OnEntry(e.FieldID, concreteListView{children: e.Children})
	}
}

type concreteListView struct{ children []*ConcreteTypedValueTree }

func (l concreteListView) Visit(v ListVisitor) {
	for _, c := range l.children {
		v.OnChild(c)
	}
}

// Equal reports whether two concrete typed value trees are structurally
// identical (type-ids, field-ids, leaf bytes, and child order all compared;
// map entry order is NOT compared: order is not semantically
// significant").
func (c *ConcreteTypedValueTree) Equal(other *ConcreteTypedValueTree) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.TypeID != other.TypeID || c.Kind != other.Kind {
		return false
	}
	if c.Kind == ValueKindLeaf {
		return string(c.Leaf) == string(other.Leaf)
	}
	if len(c.Entries) != len(other.Entries) {
		return false
	}
	byField := make(map[FieldID]ConcreteMapEntry, len(other.Entries))
	for _, e := range other.Entries {
		byField[e.FieldID] = e
	}
	for _, e := range c.Entries {
		oe, ok := byField[e.FieldID]
		if !ok || len(e.Children) != len(oe.Children) {
			return false
		}
		for i, child := range e.Children {
			if !child.Equal(oe.Children[i]) {
				return false
			}
		}
	}
	return true
}

// VisitSingleField emits a single-element child list for fieldID: a pure
// view construction that performs no copies.
func VisitSingleField(mv MapVisitor, fieldID FieldID, value TypeView) {
	mv.OnEntry(fieldID, singleFieldListView{value})
}

type singleFieldListView struct{ v TypeView }

func (s singleFieldListView) Visit(lv ListVisitor) { lv.OnChild(s.v) }

// VisitListField iterates an existing sequence as fieldID's children,
// without copying it.
func VisitListField(mv MapVisitor, fieldID FieldID, seq []TypeView) {
	mv.OnEntry(fieldID, sliceListView(seq))
}

type sliceListView []TypeView

func (s sliceListView) Visit(lv ListVisitor) {
	for _, v := range s {
		lv.OnChild(v)
	}
}

// ExpectSingleChild materializes l and returns its one child, or
// ErrFieldArity if l does not hold exactly one.
func ExpectSingleChild(l ListView) (*ConcreteTypedValueTree, error) {
	lm := &listMaterializer{}
	l.Visit(lm)
	if lm.err != nil {
		return nil, lm.err
	}
	if len(lm.children) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrFieldArity, len(lm.children))
	}
	return lm.children[0], nil
}

type typeMaterializer struct {
	node   *ConcreteTypedValueTree
	called bool
	err    error
}

func (m *typeMaterializer) OnMap(typeID TypeID, mv MapView) {
	if m.err != nil {
		return
	}
	if m.called {
		m.err = errors.New("type view invoked on_map/on_leaf more than once")
		return
	}
	m.called = true
	m.node.TypeID = typeID
	m.node.Kind = ValueKindStruct

	mm := &mapMaterializer{}
	mv.Visit(mm)
	if mm.err != nil {
		m.err = mm.err
		return
	}
	m.node.Entries = mm.entries
}

func (m *typeMaterializer) OnLeaf(typeID TypeID, data []byte) {
	if m.err != nil {
		return
	}
	if m.called {
		m.err = errors.New("type view invoked on_map/on_leaf more than once")
		return
	}
	m.called = true
	m.node.TypeID = typeID
	m.node.Kind = ValueKindLeaf
	m.node.Leaf = append([]byte(nil), data...)
}

type mapMaterializer struct {
	entries []ConcreteMapEntry
	seen    map[FieldID]bool
	err     error
}

func (m *mapMaterializer) OnEntry(fieldID FieldID, l ListView) {
	if m.err != nil {
		return
	}
	if m.seen == nil {
		m.seen = make(map[FieldID]bool)
	}
	if m.seen[fieldID] {
		m.err = fmt.Errorf("duplicate field id %x in map", fieldID)
		return
	}
	m.seen[fieldID] = true

	lm := &listMaterializer{}
	l.Visit(lm)
	if lm.err != nil {
		m.err = lm.err
		return
	}
	m.entries = append(m.entries, ConcreteMapEntry{FieldID: fieldID, Children: lm.children})
}

type listMaterializer struct {
	children []*ConcreteTypedValueTree
	err      error
}

func (m *listMaterializer) OnChild(t TypeView) {
	if m.err != nil {
		return
	}
	c, err := CopyToConcrete(t)
	if err != nil {
		m.err = err
		return
	}
	m.children = append(m.children, c)
}

// CopyToConcrete materializes any TypeView into the concrete form, per
// the determinism requirement that entry order is preserved as called.
func CopyToConcrete(view TypeView) (*ConcreteTypedValueTree, error) {
	node := &ConcreteTypedValueTree{}
	m := &typeMaterializer{node: node}
	view.Visit(m)
	if m.err != nil {
		return nil, m.err
	}
	if !m.called {
		return nil, errors.New("type view did not call on_map or on_leaf")
	}
	return node, nil
}
