package treecodec

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// TypeViewer adapts a TypedValueTree view into a LeafTreeView by the
// canonical, deterministic flattening of a typed value tree. The adapter never
// materializes anything itself — it is a lazy composition of views driven
// by the codec that ultimately visits it.
func TypeViewer(view TypeView) LeafTreeView {
	return nodeFlattenView{view}
}

// nodeFlattenView flattens one TypedValueTree node to [TypeIdBytes, Content].
type nodeFlattenView struct{ tv TypeView }

func (n nodeFlattenView) Visit(v LeafTreeVisitor) {
	fc := &flattenCollector{}
	n.tv.Visit(fc)

	v.OnList(byteSliceView(fc.typeID[:]))
	if fc.isLeaf {
		v.OnList(byteSliceView(fc.leafData))
		return
	}
	v.OnList(listView{mapMarkerView{fc.mapView}})
}

type flattenCollector struct {
	typeID   TypeID
	isLeaf   bool
	leafData []byte
	mapView  MapView
}

func (f *flattenCollector) OnMap(typeID TypeID, m MapView) {
	f.typeID = typeID
	f.isLeaf = false
	f.mapView = m
}

func (f *flattenCollector) OnLeaf(typeID TypeID, data []byte) {
	f.typeID = typeID
	f.isLeaf = true
	f.leafData = data
}

// mapMarkerView flattens a Struct node's entries, sorted by field-id so
// that encoding is canonical regardless of the MapView's own iteration
// order (map key order is unspecified; sort before emission).
type mapMarkerView struct{ mv MapView }

type flattenEntry struct {
	fieldID FieldID
	lv      ListView
}

func (m mapMarkerView) Visit(v LeafTreeVisitor) {
	ec := &entryCollector{}
	m.mv.Visit(ec)

	slices.SortFunc(ec.entries, func(a, b flattenEntry) int {
		return a.fieldID.Compare(b.fieldID)
	})

	for _, e := range ec.entries {
		v.OnList(mapEntryView{e.fieldID, e.lv})
	}
}

type entryCollector struct{ entries []flattenEntry }

func (e *entryCollector) OnEntry(fieldID FieldID, l ListView) {
	e.entries = append(e.entries, flattenEntry{fieldID, l})
}

// mapEntryView flattens one [FieldIdBytes, ChildrenList] entry.
type mapEntryView struct {
	fieldID FieldID
	lv      ListView
}

func (e mapEntryView) Visit(v LeafTreeVisitor) {
	v.OnList(byteSliceView(e.fieldID[:]))
	v.OnList(childrenListView{e.lv})
}

// childrenListView flattens a field's child sequence, each recursively
// through nodeFlattenView.
type childrenListView struct{ lv ListView }

func (c childrenListView) Visit(v LeafTreeVisitor) {
	cc := &childCollector{}
	c.lv.Visit(cc)
	for _, child := range cc.children {
		v.OnList(nodeFlattenView{child})
	}
}

type childCollector struct{ children []TypeView }

func (c *childCollector) OnChild(t TypeView) { c.children = append(c.children, t) }

// byteSliceView presents a byte slice as a LeafTreeView List whose children
// are each a single Value leaf, in order.
type byteSliceView []byte

func (b byteSliceView) Visit(v LeafTreeVisitor) {
	for _, by := range b {
		v.OnList(valueView(by))
	}
}

type valueView byte

func (b valueView) Visit(v LeafTreeVisitor) { v.OnValue(byte(b)) }

// listView presents a fixed slice of children as a LeafTreeView List.
type listView []LeafTreeView

func (l listView) Visit(v LeafTreeVisitor) {
	for _, c := range l {
		v.OnList(c)
	}
}

// Unflatten is the reverse of TypeViewer: it materializes view and
// re-interprets it back into a ConcreteTypedValueTree using the same grammar,
// failing if the shape doesn't match (component C's contract binds both
// directions — this is what "adapter fidelity" round-trips through).
func Unflatten(view LeafTreeView) (*ConcreteTypedValueTree, error) {
	tree, err := CopyViewToConcrete(view)
	if err != nil {
		return nil, err
	}
	return unflattenNode(tree)
}

func unflattenNode(tree *ConcreteLeafTree) (*ConcreteTypedValueTree, error) {
	if tree.Kind != KindList || len(tree.Children) != 2 {
		return nil, errors.New("malformed typed value node: expected a 2-element list")
	}
	typeIDNode, contentNode := tree.Children[0], tree.Children[1]

	tidBytes, err := leafListBytes(typeIDNode)
	if err != nil {
		return nil, fmt.Errorf("reading type id: %w", err)
	}
	if len(tidBytes) != 16 {
		return nil, fmt.Errorf("type id must be 16 bytes, got %d", len(tidBytes))
	}
	var tid TypeID
	copy(tid[:], tidBytes)

	if contentNode.Kind != KindList {
		return nil, errors.New("content must be a list")
	}
	if len(contentNode.Children) == 0 {
		return NewLeafNode(tid, nil), nil
	}
	if contentNode.Children[0].Kind == KindList {
		// Map case: content holds exactly one child, the map marker list.
		if len(contentNode.Children) != 1 {
			return nil, errors.New("struct content must have exactly one map-marker child")
		}
		entries, err := unflattenMapMarker(contentNode.Children[0])
		if err != nil {
			return nil, err
		}
		return NewStructNode(tid, entries...), nil
	}

	data, err := leafListBytes(contentNode)
	if err != nil {
		return nil, fmt.Errorf("reading leaf payload: %w", err)
	}
	return NewLeafNode(tid, data), nil
}

func unflattenMapMarker(marker *ConcreteLeafTree) ([]ConcreteMapEntry, error) {
	if marker.Kind != KindList {
		return nil, errors.New("map marker must be a list")
	}
	entries := make([]ConcreteMapEntry, 0, len(marker.Children))
	for _, entryNode := range marker.Children {
		if entryNode.Kind != KindList || len(entryNode.Children) != 2 {
			return nil, errors.New("malformed map entry: expected a 2-element list")
		}
		fieldIDBytes, err := leafListBytes(entryNode.Children[0])
		if err != nil {
			return nil, fmt.Errorf("reading field id: %w", err)
		}
		if len(fieldIDBytes) != 16 {
			return nil, fmt.Errorf("field id must be 16 bytes, got %d", len(fieldIDBytes))
		}
		var fid FieldID
		copy(fid[:], fieldIDBytes)

		childrenNode := entryNode.Children[1]
		if childrenNode.Kind != KindList {
			return nil, errors.New("entry children must be a list")
		}
		children := make([]*ConcreteTypedValueTree, 0, len(childrenNode.Children))
		for _, childNode := range childrenNode.Children {
			child, err := unflattenNode(childNode)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		entries = append(entries, ConcreteMapEntry{FieldID: fid, Children: children})
	}
	return entries, nil
}

func leafListBytes(node *ConcreteLeafTree) ([]byte, error) {
	if node.Kind != KindList {
		return nil, errors.New("expected a list of byte leaves")
	}
	out := make([]byte, len(node.Children))
	for i, c := range node.Children {
		if c.Kind != KindValue {
			return nil, errors.New("expected a byte leaf, found a nested list")
		}
		out[i] = c.Value
	}
	return out, nil
}
