// Package template implements component H: a declarative tree-shape
// checker used as a test oracle. It has no role in the wire codecs; it
// exists to let other tests assert that a LeafTreeView has a particular
// shape without spelling out the expected bytes by hand.
package template

import (
	"errors"
	"fmt"

	"github.com/scigolib/treecodec/internal/leaftree"
)

// Kind tags which alternative a Template node holds.
type Kind uint8

const (
	// KindList requires an exact-arity list of child templates.
	KindList Kind = iota
	// KindConstantValue requires a Value node equal to a specific byte.
	KindConstantValue
	// KindValueFromStream accepts any Value node.
	KindValueFromStream
	// KindTreeFromStream accepts any subtree, list or value.
	KindTreeFromStream
	// KindTemplateUse recurses into a referenced template.
	KindTemplateUse
)

// Template is a declarative tree shape: constant byte, wildcard byte,
// wildcard subtree, list-of-templates, or a reference to another template.
type Template struct {
	Kind     Kind
	Children []*Template // meaningful iff Kind == KindList
	Value    byte        // meaningful iff Kind == KindConstantValue
	Ref      *Template   // meaningful iff Kind == KindTemplateUse
}

// List requires an exact-arity list whose i'th child matches children[i].
func List(children ...*Template) *Template {
	return &Template{Kind: KindList, Children: children}
}

// ConstantValue requires a Value node equal to b.
func ConstantValue(b byte) *Template {
	return &Template{Kind: KindConstantValue, Value: b}
}

// ValueFromStream accepts any Value node.
func ValueFromStream() *Template { return &Template{Kind: KindValueFromStream} }

// TreeFromStream accepts any subtree, list or value.
func TreeFromStream() *Template { return &Template{Kind: KindTreeFromStream} }

// Use builds a node that recurses into ref when checked.
func Use(ref *Template) *Template { return &Template{Kind: KindTemplateUse, Ref: ref} }

// Errors returned by Check. Each wraps enough context (via fmt.Errorf's
// %w) to identify where in the tree the mismatch occurred.
var (
	ErrKindMismatch           = errors.New("template: node kind mismatch")
	ErrArityMismatch          = errors.New("template: list arity mismatch")
	ErrConstantMismatch       = errors.New("template: constant value mismatch")
	ErrDanglingTemplateUse    = errors.New("template: template-use node has no referenced template")
	ErrUnsupportedBytePattern = errors.New("template: byte-pattern templates with overlap semantics are unsupported")
)

// Check asserts that view structurally conforms to tmpl: list arity
// matches, constant values match, ValueFromStream accepts any byte,
// TreeFromStream accepts any subtree, and TemplateUse nodes recurse into
// their referenced template. A template-use cycle (tmpl reachable from
// its own Ref chain) is tolerated rather than looping forever: a
// TemplateUse whose referenced template is already being checked further
// up the same path short-circuits as conformant. Sibling uses of the same
// template are each checked in full.
func Check(view leaftree.LeafTreeView, tmpl *Template) error {
	concrete, err := leaftree.CopyViewToConcrete(view)
	if err != nil {
		return err
	}
	return checkNode(concrete, tmpl, make(map[*Template]bool))
}

func checkNode(node *leaftree.ConcreteLeafTree, tmpl *Template, visiting map[*Template]bool) error {
	switch tmpl.Kind {
	case KindList:
		if node.Kind != leaftree.KindList {
			return fmt.Errorf("%w: expected a list, got a value", ErrKindMismatch)
		}
		if len(node.Children) != len(tmpl.Children) {
			return fmt.Errorf("%w: got %d children, template expects %d",
				ErrArityMismatch, len(node.Children), len(tmpl.Children))
		}
		for i, childTmpl := range tmpl.Children {
			if err := checkNode(node.Children[i], childTmpl, visiting); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		}
		return nil

	case KindConstantValue:
		if node.Kind != leaftree.KindValue {
			return fmt.Errorf("%w: expected a value, got a list", ErrKindMismatch)
		}
		if node.Value != tmpl.Value {
			return fmt.Errorf("%w: got %d, want %d", ErrConstantMismatch, node.Value, tmpl.Value)
		}
		return nil

	case KindValueFromStream:
		if node.Kind != leaftree.KindValue {
			return fmt.Errorf("%w: expected a value, got a list", ErrKindMismatch)
		}
		return nil

	case KindTreeFromStream:
		return nil

	case KindTemplateUse:
		if tmpl.Ref == nil {
			return ErrDanglingTemplateUse
		}
		if visiting[tmpl.Ref] {
			return nil
		}
		visiting[tmpl.Ref] = true
		defer delete(visiting, tmpl.Ref)
		return checkNode(node, tmpl.Ref, visiting)

	default:
		return fmt.Errorf("template: unknown node kind %d", tmpl.Kind)
	}
}

// BytePatternTemplate stands in for the overlap-capable byte-pattern
// templates of the original design (constant/wildcard positions addressed
// by stream offset, allowing two template positions to read the same
// stream slot). Those overlap semantics are out of scope here.
type BytePatternTemplate struct{}

// CheckBytePattern always fails: byte-pattern templates with overlap
// semantics are explicitly unsupported and must fail cleanly rather than
// silently behaving like a non-overlapping Template.
func CheckBytePattern(view leaftree.LeafTreeView, tmpl *BytePatternTemplate) error {
	return ErrUnsupportedBytePattern
}
