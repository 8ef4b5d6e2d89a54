package pycs

import (
	"fmt"

	"github.com/Rizhiy/pycs/typedesc"
)

// Leaf is a typed, possibly required placeholder or concrete value.
// Its declared type is fixed at the tier that introduced it; later
// tiers may only supply values satisfying it.
type Leaf struct {
	value    any
	typ      typedesc.Desc
	required bool
	subclass bool

	parent *Node
	key    string
}

type LeafOption func(*Leaf)

// LeafRequired marks the leaf as required: loading fails unless a
// value is set by validation time.
func LeafRequired(v bool) LeafOption {
	return func(l *Leaf) { l.required = v }
}

// LeafSubclass puts the leaf in subclass mode: its value must be a
// class strictly descending from the declared class, not an instance.
func LeafSubclass(v bool) LeafOption {
	return func(l *Leaf) { l.subclass = v }
}

// NewLeaf declares an unset leaf of the given type.
func NewLeaf(typ typedesc.Desc, opts ...LeafOption) *Leaf {
	l := &Leaf{typ: typ}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLeafValue declares a leaf of the given type holding value.
func NewLeafValue(value any, typ typedesc.Desc, opts ...LeafOption) (*Leaf, error) {
	l := NewLeaf(typ, opts...)
	if value == nil {
		return l, nil
	}
	if err := l.Set(value); err != nil {
		return nil, err
	}
	return l, nil
}

// Set assigns a value to the leaf. It fails with ErrTypeMismatch if
// the value does not satisfy the declared type, and with ErrImmutable
// or ErrValidationPhase depending on the owning tree's state.
func (l *Leaf) Set(value any) error {
	if err := l.checkMutable(); err != nil {
		return err
	}
	if err := l.typ.Satisfies(value, l.subclass); err != nil {
		return fmt.Errorf("%w at %s: %v", ErrTypeMismatch, l.Path(), err)
	}
	l.value = value
	return nil
}

func (l *Leaf) Value() any { return l.value }

func (l *Leaf) IsSet() bool { return l.value != nil }

// IsSatisfied reports whether the leaf can be frozen: either it is
// optional or it holds a value.
func (l *Leaf) IsSatisfied() bool {
	return !l.required || l.value != nil
}

func (l *Leaf) Type() typedesc.Desc { return l.typ }
func (l *Leaf) Required() bool      { return l.required }
func (l *Leaf) Subclass() bool      { return l.subclass }

// Clone returns a parentless copy of the leaf.
func (l *Leaf) Clone() *Leaf {
	return &Leaf{
		value:    l.value,
		typ:      l.typ,
		required: l.required,
		subclass: l.subclass,
	}
}

// Path returns the leaf's $-rooted path in its owning tree.
func (l *Leaf) Path() string {
	if l.parent == nil {
		return "$"
	}
	return l.parent.Path() + "." + pathField(l.key)
}

func (l *Leaf) checkMutable() error {
	if l.parent == nil {
		return nil
	}
	return l.parent.checkMutable()
}

func (l *Leaf) String() string {
	req := ""
	if l.required {
		req = " required"
	}
	sub := ""
	if l.subclass {
		sub = " subclass"
	}
	if l.value == nil {
		return fmt.Sprintf("Leaf(%s%s%s)", l.typ, req, sub)
	}
	return fmt.Sprintf("Leaf(%s%s%s = %v)", l.typ, req, sub, l.value)
}
