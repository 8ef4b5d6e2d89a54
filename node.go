package pycs

import (
	"fmt"

	"github.com/Rizhiy/pycs/typedesc"
)

// Node is an ordered mapping from name to Leaf or Node. A node may
// carry a leaf spec constraining every direct leaf, a schema lock
// fixing its key set, and a frozen flag forbidding all mutation.
type Node struct {
	names   []string
	entries map[string]any

	leafSpec     *Leaf
	schemaLocked bool
	frozen       bool
	phase        Phase

	parent *Node
	key    string

	transforms []Callable
	validators []Callable
	hooks      []Callable
}

func NewNode() *Node {
	return &Node{entries: map[string]any{}}
}

// NewNodeSpec creates a node whose direct leaves, present or future,
// must all satisfy spec. The spec's required/subclass flags become
// the defaults for leaves declared under the node.
func NewNodeSpec(spec *Leaf) *Node {
	n := NewNode()
	n.leafSpec = spec
	return n
}

func (n *Node) Len() int { return len(n.names) }

// Keys returns the entry names in insertion order.
func (n *Node) Keys() []string {
	res := make([]string, len(n.names))
	copy(res, n.names)
	return res
}

func (n *Node) Has(name string) bool {
	_, ok := n.entries[name]
	return ok
}

// Entry returns the raw *Leaf or *Node stored under name.
func (n *Node) Entry(name string) (any, bool) {
	e, ok := n.entries[name]
	return e, ok
}

func (n *Node) LeafSpec() *Leaf    { return n.leafSpec }
func (n *Node) SchemaLocked() bool { return n.schemaLocked }
func (n *Node) Frozen() bool       { return n.frozen }

// Path returns the node's $-rooted path in its owning tree.
func (n *Node) Path() string {
	if n.parent == nil {
		return "$"
	}
	return n.parent.Path() + "." + pathField(n.key)
}

func (n *Node) root() *Node {
	res := n
	for res.parent != nil {
		res = res.parent
	}
	return res
}

// Get walks the tree by path and returns a leaf's value or a child
// node. Missing segments fail with ErrUnknownKey.
func (n *Node) Get(path ...string) (any, error) {
	cur := n
	for i, seg := range path {
		e, ok := cur.entries[seg]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, childPath(cur, seg))
		}
		switch x := e.(type) {
		case *Leaf:
			if i != len(path)-1 {
				return nil, fmt.Errorf("%w: %s is a leaf", ErrUnknownKey, x.Path())
			}
			return x.value, nil
		case *Node:
			cur = x
		}
	}
	return cur, nil
}

// LeafAt returns the leaf at path.
func (n *Node) LeafAt(path ...string) (*Leaf, error) {
	e, err := n.entryAt(path)
	if err != nil {
		return nil, err
	}
	l, ok := e.(*Leaf)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a leaf", ErrUnknownKey, e.(*Node).Path())
	}
	return l, nil
}

// NodeAt returns the child node at path.
func (n *Node) NodeAt(path ...string) (*Node, error) {
	e, err := n.entryAt(path)
	if err != nil {
		return nil, err
	}
	nd, ok := e.(*Node)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a node", ErrUnknownKey, e.(*Leaf).Path())
	}
	return nd, nil
}

func (n *Node) entryAt(path []string) (any, error) {
	if len(path) == 0 {
		return n, nil
	}
	cur := n
	for i, seg := range path {
		e, ok := cur.entries[seg]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, childPath(cur, seg))
		}
		if i == len(path)-1 {
			return e, nil
		}
		nd, ok := e.(*Node)
		if !ok {
			return nil, fmt.Errorf("%w: %s is a leaf", ErrUnknownKey, e.(*Leaf).Path())
		}
		cur = nd
	}
	return nil, errInternal
}

// Set assigns under name. A new name declares schema (a leaf or child
// node); an existing leaf takes the value through its type contract;
// an existing child node deep-merges when given a node and rejects
// anything else.
func (n *Node) Set(name string, value any) error {
	if err := n.checkMutable(); err != nil {
		return err
	}
	cur, ok := n.entries[name]
	if !ok {
		return n.setNew(name, value)
	}
	switch x := cur.(type) {
	case *Leaf:
		if _, isLeaf := value.(*Leaf); isLeaf {
			return fmt.Errorf("%w: leaf %s already declared", ErrSchemaViolation, x.Path())
		}
		return x.Set(value)
	case *Node:
		src, isNode := value.(*Node)
		if !isNode {
			return fmt.Errorf("%w: node %s cannot be reassigned", ErrSchemaViolation, x.Path())
		}
		return x.merge(src)
	}
	return errInternal
}

func (n *Node) setNew(name string, value any) error {
	if err := n.checkSchemaGrow(name); err != nil {
		return err
	}
	spec := n.leafSpec
	switch x := value.(type) {
	case *Node:
		if spec != nil {
			return fmt.Errorf("%w: %s cannot contain nested nodes, leaf spec %s is declared for it",
				ErrSchemaViolation, n.Path(), spec)
		}
		n.attach(name, x)
		return nil
	case *Leaf:
		if spec != nil {
			if err := n.checkAgainstSpec(name, x); err != nil {
				return err
			}
		}
		n.attach(name, x)
		return nil
	case typedesc.Desc:
		lf := NewLeaf(x)
		if spec != nil {
			lf.required = spec.required
			lf.subclass = spec.subclass
			if err := n.checkAgainstSpec(name, lf); err != nil {
				return err
			}
		}
		n.attach(name, lf)
		return nil
	case *typedesc.Class:
		if spec != nil {
			lf := spec.Clone()
			if err := spec.typ.Satisfies(x, spec.subclass); err != nil {
				return fmt.Errorf("%w at %s: %v", ErrTypeMismatch, childPath(n, name), err)
			}
			lf.value = x
			n.attach(name, lf)
			return nil
		}
		// a bare class declares a slot for one of its strict
		// descendants; the slot must be filled before load
		n.attach(name, NewLeaf(typedesc.ClassOf(x), LeafRequired(true), LeafSubclass(true)))
		return nil
	default:
		if spec != nil {
			lf := spec.Clone()
			if err := spec.typ.Satisfies(x, spec.subclass); err != nil {
				return fmt.Errorf("%w at %s: %v", ErrTypeMismatch, childPath(n, name), err)
			}
			lf.value = x
			n.attach(name, lf)
			return nil
		}
		d, err := typedesc.Of(x)
		if err != nil {
			return fmt.Errorf("%w at %s: %v", ErrTypeMismatch, childPath(n, name), err)
		}
		lf := NewLeaf(d, LeafRequired(true))
		lf.value = x
		n.attach(name, lf)
		return nil
	}
}

// checkAgainstSpec enforces the node's leaf spec on a newly declared
// leaf: the spec may be tightened, never weakened.
func (n *Node) checkAgainstSpec(name string, lf *Leaf) error {
	spec := n.leafSpec
	if spec.required && !lf.required {
		return fmt.Errorf("%w: leaf at %s must be required", ErrSchemaViolation, childPath(n, name))
	}
	if spec.subclass != lf.subclass {
		return fmt.Errorf("%w: leaf at %s must have subclass == %v",
			ErrSchemaViolation, childPath(n, name), spec.subclass)
	}
	if !spec.typ.Accepts(lf.typ) {
		return fmt.Errorf("%w: leaf type at %s must tighten %s, got %s",
			ErrSchemaViolation, childPath(n, name), spec.typ, lf.typ)
	}
	if lf.value != nil {
		if err := spec.typ.Satisfies(lf.value, spec.subclass); err != nil {
			return fmt.Errorf("%w at %s: %v", ErrTypeMismatch, childPath(n, name), err)
		}
	}
	return nil
}

func (n *Node) attach(name string, e any) {
	switch x := e.(type) {
	case *Leaf:
		x.parent = n
		x.key = name
	case *Node:
		x.parent = n
		x.key = name
	}
	n.names = append(n.names, name)
	n.entries[name] = e
}

func (n *Node) checkMutable() error {
	r := n.root()
	if n.frozen || r.frozen {
		return fmt.Errorf("%w: %s", ErrImmutable, n.Path())
	}
	switch r.phase {
	case PhaseValidate, PhaseHook:
		return fmt.Errorf("%w: %s", ErrValidationPhase, n.Path())
	}
	return nil
}

func (n *Node) checkSchemaGrow(name string) error {
	if n.root().phase == PhaseTransform {
		return fmt.Errorf("%w: cannot add %q during transform phase", ErrSchemaViolation, name)
	}
	if n.schemaLocked {
		return fmt.Errorf("%w: %s", ErrUnknownKey, childPath(n, name))
	}
	return nil
}

// LockSchema recursively fixes the key set of the node and all child
// nodes. Values of existing leaves may still change.
func (n *Node) LockSchema() {
	n.schemaLocked = true
	for _, name := range n.names {
		if child, ok := n.entries[name].(*Node); ok {
			child.LockSchema()
		}
	}
}

// AddTransform registers a transform. Registration is only possible
// before the schema is locked.
func (n *Node) AddTransform(c Callable) error {
	return n.addCallable(&n.transforms, c, "transform")
}

// AddValidator registers a validator.
func (n *Node) AddValidator(c Callable) error {
	return n.addCallable(&n.validators, c, "validator")
}

// AddHook registers a hook.
func (n *Node) AddHook(c Callable) error {
	return n.addCallable(&n.hooks, c, "hook")
}

func (n *Node) addCallable(dst *[]Callable, c Callable, what string) error {
	if n.frozen || n.root().frozen {
		return fmt.Errorf("%w: %s", ErrImmutable, n.Path())
	}
	if n.schemaLocked {
		return fmt.Errorf("%w: cannot add %s after schema lock", ErrSchemaViolation, what)
	}
	*dst = append(*dst, c)
	return nil
}

// ToMap exports leaf values as nested plain maps, losing order. Used
// for script environments and rendering.
func (n *Node) ToMap() map[string]any {
	res := make(map[string]any, len(n.names))
	for _, name := range n.names {
		switch x := n.entries[name].(type) {
		case *Leaf:
			res[name] = x.value
		case *Node:
			res[name] = x.ToMap()
		}
	}
	return res
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%s, %d entries)", n.Path(), len(n.names))
}
