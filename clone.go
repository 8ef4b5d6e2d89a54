package pycs

import "slices"

// Clone deep-copies the subtree. The copy preserves entry order, leaf
// specs, declared types, values and registered callables, but always
// starts schema-unlocked and unfrozen regardless of the source's
// state. That is what lets a later tier extend schema even when an
// earlier tier was already loaded elsewhere.
func (n *Node) Clone() *Node {
	c := &Node{
		names:      slices.Clone(n.names),
		entries:    make(map[string]any, len(n.entries)),
		transforms: slices.Clone(n.transforms),
		validators: slices.Clone(n.validators),
		hooks:      slices.Clone(n.hooks),
	}
	if n.leafSpec != nil {
		c.leafSpec = n.leafSpec.Clone()
	}
	for _, name := range n.names {
		switch x := n.entries[name].(type) {
		case *Leaf:
			lc := x.Clone()
			lc.parent = c
			lc.key = name
			c.entries[name] = lc
		case *Node:
			nc := x.Clone()
			nc.parent = c
			nc.key = name
			c.entries[name] = nc
		}
	}
	return c
}

// ConstructFrom derives the final tier from parent: a clone whose
// schema is locked immediately, so the tier can fill in values but
// never introduce new keys.
func ConstructFrom(parent *Node) *Node {
	c := parent.Clone()
	c.LockSchema()
	return c
}
