package pycs

import (
	"fmt"

	"github.com/Rizhiy/pycs/debug"
)

// Override walks the tree by path and assigns value at its end. While
// the schema is unlocked, missing intermediate segments become plain
// unconstrained nodes; once locked, any missing segment fails with
// ErrUnknownKey. An existing leaf at the end takes the value through
// its type contract; an existing node deep-merges with a node value.
func (n *Node) Override(path []string, value any) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty override path", ErrUnknownKey)
	}
	if debug.Override() {
		debug.Logf("override %v at %s\n", path, n.Path())
	}
	cur := n
	for _, seg := range path[:len(path)-1] {
		e, ok := cur.entries[seg]
		if !ok {
			if err := cur.checkMutable(); err != nil {
				return err
			}
			if err := cur.checkSchemaGrow(seg); err != nil {
				return err
			}
			child := NewNode()
			cur.attach(seg, child)
			cur = child
			continue
		}
		child, ok := e.(*Node)
		if !ok {
			return fmt.Errorf("%w: %s is a leaf, not a node", ErrSchemaViolation, e.(*Leaf).Path())
		}
		cur = child
	}
	return cur.Set(path[len(path)-1], value)
}

// OverridePath is Override addressed by a $-rooted string path.
func (n *Node) OverridePath(path string, value any) error {
	segs, err := ParsePath(path)
	if err != nil {
		return err
	}
	return n.Override(segs, value)
}

// merge overlays src's declared changes entry by entry: src entries
// win, entries only present in the receiver are kept unchanged. The
// overlay is purely additive-or-overwriting, it never removes keys.
func (n *Node) merge(src *Node) error {
	if debug.Override() {
		debug.Logf("merge %d entries into %s\n", len(src.names), n.Path())
	}
	for _, name := range src.names {
		se := src.entries[name]
		cur, ok := n.entries[name]
		if !ok {
			if err := n.setNew(name, cloneEntry(se)); err != nil {
				return err
			}
			continue
		}
		switch x := cur.(type) {
		case *Node:
			sn, isNode := se.(*Node)
			if !isNode {
				return fmt.Errorf("%w: node %s cannot be overlaid with a leaf",
					ErrSchemaViolation, x.Path())
			}
			if err := x.merge(sn); err != nil {
				return err
			}
		case *Leaf:
			sl, isLeaf := se.(*Leaf)
			if !isLeaf {
				return fmt.Errorf("%w: leaf %s cannot be overlaid with a node",
					ErrSchemaViolation, x.Path())
			}
			// The declared type set at the earlier tier stays
			// authoritative: only the value crosses over.
			if sl.value == nil {
				continue
			}
			if err := x.Set(sl.value); err != nil {
				return err
			}
		}
	}
	return nil
}

func cloneEntry(e any) any {
	switch x := e.(type) {
	case *Leaf:
		return x.Clone()
	case *Node:
		return x.Clone()
	}
	return e
}
