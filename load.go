package pycs

import (
	"fmt"

	"github.com/Rizhiy/pycs/debug"
)

// Load finishes construction of the tree: it locks the schema, runs
// registered transforms, validators and hooks in that order, checks
// required leaves and freezes the tree. Load either completes fully
// or fails synchronously; a tree whose Load failed is in a partial
// state and must be discarded.
func (n *Node) Load() error {
	if n.frozen {
		return fmt.Errorf("%w: %s", ErrImmutable, n.Path())
	}
	n.LockSchema()

	n.phase = PhaseTransform
	if err := n.runPhase(PhaseTransform, n.collect(func(x *Node) []Callable { return x.transforms })); err != nil {
		return err
	}

	n.phase = PhaseValidate
	if err := n.runPhase(PhaseValidate, n.collect(func(x *Node) []Callable { return x.validators })); err != nil {
		return err
	}

	if err := n.checkRequired(); err != nil {
		return err
	}

	n.phase = PhaseHook
	if err := n.runPhase(PhaseHook, n.collect(func(x *Node) []Callable { return x.hooks })); err != nil {
		return err
	}

	n.Freeze()
	return nil
}

func (n *Node) runPhase(phase Phase, cs []Callable) error {
	for _, c := range cs {
		if debug.Load() {
			debug.Logf("%s callable %q\n", phase, c.Name())
		}
		if err := c.Apply(n); err != nil {
			return &CallableError{Phase: phase, Callable: c.Name(), Err: err}
		}
	}
	return nil
}

// collect gathers one phase's callables from the whole tree: children
// first, then the node's own, registration order within a node. Every
// callable is applied to the root.
func (n *Node) collect(sel func(*Node) []Callable) []Callable {
	var res []Callable
	for _, name := range n.names {
		if child, ok := n.entries[name].(*Node); ok {
			res = append(res, child.collect(sel)...)
		}
	}
	return append(res, sel(n)...)
}

func (n *Node) checkRequired() error {
	if n.leafSpec != nil && n.leafSpec.required && len(n.names) == 0 {
		return fmt.Errorf("%w: %s requires members for spec %s", ErrRequiredMissing, n.Path(), n.leafSpec)
	}
	for _, name := range n.names {
		switch x := n.entries[name].(type) {
		case *Node:
			if err := x.checkRequired(); err != nil {
				return err
			}
		case *Leaf:
			if !x.IsSatisfied() {
				return fmt.Errorf("%w: %s", ErrRequiredMissing, x.Path())
			}
		}
	}
	return nil
}

// Freeze recursively marks the node and every descendant immutable.
// There is no unfreeze: reads stay unrestricted, all mutation fails
// with ErrImmutable for the rest of the tree's lifetime.
func (n *Node) Freeze() {
	n.phase = PhaseFrozen
	n.freeze()
}

func (n *Node) freeze() {
	n.frozen = true
	for _, name := range n.names {
		if child, ok := n.entries[name].(*Node); ok {
			child.freeze()
		}
	}
}
