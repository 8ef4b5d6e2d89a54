package loader

import (
	"fmt"

	"github.com/Rizhiy/pycs"
)

// Root seeds a fresh, unconstrained root tier from an overlay. Every
// value declares a required leaf of the value's inferred type, the
// way direct assignment on an open node does.
func Root(ov *Overlay) (*pycs.Node, error) {
	n := pycs.NewNode()
	if err := ov.ApplyTo(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Build derives the tier chain from root: every overlay but the last
// becomes a cloned project tier whose schema may still grow; the last
// becomes the constructed instance tier, whose schema is locked so it
// can only fill in values. The returned tree is loaded and frozen.
func Build(root *pycs.Node, overlays ...*Overlay) (*pycs.Node, error) {
	return BuildWith(root, overlays)
}

// BuildWith is Build with extra override documents applied to the
// instance tier after its own overlay, before load.
func BuildWith(root *pycs.Node, overlays []*Overlay, extra ...*Overlay) (*pycs.Node, error) {
	cur := root
	for i, ov := range overlays {
		var tier *pycs.Node
		if i == len(overlays)-1 {
			tier = pycs.ConstructFrom(cur)
		} else {
			tier = cur.Clone()
		}
		if err := ov.ApplyTo(tier); err != nil {
			return nil, fmt.Errorf("tier %d: %w", i+1, err)
		}
		cur = tier
	}
	if len(overlays) == 0 {
		cur = pycs.ConstructFrom(root)
	}
	for _, ov := range extra {
		if err := ov.ApplyTo(cur); err != nil {
			return nil, err
		}
	}
	if err := cur.Load(); err != nil {
		return nil, err
	}
	return cur, nil
}

// BuildFiles is BuildWith over overlay files. When root is nil the
// first file seeds the root tier.
func BuildFiles(root *pycs.Node, paths []string, extra ...*Overlay) (*pycs.Node, error) {
	overlays := make([]*Overlay, 0, len(paths))
	for _, p := range paths {
		ov, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		overlays = append(overlays, ov)
	}
	if root == nil {
		if len(overlays) == 0 {
			return nil, fmt.Errorf("no config files given")
		}
		var err error
		root, err = Root(overlays[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths[0], err)
		}
		overlays = overlays[1:]
	}
	return BuildWith(root, overlays, extra...)
}
