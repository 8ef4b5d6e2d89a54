// Package loader is the glue between config sources on disk and the
// core tree: it parses YAML overlay documents preserving declaration
// order, chains inheritance tiers and composes extra override
// documents as JSON merge patches.
package loader

import (
	"fmt"
	"os"

	"github.com/Rizhiy/pycs"
	"github.com/Rizhiy/pycs/debug"

	"github.com/goccy/go-yaml"
)

// Overlay is one tier's declared changes: an ordered, unvalidated
// nested mapping. All schema checking happens when the overlay is
// applied to a tree.
type Overlay struct {
	doc yaml.MapSlice
}

// ParseOverlay parses a YAML document into an overlay. Field order in
// the document is preserved.
func ParseOverlay(data []byte) (*Overlay, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("could not decode overlay: %w", err)
	}
	if doc == nil {
		return &Overlay{}, nil
	}
	ms, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("overlay must be a mapping, got %T", doc)
	}
	return &Overlay{doc: ms}, nil
}

// ReadFile reads and parses one overlay file.
func ReadFile(path string) (*Overlay, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	ov, err := ParseOverlay(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if debug.Loader() {
		debug.Logf("read overlay %s (%d top-level fields)\n", path, len(ov.doc))
	}
	return ov, nil
}

// ApplyTo overlays the document onto n through the schema-checked
// merge engine, field by field in declaration order.
func (o *Overlay) ApplyTo(n *pycs.Node) error {
	return applyMap(n, nil, o.doc)
}

func applyMap(n *pycs.Node, path []string, ms yaml.MapSlice) error {
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			key = fmt.Sprint(item.Key)
		}
		segs := append(append([]string(nil), path...), key)
		if sub, isMap := item.Value.(yaml.MapSlice); isMap {
			if len(sub) == 0 {
				if err := n.Override(segs, pycs.NewNode()); err != nil {
					return err
				}
				continue
			}
			if err := applyMap(n, segs, sub); err != nil {
				return err
			}
			continue
		}
		if err := n.Override(segs, normalize(item.Value)); err != nil {
			return err
		}
	}
	return nil
}

// normalize maps decoded YAML scalars onto the value types leaves
// hold.
func normalize(v any) any {
	switch x := v.(type) {
	case int64:
		return int(x)
	case uint64:
		return int(x)
	case float32:
		return float64(x)
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = normalize(e)
		}
		return res
	default:
		return v
	}
}
