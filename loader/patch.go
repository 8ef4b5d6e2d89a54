package loader

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rizhiy/pycs"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

// CombinePatches folds JSON merge-patch documents left to right into
// a single patch, later documents taking precedence.
func CombinePatches(patches ...[]byte) ([]byte, error) {
	if len(patches) == 0 {
		return []byte("{}"), nil
	}
	res := patches[0]
	for _, p := range patches[1:] {
		var err error
		res, err = jsonpatch.MergeMergePatches(res, p)
		if err != nil {
			return nil, fmt.Errorf("could not combine patches: %w", err)
		}
	}
	return res, nil
}

// PatchOverlay turns a JSON merge-patch document into an overlay so
// it can be applied through the schema-checked merge engine.
func PatchOverlay(patch []byte) (*Overlay, error) {
	return ParseOverlay(patch)
}

// SetPatch turns a command-line "path=value" argument into a JSON
// merge-patch document. The value is decoded as a YAML scalar, so
// "2", "true" and plain strings all do what they look like.
func SetPatch(arg string) ([]byte, error) {
	eq := strings.IndexByte(arg, '=')
	if eq <= 0 {
		return nil, fmt.Errorf("expected path=value, got %q", arg)
	}
	segs, err := pycs.ParsePath(arg[:eq])
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("empty path in %q", arg)
	}
	var val any
	if err := yaml.Unmarshal([]byte(arg[eq+1:]), &val); err != nil {
		return nil, fmt.Errorf("could not decode value in %q: %w", arg, err)
	}
	doc := val
	for i := len(segs) - 1; i >= 0; i-- {
		doc = map[string]any{segs[i]: doc}
	}
	return json.Marshal(doc)
}
