// Package script builds pipeline callables from expr expressions.
// Expression transforms evaluate against the tree's values and write
// their result at a path; expression validators must evaluate to
// true. Both run under the pipeline's usual phase contract.
package script

import (
	"fmt"

	"github.com/Rizhiy/pycs"
	"github.com/Rizhiy/pycs/debug"

	"github.com/expr-lang/expr"
)

// Transform compiles src into a transform callable whose result is
// written at path. The expression sees the tree's current values as
// its environment.
func Transform(name, path, src string) (pycs.Callable, error) {
	segs, err := pycs.ParsePath(path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("transform %q: empty target path", name)
	}
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("transform %q: %w", name, err)
	}
	return pycs.NamedFunc(name, func(root *pycs.Node) error {
		if debug.Script() {
			debug.Logf("transform %q -> %s\n", src, pycs.PathString(segs))
		}
		res, err := expr.Run(prg, root.ToMap())
		if err != nil {
			return err
		}
		return root.Override(segs, normalize(res))
	}), nil
}

// Validator compiles src into a validator callable. The expression
// must return a bool; false fails the load.
func Validator(name, src string) (pycs.Callable, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("validator %q: %w", name, err)
	}
	return pycs.NamedFunc(name, func(root *pycs.Node) error {
		if debug.Script() {
			debug.Logf("validator %q\n", src)
		}
		res, err := expr.Run(prg, root.ToMap())
		if err != nil {
			return err
		}
		ok, isBool := res.(bool)
		if !isBool {
			return fmt.Errorf("validator %q returned %T, want bool", src, res)
		}
		if !ok {
			return fmt.Errorf("validation %q failed", src)
		}
		return nil
	}), nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.AllowUndefinedVariables(),
	}
}

// normalize maps expr result types onto the value types leaves hold.
func normalize(v any) any {
	switch x := v.(type) {
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case uint:
		return int(x)
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return int(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}
