package pycs

// Phase is the load pipeline state. Loading moves a tree linearly
// through Built -> Transformed -> Validated -> Hooked -> Frozen.
type Phase int

const (
	PhaseBuilt Phase = iota
	PhaseTransform
	PhaseValidate
	PhaseHook
	PhaseFrozen
)

func (p Phase) String() string {
	s, ok := map[Phase]string{
		PhaseBuilt:     "built",
		PhaseTransform: "transform",
		PhaseValidate:  "validate",
		PhaseHook:      "hook",
		PhaseFrozen:    "frozen",
	}[p]
	if ok {
		return s
	}
	return "<unknown phase>"
}

// Callable is a pipeline step applied to the root of a tree during
// Load. Transforms may change leaf values but not schema; validators
// and hooks may change nothing.
type Callable interface {
	Apply(root *Node) error
	Name() string
}

type callableFunc struct {
	name string
	f    func(*Node) error
}

func (c callableFunc) Apply(root *Node) error { return c.f(root) }
func (c callableFunc) Name() string           { return c.name }

// NamedFunc adapts a plain function into a Callable.
func NamedFunc(name string, f func(*Node) error) Callable {
	return callableFunc{name: name, f: f}
}
