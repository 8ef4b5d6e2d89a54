package pycs

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Rizhiy/pycs/typedesc"

	"github.com/google/go-cmp/cmp"
)

func TestLoadRunsPhasesInOrder(t *testing.T) {
	n := NewNode()
	if err := n.Set("A", 1); err != nil {
		t.Fatal(err)
	}
	var order []string
	record := func(what string) Callable {
		return NamedFunc(what, func(*Node) error {
			order = append(order, what)
			return nil
		})
	}
	// registration interleaved on purpose: phases still run
	// transform -> validator -> hook
	if err := n.AddHook(record("hook1")); err != nil {
		t.Fatal(err)
	}
	if err := n.AddValidator(record("validator1")); err != nil {
		t.Fatal(err)
	}
	if err := n.AddTransform(record("transform1")); err != nil {
		t.Fatal(err)
	}
	if err := n.AddTransform(record("transform2")); err != nil {
		t.Fatal(err)
	}
	if err := n.Load(); err != nil {
		t.Fatal(err)
	}
	want := []string{"transform1", "transform2", "validator1", "hook1"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("phase order mismatch (-want +got):\n%s", diff)
	}
	if !n.Frozen() {
		t.Error("tree should be frozen after load")
	}
}

func TestChildCallablesRunFirst(t *testing.T) {
	n := NewNode()
	if err := n.Set("CHILD", NewNode()); err != nil {
		t.Fatal(err)
	}
	child, err := n.NodeAt("CHILD")
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	record := func(what string) Callable {
		return NamedFunc(what, func(*Node) error {
			order = append(order, what)
			return nil
		})
	}
	if err := n.AddTransform(record("root")); err != nil {
		t.Fatal(err)
	}
	if err := child.AddTransform(record("child")); err != nil {
		t.Fatal(err)
	}
	if err := n.Load(); err != nil {
		t.Fatal(err)
	}
	want := []string{"child", "root"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("collection order mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformMayMutateValues(t *testing.T) {
	n := NewNode()
	if err := n.Override([]string{"DICT", "INT"}, 1); err != nil {
		t.Fatal(err)
	}
	err := n.AddTransform(NamedFunc("bump", func(root *Node) error {
		v, err := root.Get("DICT", "INT")
		if err != nil {
			return err
		}
		if v == 1 {
			return root.Override([]string{"DICT", "INT"}, 2)
		}
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if err := n.Load(); err != nil {
		t.Fatal(err)
	}
	if v, _ := n.Get("DICT", "INT"); v != 2 {
		t.Errorf("transform result: got %v", v)
	}
}

func TestTransformMayNotGrowSchema(t *testing.T) {
	n := NewNode()
	if err := n.Set("A", 1); err != nil {
		t.Fatal(err)
	}
	err := n.AddTransform(NamedFunc("sneaky", func(root *Node) error {
		return root.Override([]string{"B"}, 2)
	}))
	if err != nil {
		t.Fatal(err)
	}
	err = n.Load()
	var cerr *CallableError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CallableError, got %v", err)
	}
	if cerr.Phase != PhaseTransform || cerr.Callable != "sneaky" {
		t.Errorf("wrong tagging: phase %s callable %q", cerr.Phase, cerr.Callable)
	}
	if !errors.Is(err, ErrSchemaViolation) {
		t.Errorf("expected wrapped ErrSchemaViolation, got %v", err)
	}
}

func TestValidatorMayNotMutate(t *testing.T) {
	n := NewNode()
	if err := n.Set("A", 1); err != nil {
		t.Fatal(err)
	}
	err := n.AddValidator(NamedFunc("mutating", func(root *Node) error {
		return root.Override([]string{"A"}, 2)
	}))
	if err != nil {
		t.Fatal(err)
	}
	err = n.Load()
	if !errors.Is(err, ErrValidationPhase) {
		t.Errorf("expected ErrValidationPhase, got %v", err)
	}
	var cerr *CallableError
	if !errors.As(err, &cerr) || cerr.Phase != PhaseValidate {
		t.Errorf("expected validate-phase CallableError, got %v", err)
	}
}

func TestHookMayNotMutate(t *testing.T) {
	n := NewNode()
	if err := n.Set("A", 1); err != nil {
		t.Fatal(err)
	}
	err := n.AddHook(NamedFunc("mutating", func(root *Node) error {
		return root.Override([]string{"A"}, 2)
	}))
	if err != nil {
		t.Fatal(err)
	}
	err = n.Load()
	if !errors.Is(err, ErrValidationPhase) {
		t.Errorf("expected ErrValidationPhase, got %v", err)
	}
	var cerr *CallableError
	if !errors.As(err, &cerr) || cerr.Phase != PhaseHook {
		t.Errorf("expected hook-phase CallableError, got %v", err)
	}
}

func TestCallableErrorWrapsCause(t *testing.T) {
	n := NewNode()
	cause := fmt.Errorf("backend exploded")
	err := n.AddValidator(NamedFunc("boom", func(*Node) error { return cause }))
	if err != nil {
		t.Fatal(err)
	}
	err = n.Load()
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestRequiredLeafChecked(t *testing.T) {
	n := NewNode()
	if err := n.Set("NAME", NewLeaf(typedesc.String(), LeafRequired(true))); err != nil {
		t.Fatal(err)
	}
	err := n.Load()
	if !errors.Is(err, ErrRequiredMissing) {
		t.Fatalf("expected ErrRequiredMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "$.NAME") {
		t.Errorf("error should name the leaf's full path: %v", err)
	}

	n2 := NewNode()
	if err := n2.Set("NAME", NewLeaf(typedesc.String(), LeafRequired(true))); err != nil {
		t.Fatal(err)
	}
	if err := n2.Set("NAME", "ok"); err != nil {
		t.Fatal(err)
	}
	if err := n2.Load(); err != nil {
		t.Fatal(err)
	}
}

func TestRequiredCheckedBeforeHooks(t *testing.T) {
	n := NewNode()
	if err := n.Set("NAME", NewLeaf(typedesc.String(), LeafRequired(true))); err != nil {
		t.Fatal(err)
	}
	hookRan := false
	if err := n.AddHook(NamedFunc("side", func(*Node) error {
		hookRan = true
		return nil
	})); err != nil {
		t.Fatal(err)
	}
	if err := n.Load(); !errors.Is(err, ErrRequiredMissing) {
		t.Fatalf("expected ErrRequiredMissing, got %v", err)
	}
	if hookRan {
		t.Error("hooks must not run when a required leaf is unset")
	}
}

func TestRequiredSpecMembers(t *testing.T) {
	n := NewNode()
	spec := NewNodeSpec(NewLeaf(typedesc.ClassOf(testBase), LeafRequired(true)))
	if err := n.Set("REQUIRED_CLASSES", spec); err != nil {
		t.Fatal(err)
	}
	if err := n.Load(); !errors.Is(err, ErrRequiredMissing) {
		t.Errorf("empty node with required spec: expected ErrRequiredMissing, got %v", err)
	}
}

func TestFrozenTreeRejectsAllMutation(t *testing.T) {
	n := NewNode()
	if err := n.Override([]string{"DICT", "FOO"}, "bar"); err != nil {
		t.Fatal(err)
	}
	if err := n.Load(); err != nil {
		t.Fatal(err)
	}
	if err := n.Override([]string{"DICT", "FOO"}, "qux"); !errors.Is(err, ErrImmutable) {
		t.Errorf("override after freeze: expected ErrImmutable, got %v", err)
	}
	d, err := n.NodeAt("DICT")
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Set("FOO", "qux"); !errors.Is(err, ErrImmutable) {
		t.Errorf("set on frozen descendant: expected ErrImmutable, got %v", err)
	}
	// reads return the merged values
	if v, _ := n.Get("DICT", "FOO"); v != "bar" {
		t.Errorf("read after freeze: got %v", v)
	}
}

func TestDoubleLoad(t *testing.T) {
	n := NewNode()
	if err := n.Set("A", 1); err != nil {
		t.Fatal(err)
	}
	if err := n.Load(); err != nil {
		t.Fatal(err)
	}
	if err := n.Load(); !errors.Is(err, ErrImmutable) {
		t.Errorf("second load: expected ErrImmutable, got %v", err)
	}
}

// The three-tier walkthrough: a global schema, a project tier that
// still grows it, and an instance tier that only fills in values.
func TestTierScenario(t *testing.T) {
	global := NewNode()
	if err := global.Set("NAME", NewLeaf(typedesc.String(), LeafRequired(true))); err != nil {
		t.Fatal(err)
	}
	if err := global.Set("DICT", NewNode()); err != nil {
		t.Fatal(err)
	}
	if err := global.Override([]string{"DICT", "FOO"}, "bar"); err != nil {
		t.Fatal(err)
	}
	err := global.AddTransform(NamedFunc("foo-upper", func(root *Node) error {
		return root.Override([]string{"DICT", "FOO"}, "BAR")
	}))
	if err != nil {
		t.Fatal(err)
	}

	project := global.Clone()
	if err := project.Override([]string{"DICT", "BAR"}, "baz"); err != nil {
		t.Fatal(err)
	}
	if err := project.Override([]string{"DICT", "INT"}, 1); err != nil {
		t.Fatal(err)
	}

	inst := ConstructFrom(project)
	if err := inst.Override([]string{"NAME"}, "Hello World!"); err != nil {
		t.Fatal(err)
	}
	if err := inst.Override([]string{"DICT", "INT"}, 2); err != nil {
		t.Fatal(err)
	}

	// the instance tier is schema locked from construction
	if err := inst.Override([]string{"DICT", "BAZ"}, 1); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("locked instance tier: expected ErrUnknownKey, got %v", err)
	}

	if err := inst.Load(); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"NAME": "Hello World!",
		"DICT": map[string]any{
			"FOO": "BAR",
			"BAR": "baz",
			"INT": 2,
		},
	}
	if diff := cmp.Diff(want, inst.ToMap()); diff != "" {
		t.Errorf("loaded tree mismatch (-want +got):\n%s", diff)
	}

	// the project tier is untouched by the instance load
	if project.Frozen() || project.SchemaLocked() {
		t.Error("instance load must not affect the project tier")
	}
}
