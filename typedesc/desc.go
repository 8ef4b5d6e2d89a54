// Package typedesc describes the types config leaves may hold.
//
// A Desc is either a primitive kind or a reference to a registered
// class. Classes form a single-parent hierarchy so a leaf can require
// "an instance of Base" or, in subclass mode, "a strict descendant of
// Base" without tying the check to Go's own type system.
package typedesc

import "fmt"

type Kind int

const (
	InvalidKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	ListKind
	ClassKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		InvalidKind: "Invalid",
		BoolKind:    "Bool",
		IntKind:     "Int",
		FloatKind:   "Float",
		StringKind:  "String",
		ListKind:    "List",
		ClassKind:   "Class",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func Kinds() []Kind {
	return []Kind{
		BoolKind,
		IntKind,
		FloatKind,
		StringKind,
		ListKind,
		ClassKind,
	}
}

// Desc identifies a leaf type: a primitive kind, or a class identity
// when Kind == ClassKind.
type Desc struct {
	Kind  Kind
	Class *Class
}

func Bool() Desc   { return Desc{Kind: BoolKind} }
func Int() Desc    { return Desc{Kind: IntKind} }
func Float() Desc  { return Desc{Kind: FloatKind} }
func String() Desc { return Desc{Kind: StringKind} }
func List() Desc   { return Desc{Kind: ListKind} }

func ClassOf(c *Class) Desc {
	return Desc{Kind: ClassKind, Class: c}
}

func (d Desc) IsZero() bool {
	return d.Kind == InvalidKind
}

func (d Desc) String() string {
	if d.Kind == ClassKind {
		if d.Class == nil {
			return "Class(?)"
		}
		return "Class(" + d.Class.Name + ")"
	}
	return d.Kind.String()
}

// Object is implemented by reference values held in class-typed
// leaves.
type Object interface {
	Class() *Class
}

// Of infers the descriptor for a concrete value.
func Of(v any) (Desc, error) {
	switch x := v.(type) {
	case bool:
		return Bool(), nil
	case int, int64:
		return Int(), nil
	case float64:
		return Float(), nil
	case string:
		return String(), nil
	case []any:
		return List(), nil
	case *Class:
		return ClassOf(x), nil
	case Object:
		return ClassOf(x.Class()), nil
	default:
		return Desc{}, fmt.Errorf("no type descriptor for value of type %T", v)
	}
}

// Satisfies reports whether v can be held by a leaf declared with d.
// Primitive kinds require an exact kind match. Class descriptors
// accept an Object whose class is d.Class or a descendant; in
// subclass mode the value must itself be a class strictly descending
// from d.Class.
func (d Desc) Satisfies(v any, subclass bool) error {
	if d.Kind != ClassKind {
		vd, err := Of(v)
		if err != nil {
			return err
		}
		if vd.Kind != d.Kind {
			return fmt.Errorf("want %s, got %s", d, vd)
		}
		return nil
	}
	if d.Class == nil {
		return fmt.Errorf("class descriptor without class")
	}
	if subclass {
		c, ok := v.(*Class)
		if !ok {
			return fmt.Errorf("want a class descending from %s, got value of type %T", d.Class.Name, v)
		}
		if c == d.Class {
			return fmt.Errorf("want a strict descendant of %s, got %s itself", d.Class.Name, c.Name)
		}
		if !c.DescendsFrom(d.Class) {
			return fmt.Errorf("class %s does not descend from %s", c.Name, d.Class.Name)
		}
		return nil
	}
	o, ok := v.(Object)
	if !ok {
		return fmt.Errorf("want instance of %s, got value of type %T", d.Class.Name, v)
	}
	c := o.Class()
	if c != d.Class && !c.DescendsFrom(d.Class) {
		return fmt.Errorf("instance class %s does not satisfy %s", c.Name, d.Class.Name)
	}
	return nil
}

// Accepts reports whether a leaf declared with o can be redeclared at
// a later tier with d: d must name the same kind and, for classes, the
// same class or a descendant. A tier may tighten a declared type,
// never loosen it.
func (d Desc) Accepts(o Desc) bool {
	if d.Kind != o.Kind {
		return false
	}
	if d.Kind != ClassKind {
		return true
	}
	if d.Class == o.Class {
		return true
	}
	return o.Class != nil && o.Class.DescendsFrom(d.Class)
}
