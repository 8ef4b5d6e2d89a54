package typedesc

import (
	"fmt"
	"sync"
)

// Class is a registered reference type identity. Classes form a
// single-parent hierarchy used by descendant checks.
type Class struct {
	Name   string
	Parent *Class
}

func (c *Class) Class() *Class { return c }

func (c *Class) String() string { return c.Name }

// DescendsFrom reports whether c is a strict descendant of o.
func (c *Class) DescendsFrom(o *Class) bool {
	if c == nil || o == nil {
		return false
	}
	for p := c.Parent; p != nil; p = p.Parent {
		if p == o {
			return true
		}
	}
	return false
}

var (
	mu       sync.RWMutex
	registry = make(map[string]*Class)
)

// Register registers a class in the global registry. parent may be
// nil for a hierarchy root.
func Register(name string, parent *Class) (*Class, error) {
	if name == "" {
		return nil, fmt.Errorf("class must have a name")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[name]; exists {
		return nil, fmt.Errorf("class %q already registered", name)
	}
	c := &Class{Name: name, Parent: parent}
	registry[name] = c
	return c, nil
}

// MustRegister is Register that panics on error, for package init.
func MustRegister(name string, parent *Class) *Class {
	c, err := Register(name, parent)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup looks up a class by name.
func Lookup(name string) *Class {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// All returns all registered classes.
func All() map[string]*Class {
	mu.RLock()
	defer mu.RUnlock()

	result := make(map[string]*Class, len(registry))
	for k, v := range registry {
		result[k] = v
	}
	return result
}
