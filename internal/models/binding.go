package models

import "fmt"

// Mode selects the container resolution policy of a binding
type Mode int

const (
	// ModeTransient creates a new instance on every resolution
	ModeTransient Mode = iota
	// ModeSingleton caches the first resolved instance for the container lifetime
	ModeSingleton
)

// String returns the lowercase name of the mode
func (m Mode) String() string {
	if m == ModeSingleton {
		return "singleton"
	}
	return "transient"
}

// Method returns the container method that registers a binding in this mode
func (m Mode) Method() string {
	if m == ModeSingleton {
		return "singleton"
	}
	return "bind"
}

// ModeFor maps the --singleton flag to a Mode
func ModeFor(singleton bool) Mode {
	if singleton {
		return ModeSingleton
	}
	return ModeTransient
}

// BindingSpec describes a registration the provider patcher must insert
type BindingSpec struct {
	Implementation string // FQN of the concrete class
	Interface      string // optional FQN of the abstract type it is bound to
	Dependency     string // optional FQN of the model the constructor receives
	Mode           Mode
}

// HasInterface reports whether the binding maps an interface to the implementation
func (b BindingSpec) HasInterface() bool {
	return b.Interface != ""
}

// Validate checks that every FQN of the binding is well-formed
func (b BindingSpec) Validate() error {
	if err := ValidateFQN(b.Implementation); err != nil {
		return fmt.Errorf("implementation: %w", err)
	}
	if b.Interface != "" {
		if err := ValidateFQN(b.Interface); err != nil {
			return fmt.Errorf("interface: %w", err)
		}
	}
	if b.Dependency != "" {
		if err := ValidateFQN(b.Dependency); err != nil {
			return fmt.Errorf("dependency: %w", err)
		}
	}
	return nil
}

// Describe returns a short human-readable form such as "FooInterface => Foo"
func (b BindingSpec) Describe() string {
	if b.HasInterface() {
		return ShortName(b.Interface) + " => " + ShortName(b.Implementation)
	}
	return ShortName(b.Implementation)
}
