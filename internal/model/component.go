package model

import (
	"fmt"
	"strings"
)

// ComponentRole classifies what kind of managed unit a component is
type ComponentRole string

const (
	// RoleService is a business-logic component
	RoleService ComponentRole = "service"
	// RoleRepository is a data-access component
	RoleRepository ComponentRole = "repository"
	// RoleController is a web-layer component
	RoleController ComponentRole = "controller"
	// RoleRestController is a REST web-layer component
	RoleRestController ComponentRole = "rest-controller"
	// RoleConfiguration is a configuration-providing component
	RoleConfiguration ComponentRole = "configuration"
	// RoleComponent is the generic managed component role
	RoleComponent ComponentRole = "component"
)

// ParseRole converts a string to a ComponentRole, defaulting to the
// generic component role for unknown input
func ParseRole(s string) ComponentRole {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "service":
		return RoleService
	case "repository":
		return RoleRepository
	case "controller":
		return RoleController
	case "rest-controller", "restcontroller":
		return RoleRestController
	case "configuration", "config":
		return RoleConfiguration
	default:
		return RoleComponent
	}
}

// LazyTargetWeight returns how attractive a component of this role is as
// the target of a lazy-initialization fix. Services carry the most state
// and benefit most; configuration components the least.
func (r ComponentRole) LazyTargetWeight() int {
	switch r {
	case RoleService:
		return 10
	case RoleRepository:
		return 8
	case RoleComponent:
		return 6
	case RoleController, RoleRestController:
		return 4
	case RoleConfiguration:
		return 2
	default:
		return 6
	}
}

// InjectionMechanism identifies how a dependency is injected
type InjectionMechanism string

const (
	// InjectConstructor is constructor injection
	InjectConstructor InjectionMechanism = "constructor"
	// InjectField is field injection
	InjectField InjectionMechanism = "field"
	// InjectSetter is setter injection
	InjectSetter InjectionMechanism = "setter"
	// InjectMethod is injection through a non-setter method
	InjectMethod InjectionMechanism = "method"
	// InjectParameter is factory/provider parameter injection
	InjectParameter InjectionMechanism = "parameter"
)

// ParseMechanism converts a string to an InjectionMechanism
func ParseMechanism(s string) (InjectionMechanism, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "constructor":
		return InjectConstructor, nil
	case "field":
		return InjectField, nil
	case "setter":
		return InjectSetter, nil
	case "method", "other-method":
		return InjectMethod, nil
	case "parameter":
		return InjectParameter, nil
	default:
		return "", fmt.Errorf("unknown injection mechanism: %q", s)
	}
}

// IsMethodStyle reports whether the mechanism injects through a method
// call after construction (setter or other method)
func (m InjectionMechanism) IsMethodStyle() bool {
	return m == InjectSetter || m == InjectMethod
}

// InjectionEdge is a directed dependency from one component to another
type InjectionEdge struct {
	Source         string             `json:"source"`
	Target         string             `json:"target"`
	Mechanism      InjectionMechanism `json:"mechanism"`
	Required       bool               `json:"required"`
	Qualifier      string             `json:"qualifier,omitempty"`
	InjectionPoint string             `json:"injectionPoint,omitempty"` // field/parameter/method name, for diagnostics
}

// Component is a managed unit in the dependency-injection graph.
// Built once per analysis run from extracted metadata; treated as
// immutable afterwards.
type Component struct {
	ID           string          `json:"id"` // fully qualified name
	Role         ComponentRole   `json:"role"`
	LazyInit     bool            `json:"lazyInit"`
	Primary      bool            `json:"primary"`
	HasLazyDeps  bool            `json:"hasLazyDeps"`
	Dependencies []InjectionEdge `json:"dependencies,omitempty"`
}

// NewComponent creates a component, validating its identity
func NewComponent(id string, role ComponentRole, deps []InjectionEdge) (*Component, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("component id must not be empty")
	}
	return &Component{
		ID:           id,
		Role:         role,
		Dependencies: deps,
	}, nil
}

// HasLazyMarker reports whether an injection-point label carries an
// explicit lazy marker. Best-effort heuristic; the structural flags on
// Component are the authoritative signal.
func HasLazyMarker(label string) bool {
	return strings.Contains(strings.ToLower(label), "lazy")
}
