package model

import (
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ComponentRole
	}{
		{"service", "service", RoleService},
		{"repository", "repository", RoleRepository},
		{"controller", "controller", RoleController},
		{"rest controller", "rest-controller", RoleRestController},
		{"rest controller compact", "restcontroller", RoleRestController},
		{"configuration", "configuration", RoleConfiguration},
		{"config shorthand", "config", RoleConfiguration},
		{"uppercase", "SERVICE", RoleService},
		{"whitespace", "  repository  ", RoleRepository},
		{"unknown defaults to component", "widget", RoleComponent},
		{"empty defaults to component", "", RoleComponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRole(tt.input)
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLazyTargetWeight(t *testing.T) {
	tests := []struct {
		role ComponentRole
		want int
	}{
		{RoleService, 10},
		{RoleRepository, 8},
		{RoleComponent, 6},
		{RoleController, 4},
		{RoleRestController, 4},
		{RoleConfiguration, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.LazyTargetWeight(); got != tt.want {
				t.Errorf("LazyTargetWeight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseMechanism(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    InjectionMechanism
		wantErr bool
	}{
		{"constructor", "constructor", InjectConstructor, false},
		{"field", "field", InjectField, false},
		{"setter", "setter", InjectSetter, false},
		{"method", "method", InjectMethod, false},
		{"other-method alias", "other-method", InjectMethod, false},
		{"parameter", "parameter", InjectParameter, false},
		{"uppercase", "FIELD", InjectField, false},
		{"unknown", "telepathy", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMechanism(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMechanism(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMechanism(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsMethodStyle(t *testing.T) {
	if !InjectSetter.IsMethodStyle() {
		t.Error("setter injection should be method-style")
	}
	if !InjectMethod.IsMethodStyle() {
		t.Error("method injection should be method-style")
	}
	if InjectConstructor.IsMethodStyle() {
		t.Error("constructor injection should not be method-style")
	}
	if InjectField.IsMethodStyle() {
		t.Error("field injection should not be method-style")
	}
}

func TestNewComponent(t *testing.T) {
	comp, err := NewComponent("com.example.OrderService", RoleService, nil)
	if err != nil {
		t.Fatalf("NewComponent returned error: %v", err)
	}
	if comp.ID != "com.example.OrderService" {
		t.Errorf("ID = %q, want %q", comp.ID, "com.example.OrderService")
	}
	if comp.Role != RoleService {
		t.Errorf("Role = %v, want %v", comp.Role, RoleService)
	}

	if _, err := NewComponent("", RoleService, nil); err == nil {
		t.Error("NewComponent with empty id should fail")
	}
	if _, err := NewComponent("   ", RoleService, nil); err == nil {
		t.Error("NewComponent with blank id should fail")
	}
}

func TestHasLazyMarker(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"lazyOrderService", true},
		{"orderServiceLazy", true},
		{"LAZY_REF", true},
		{"orderService", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := HasLazyMarker(tt.label); got != tt.want {
				t.Errorf("HasLazyMarker(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}
