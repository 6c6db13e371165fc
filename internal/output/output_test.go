package output

import (
	"bytes"
	"strings"
	"testing"

	"cda/internal/model"
)

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.23456789, 1.234568},
		{1.2345674, 1.234567},
		{0, 0},
		{-1.9999999, -2},
		{100, 100},
	}
	for _, tt := range tests {
		if got := RoundFloat(tt.in); got != tt.want {
			t.Errorf("RoundFloat(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{1.0, "1"},
		{0.333333333, "0.333333"},
		{0, "0"},
		{-2.25, "-2.25"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func cyc(severity model.Severity, members ...string) *model.Cycle {
	return &model.Cycle{
		Path:     append(append([]string{}, members...), members[0]),
		Length:   len(members),
		Severity: severity,
	}
}

func TestSortCyclesSeverityFirst(t *testing.T) {
	cycles := []*model.Cycle{
		cyc(model.SeverityLow, "A", "B"),
		cyc(model.SeverityCritical, "C", "D"),
		cyc(model.SeverityHigh, "E", "F"),
	}
	SortCycles(cycles)

	want := []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityLow}
	for i, sev := range want {
		if cycles[i].Severity != sev {
			t.Errorf("position %d: got %s, want %s", i, cycles[i].Severity, sev)
		}
	}
}

func TestSortCyclesLengthThenMembership(t *testing.T) {
	cycles := []*model.Cycle{
		cyc(model.SeverityHigh, "X", "Y", "Z"),
		cyc(model.SeverityHigh, "C", "D"),
		cyc(model.SeverityHigh, "A", "B"),
	}
	SortCycles(cycles)

	if cycles[0].MembershipKey() != "A->B" {
		t.Errorf("first = %s, want A->B", cycles[0].MembershipKey())
	}
	if cycles[1].MembershipKey() != "C->D" {
		t.Errorf("second = %s, want C->D", cycles[1].MembershipKey())
	}
	if cycles[2].Length != 3 {
		t.Errorf("longest cycle should sort last")
	}
}

func TestSortStrategies(t *testing.T) {
	strategies := []model.Strategy{
		{Type: model.StrategyEventDrivenDecoupling, Priority: 60},
		{Type: model.StrategyLazyInitialization, Priority: 100},
		{Type: model.StrategySetterInjection, Priority: 85},
		{Type: model.StrategyInterfaceSegregation, Priority: 85},
	}
	SortStrategies(strategies)

	if strategies[0].Type != model.StrategyLazyInitialization {
		t.Errorf("first = %s, want lazy initialization", strategies[0].Type)
	}
	// Equal priorities tie-break on type, ascending.
	if strategies[1].Type != model.StrategyInterfaceSegregation {
		t.Errorf("second = %s, want interface segregation", strategies[1].Type)
	}
	if strategies[3].Priority != 60 {
		t.Errorf("last priority = %d, want 60", strategies[3].Priority)
	}
}

func TestDeterministicEncodeStable(t *testing.T) {
	v := map[string]interface{}{
		"zeta":  1.23456789,
		"alpha": []string{"x", "y"},
		"mid":   map[string]int{"b": 2, "a": 1},
	}

	first, err := DeterministicEncode(v)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := DeterministicEncode(v)
		if err != nil {
			t.Fatalf("encode error: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding not stable:\n%s\n%s", first, again)
		}
	}
	if !strings.Contains(string(first), "1.234568") {
		t.Errorf("floats should round at six decimals: %s", first)
	}
}

func TestDeterministicEncodeOmitsEmpty(t *testing.T) {
	type report struct {
		Name  string   `json:"name"`
		Extra string   `json:"extra,omitempty"`
		Tags  []string `json:"tags"`
	}

	data, err := DeterministicEncode(report{Name: "run"})
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "extra") {
		t.Errorf("empty omitempty field should vanish: %s", s)
	}
	if strings.Contains(s, "tags") {
		t.Errorf("nil slice should vanish: %s", s)
	}
	if !strings.Contains(s, `"name":"run"`) {
		t.Errorf("missing name field: %s", s)
	}
}

func TestDeterministicEncodeEnumMapKeys(t *testing.T) {
	dist := map[model.Severity]int{
		model.SeverityCritical: 1,
		model.SeverityLow:      2,
	}
	data, err := DeterministicEncode(dist)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if !strings.Contains(string(data), `"CRITICAL":1`) {
		t.Errorf("severity keys should encode as plain strings: %s", data)
	}
}

func TestDeterministicEncodeNilPointer(t *testing.T) {
	var c *model.Cycle
	data, err := DeterministicEncode(c)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("nil pointer = %s, want null", data)
	}
}

func TestDeterministicEncodeNoHTMLEscaping(t *testing.T) {
	data, err := DeterministicEncode(map[string]string{"key": "A->B"})
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if !strings.Contains(string(data), "A->B") {
		t.Errorf("arrow should survive unescaped: %s", data)
	}
}
