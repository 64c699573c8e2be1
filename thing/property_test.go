package thing

import (
	"encoding/json"
	"testing"
)

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		name string
		typ  PropertyType
		want any
	}{
		{"int", PropertyTypeInt, 0},
		{"string", PropertyTypeString, ""},
		{"bool", PropertyTypeBool, false},
		{"color", PropertyTypeColor, "FFFFFF"},
		{"unknown", PropertyType(42), nil},
		{"negative", PropertyType(-1), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultValue(tt.typ); got != tt.want {
				t.Errorf("DefaultValue(%v) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestNewPropertyDefaults(t *testing.T) {
	tests := []struct {
		name      string
		typ       PropertyType
		wantValue any
	}{
		{"temperature", PropertyTypeInt, 0},
		{"label", PropertyTypeString, ""},
		{"enabled", PropertyTypeBool, false},
		{"tint", PropertyTypeColor, "FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProperty(tt.name, tt.typ)
			if p.Name != tt.name {
				t.Errorf("Name = %q, want %q", p.Name, tt.name)
			}
			if p.Type != tt.typ {
				t.Errorf("Type = %v, want %v", p.Type, tt.typ)
			}
			if p.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", p.Value, tt.wantValue)
			}
		})
	}
}

func TestPropertyWithValuePreservesFalsy(t *testing.T) {
	// An explicit value must survive verbatim even when it equals the
	// zero value for its type.
	tests := []struct {
		name  string
		typ   PropertyType
		value any
	}{
		{"zero int", PropertyTypeInt, 0},
		{"false bool", PropertyTypeBool, false},
		{"empty string", PropertyTypeString, ""},
		{"explicit color", PropertyTypeColor, "000000"},
		{"nonzero int", PropertyTypeInt, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProperty("p", tt.typ).WithValue(tt.value)
			if p.Value != tt.value {
				t.Errorf("Value = %v, want %v", p.Value, tt.value)
			}
		})
	}
}

func TestPropertyModelFieldOrder(t *testing.T) {
	// Field order is a wire contract: name, type, range, value, unit,
	// description. encoding/json preserves struct declaration order.
	p := NewProperty("temperature", PropertyTypeInt).
		WithValue(21).
		WithRange([]int{-40, 80}).
		WithUnit("C").
		WithDescription("ambient temperature")

	got, err := json.Marshal(p.Model())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"name":"temperature","type":0,"range":[-40,80],"value":21,"unit":"C","description":"ambient temperature"}`
	if string(got) != want {
		t.Errorf("Model JSON = %s, want %s", got, want)
	}
}

func TestPropertyModelBareDefaults(t *testing.T) {
	got, err := json.Marshal(NewProperty("seen", PropertyTypeBool).Model())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"name":"seen","type":2,"range":null,"value":false,"unit":"","description":""}`
	if string(got) != want {
		t.Errorf("Model JSON = %s, want %s", got, want)
	}
}

func TestPropertyString(t *testing.T) {
	p := NewProperty("temperature", PropertyTypeInt).WithValue(21).WithUnit("C")
	if got, want := p.String(), "temperature:21C"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPropertyTypeString(t *testing.T) {
	tests := []struct {
		typ  PropertyType
		want string
	}{
		{PropertyTypeInt, "int"},
		{PropertyTypeString, "string"},
		{PropertyTypeBool, "bool"},
		{PropertyTypeColor, "color"},
		{PropertyType(9), "unknown(9)"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("PropertyType(%d).String() = %q, want %q", int(tt.typ), got, tt.want)
		}
	}
}
