package telemetry

import (
	"testing"
	"time"
)

func TestPropertyPoints(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	data := map[string]any{
		"temperature": 21.5,
		"count":       3,
		"on":          true,
		"color":       "FFFFFF",
		"nested":      map[string]any{"skip": true},
		"missing":     nil,
	}

	points := propertyPoints("gw-1", "thing-1", "sensor", data, ts)

	// nested and nil values are skipped.
	if len(points) != 4 {
		t.Fatalf("point count = %d, want 4", len(points))
	}

	byProperty := map[string]map[string]any{}
	for _, p := range points {
		if p.Name() != measurement {
			t.Errorf("measurement = %q, want %q", p.Name(), measurement)
		}
		var prop string
		for _, tag := range p.TagList() {
			switch tag.Key {
			case "property":
				prop = tag.Value
			case "gateway":
				if tag.Value != "gw-1" {
					t.Errorf("gateway tag = %q, want gw-1", tag.Value)
				}
			case "thing_id":
				if tag.Value != "thing-1" {
					t.Errorf("thing_id tag = %q, want thing-1", tag.Value)
				}
			case "kind":
				if tag.Value != "sensor" {
					t.Errorf("kind tag = %q, want sensor", tag.Value)
				}
			}
		}
		fields := map[string]any{}
		for _, f := range p.FieldList() {
			fields[f.Key] = f.Value
		}
		byProperty[prop] = fields
	}

	if got := byProperty["temperature"]["value"]; got != 21.5 {
		t.Errorf("temperature value = %v, want 21.5", got)
	}
	if got := byProperty["count"]["value"]; got != float64(3) {
		t.Errorf("count value = %v, want 3", got)
	}
	if got := byProperty["on"]["value_bool"]; got != true {
		t.Errorf("on value_bool = %v, want true", got)
	}
	if got := byProperty["color"]["value_str"]; got != "FFFFFF" {
		t.Errorf("color value_str = %v, want FFFFFF", got)
	}
}

func TestFieldsFor(t *testing.T) {
	tests := []struct {
		name  string
		value any
		key   string
		want  any
	}{
		{"int", 7, "value", float64(7)},
		{"int64", int64(7), "value", float64(7)},
		{"float", 2.5, "value", 2.5},
		{"bool", false, "value_bool", false},
		{"string", "red", "value_str", "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fieldsFor(tt.value)
			if fields == nil {
				t.Fatal("fieldsFor() = nil")
			}
			if got := fields[tt.key]; got != tt.want {
				t.Errorf("fields[%s] = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	if fieldsFor(nil) != nil {
		t.Error("fieldsFor(nil) should be nil")
	}
	if fieldsFor([]int{1}) != nil {
		t.Error("fieldsFor(slice) should be nil")
	}
}
