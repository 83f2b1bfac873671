package model

import "testing"

func TestContainsNUL(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"plain string", "curry", false},
		{"string with NUL", "cur\x00ry", true},
		{"number", 1.5, false},
		{"nil", nil, false},
		{"nested value", map[string]any{"a": map[string]any{"b": []any{"ok", "x\x00"}}}, true},
		{"key", map[string]any{"k\x00": "v"}, true},
		{"clean document", map[string]any{"meal": "soup", "tags": []any{"hot", 2.0, true}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsNUL(tt.v); got != tt.want {
				t.Errorf("ContainsNUL(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
