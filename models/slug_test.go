package models

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Paintings", "paintings"},
		{"spaces collapse", "Concept   Art", "concept-art"},
		{"accents and punctuation stripped", "Café Noir!!", "caf-noir"},
		{"hyphens kept", "3D-Models", "3d-models"},
		{"leading and trailing trimmed", "  -Sketches-  ", "sketches"},
		{"empty falls back", "", "categoria"},
		{"only symbols falls back", "!!!¿¿¿", "categoria"},
		{"mixed case lowered", "MiXeD CaSe", "mixed-case"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
