package docmd

import (
	"testing"

	"google.golang.org/api/docs/v1"
)

func TestOrderedAt(t *testing.T) {
	lists := map[string]docs.List{
		"mixed":   bulletList("DECIMAL", "", "UPPER_ROMAN"),
		"bullets": bulletList("", ""),
		"empty":   {},
	}

	tests := []struct {
		name  string
		id    string
		level int64
		want  bool
	}{
		{name: "decimal level", id: "mixed", level: 0, want: true},
		{name: "bullet level", id: "mixed", level: 1, want: false},
		{name: "roman level", id: "mixed", level: 2, want: true},
		{name: "level past definition", id: "mixed", level: 5, want: false},
		{name: "negative level", id: "mixed", level: -1, want: false},
		{name: "all bullets", id: "bullets", level: 0, want: false},
		{name: "no properties", id: "empty", level: 0, want: false},
		{name: "unknown id", id: "nope", level: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderedAt(lists, tt.id, tt.level); got != tt.want {
				t.Errorf("orderedAt(%q, %d) = %v, want %v", tt.id, tt.level, got, tt.want)
			}
		})
	}
}
