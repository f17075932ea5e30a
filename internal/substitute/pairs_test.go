package substitute

import (
	"reflect"
	"testing"
)

func TestPairs(t *testing.T) {
	environ := []string{
		"PATH=/usr/bin",
		"VITE_B=second",
		"VITE_A=first",
		"vite_lower=ignored",
		"XVITE_C=ignored",
		"VITE_EMPTY=",
		"VITE_EQ=a=b",
		"VITE_A=duplicate",
		"NOEQUALS",
		"VITE_=bare",
	}

	got := Pairs(environ, "VITE_")
	want := []Pair{
		{Key: "VITE_", Value: "bare"},
		{Key: "VITE_A", Value: "first"},
		{Key: "VITE_B", Value: "second"},
		{Key: "VITE_EMPTY", Value: ""},
		{Key: "VITE_EQ", Value: "a=b"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPairsEmptyPrefix(t *testing.T) {
	if got := Pairs([]string{"A=1"}, ""); got != nil {
		t.Errorf("empty prefix must select nothing, got %v", got)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name  string
		pairs []Pair
		want  []Overlap
	}{
		{
			name:  "disjoint",
			pairs: []Pair{{"APP_URL", "x"}, {"APP_KEY", "y"}},
			want:  nil,
		},
		{
			name:  "key prefix of key",
			pairs: []Pair{{"APP_A", "1"}, {"APP_AB", "2"}},
			want:  []Overlap{{Key: "APP_A", Other: "APP_AB"}},
		},
		{
			name:  "key inside value",
			pairs: []Pair{{"APP_HOST", "h"}, {"APP_URL", "https://APP_HOST/"}},
			want:  []Overlap{{Key: "APP_HOST", Other: "APP_URL", InValue: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.pairs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
