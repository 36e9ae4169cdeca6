package ai

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 2}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSimilarity01(t *testing.T) {
	cases := []struct {
		cos  float64
		want float64
	}{
		{-1, 0},
		{0, 0.5},
		{1, 1},
		{1.5, 1},
		{-1.5, 0},
	}

	for _, tc := range cases {
		if got := Similarity01(tc.cos); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Similarity01(%v) = %v, expected %v", tc.cos, got, tc.want)
		}
	}
}
