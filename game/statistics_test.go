package game

import (
	"math"
	"testing"
)

func TestStatistics(t *testing.T) {
	data := []float64{4, 1, 3, 2}
	if got := Mean(data); got != 2.5 {
		t.Fatalf("expected mean 2.5, got %v", got)
	}
	if got := Median(data); got != 2.5 {
		t.Fatalf("expected median 2.5, got %v", got)
	}
	if data[0] != 4 {
		t.Fatalf("expected median to leave the samples untouched, got %v", data)
	}
	if got := Median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("expected odd median 2, got %v", got)
	}
	if got := Max(data); got != 4 {
		t.Fatalf("expected max 4, got %v", got)
	}
	if got := StandardDeviation(data); math.Abs(got-math.Sqrt(1.25)) > 1e-9 {
		t.Fatalf("unexpected deviation %v", got)
	}
	if Mean(nil) != 0 || Median(nil) != 0 || Max(nil) != 0 || StandardDeviation(nil) != 0 {
		t.Fatalf("expected zero for no samples")
	}
}
