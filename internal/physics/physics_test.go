package physics

import (
	"math"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		lo, hi float64
		want   float64
	}{
		{"inside", 40, 0, 100, 40},
		{"on bound", 100, 0, 100, 100},
		{"one bounce low", -30, 0, 100, 30},
		{"one bounce high", 130, 0, 100, 70},
		{"two bounces", 230, 0, 100, 30},
		{"many bounces", -1030, 0, 100, 30},
		{"offset range", 5, 10, 20, 15},
		{"empty range", 50, 10, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fold(tt.v, tt.lo, tt.hi)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Fold(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestFoldInfinity(t *testing.T) {
	if got := Fold(math.Inf(1), 0, 10); got != 10 {
		t.Errorf("Fold(+Inf) = %v, want 10", got)
	}
}

func TestHeadingForcesDirection(t *testing.T) {
	vx, vy := Heading(10, 0, -1)
	if vx != -10 || vy != 0 {
		t.Errorf("Heading(10, 0, -1) = (%v, %v), want (-10, 0)", vx, vy)
	}

	vx, vy = Heading(10, math.Pi/6, 1)
	if vx <= 0 {
		t.Errorf("vx = %v, want positive", vx)
	}
	if math.Abs(Speed(vx, vy)-10) > 1e-9 {
		t.Errorf("speed = %v, want 10", Speed(vx, vy))
	}
}

func TestScale(t *testing.T) {
	vx, vy := Scale(30, 40, 10)
	if math.Abs(vx-6) > 1e-9 || math.Abs(vy-8) > 1e-9 {
		t.Errorf("Scale(30, 40, 10) = (%v, %v), want (6, 8)", vx, vy)
	}
	vx, vy = Scale(3, 4, 10)
	if vx != 3 || vy != 4 {
		t.Errorf("Scale below limit changed the vector: (%v, %v)", vx, vy)
	}
}

func TestInSpan(t *testing.T) {
	if !InSpan(0, 0, 10) {
		t.Error("start should be inside")
	}
	if InSpan(10, 0, 10) {
		t.Error("end should be outside")
	}
}

func TestCirclesOverlap(t *testing.T) {
	if !CirclesOverlap(0, 0, 5, 8, 0, 5) {
		t.Error("expected overlap")
	}
	if CirclesOverlap(0, 0, 5, 10, 0, 5) {
		t.Error("touching circles should not overlap")
	}
}
