package core

import (
	"math"
	"testing"
)

func TestVec3BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Expected sum {5 7 9}, got %v", sum)
	}

	diff := b.Subtract(a)
	if diff != (Vec3{3, 3, 3}) {
		t.Errorf("Expected difference {3 3 3}, got %v", diff)
	}

	scaled := a.Multiply(2)
	if scaled != (Vec3{2, 4, 6}) {
		t.Errorf("Expected scaled {2 4 6}, got %v", scaled)
	}

	dot := a.Dot(b)
	if dot != 32 {
		t.Errorf("Expected dot product 32, got %v", dot)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalize()

	if math.Abs(n.Length()-1.0) > 1e-9 {
		t.Errorf("Expected unit length, got %v", n.Length())
	}
	if math.Abs(n.X-0.6) > 1e-9 || math.Abs(n.Z-0.8) > 1e-9 {
		t.Errorf("Expected {0.6 0 0.8}, got %v", n)
	}

	// Zero vector normalizes to zero rather than NaN
	zero := Vec3{}.Normalize()
	if zero != (Vec3{0, 0, 0}) {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3RotateAboutY(t *testing.T) {
	// Rotating the into-the-wall direction by 90 degrees should land on the X axis
	v := NewVec3(0, 0, -1)
	r := v.RotateAboutY(math.Pi / 2)

	if math.Abs(r.X+1) > 1e-9 || math.Abs(r.Y) > 1e-9 || math.Abs(r.Z) > 1e-9 {
		t.Errorf("Expected {-1 0 0}, got %v", r)
	}

	// Rotation preserves length
	w := NewVec3(1, 2, 3)
	if math.Abs(w.RotateAboutY(0.7).Length()-w.Length()) > 1e-9 {
		t.Errorf("Rotation changed vector length")
	}

	// Zero angle is identity
	if w.RotateAboutY(0) != w {
		t.Errorf("Expected identity rotation, got %v", w.RotateAboutY(0))
	}
}
