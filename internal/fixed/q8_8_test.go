package fixed

import "testing"

func TestToFloat32RoundTrip(t *testing.T) {
	cases := []float32{0, 1, -1, 0.5, -0.5, 127.99609375, -128}
	for _, f := range cases {
		v := FromFloat32(f)
		got := ToFloat32(v)
		if diff := got - f; diff > 1.0/Scale || diff < -1.0/Scale {
			t.Errorf("FromFloat32(%v)->ToFloat32 = %v, want within one Q8.8 unit", f, got)
		}
	}
}

func TestFromFloat32ZeroIsZero(t *testing.T) {
	if v := FromFloat32(0); v != 0 {
		t.Errorf("FromFloat32(0) = %d, want 0", v)
	}
}

func TestToFloat32UMatchesSignedForNonNegative(t *testing.T) {
	v := FromFloat32U(12.25)
	got := ToFloat32U(v)
	if got != 12.25 {
		t.Errorf("ToFloat32U(FromFloat32U(12.25)) = %v, want 12.25", got)
	}
	if signed := ToFloat32(FromFloat32(12.25)); signed != got {
		t.Errorf("signed round trip of 12.25 = %v, unsigned = %v, want equal", signed, got)
	}
}

func TestFromFloat32UClampsNegativeToZero(t *testing.T) {
	if v := FromFloat32U(-5); v != 0 {
		t.Errorf("FromFloat32U(-5) = %d, want 0", v)
	}
}

func TestScaleIs256(t *testing.T) {
	if Scale != 256 {
		t.Fatalf("Scale = %d, want 256", Scale)
	}
}
