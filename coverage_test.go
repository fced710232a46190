package gledge

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

const tol = 1e-4

func TestSingleSidedScenario(t *testing.T) {
	var r Ramp
	const width = 0.6
	for _, test := range []struct {
		dist float32
		want float32
	}{
		{dist: 0, want: 1},
		{dist: 0.5, want: 1},
		{dist: 0.598, want: 0.2},
		{dist: 0.595, want: 0.5},
		{dist: 0.6, want: 0},
		{dist: 0.61, want: 0},
		{dist: 3, want: 0},
	} {
		got := r.SingleSided(test.dist, width)
		if math32.Abs(got-test.want) > tol {
			t.Errorf("dist=%g: want alpha %g, got %g", test.dist, test.want, got)
		}
	}
}

func TestSingleSidedProperties(t *testing.T) {
	for _, blur := range []float32{0.005, DefaultBlur, 0.05} {
		r := Ramp{Blur: blur}
		const width = 0.6
		const n = 1000
		prev := float32(2)
		for i := 0; i <= n; i++ {
			dist := float32(i) * 1.2 / n
			alpha := r.SingleSided(dist, width)
			switch {
			case alpha < 0 || alpha > 1:
				t.Fatalf("blur=%g dist=%g: alpha %g out of range", blur, dist, alpha)
			case dist <= width-blur && alpha != 1:
				t.Errorf("blur=%g dist=%g: want full coverage, got %g", blur, dist, alpha)
			case dist >= width && alpha != 0:
				t.Errorf("blur=%g dist=%g: want zero coverage, got %g", blur, dist, alpha)
			case alpha > prev:
				t.Errorf("blur=%g dist=%g: coverage not monotonic, %g > %g", blur, dist, alpha, prev)
			}
			if dist > width-blur+tol && dist < width-tol {
				want := (width - dist) / blur
				if math32.Abs(alpha-want) > 10*tol {
					t.Errorf("blur=%g dist=%g: want linear fade %g, got %g", blur, dist, want, alpha)
				}
			}
			prev = alpha
		}
	}
}

func TestDoubleSidedScenario(t *testing.T) {
	var r Ramp
	w := RoundLineDemoWidths
	for _, test := range []struct {
		dist float32
		want float32
	}{
		{dist: 0.1, want: 1},
		{dist: 0.08, want: 1},
		{dist: 0.185, want: 1},
		{dist: 0.205, want: 0},
		{dist: 0.075, want: 0.5},
		{dist: 0.06, want: 0},
		{dist: 0, want: 0},
	} {
		got := r.DoubleSided(test.dist, w.Inner, w.Outer)
		if math32.Abs(got-test.want) > tol {
			t.Errorf("dist=%g: want alpha %g, got %g", test.dist, test.want, got)
		}
	}
	got := r.DoubleSided(0.075, w.Inner, w.Outer)
	if got <= 0 || got >= 1 {
		t.Errorf("want partial coverage inside inner fade band, got %g", got)
	}
}

func TestDoubleSidedProperties(t *testing.T) {
	r := Ramp{}
	const blur = DefaultBlur
	w := Widths{Outer: 0.2, Inner: 0.08}
	const n = 2000
	peaked := false
	prev := float32(-1)
	for i := 0; i <= n; i++ {
		dist := float32(i) * 0.3 / n
		alpha := r.DoubleSided(dist, w.Inner, w.Outer)
		switch {
		case alpha < 0 || alpha > 1:
			t.Fatalf("dist=%g: alpha %g out of range", dist, alpha)
		case dist >= w.Inner && dist <= w.Outer-blur && alpha != 1:
			t.Errorf("dist=%g: want full coverage, got %g", dist, alpha)
		case (dist < w.Inner-blur || dist > w.Outer) && alpha != 0:
			t.Errorf("dist=%g: want zero coverage, got %g", dist, alpha)
		}
		// Coverage rises then falls.
		if alpha < prev {
			peaked = true
		} else if peaked && alpha > prev {
			t.Errorf("dist=%g: coverage rises again after fade out", dist)
		}
		prev = alpha
	}
}

func TestCoverageFullAtBoundary(t *testing.T) {
	var r Ramp
	if got := r.SingleSided(0.6-DefaultBlur, 0.6); got != 1 {
		t.Errorf("want full coverage at width-blur, got %g", got)
	}
	if got := r.DoubleSided(0.08, 0.08, 0.2); got != 1 {
		t.Errorf("want full coverage at inner width, got %g", got)
	}
	for _, blur := range []float32{0.005, DefaultBlur, 0.05} {
		r := Ramp{Blur: blur}
		for _, width := range []float32{0.2, 0.3, 0.5, 0.6, 0.7, 1.3} {
			if got := r.SingleSided(width-blur, width); got != 1 {
				t.Errorf("blur=%g width=%g: want full coverage at width-blur, got %g", blur, width, got)
			}
		}
		for _, w := range []Widths{{Outer: 0.2, Inner: 0.08}, {Outer: 0.5, Inner: 0.1}, {Outer: 0.7, Inner: 0.3}} {
			if got := r.DoubleSided(w.Inner, w.Inner, w.Outer); got != 1 {
				t.Errorf("blur=%g widths=%+v: want full coverage at inner width, got %g", blur, w, got)
			}
			if got := r.DoubleSided(w.Outer-blur, w.Inner, w.Outer); got != 1 {
				t.Errorf("blur=%g widths=%+v: want full coverage at outer-blur, got %g", blur, w, got)
			}
		}
	}
	// NaN blur falls back to the default ramp.
	nanRamp := Ramp{Blur: math32.NaN()}
	if got := nanRamp.SingleSided(0.595, 0.6); math32.Abs(got-0.5) > tol {
		t.Errorf("NaN blur: want default ramp alpha 0.5, got %g", got)
	}
}

func TestCoverageRotationInvariant(t *testing.T) {
	var r Ramp
	w := RoundLineDemoWidths
	normals := []ms2.Vec{{X: 0.3}, {X: 0.5, Y: 0.5}, {X: 0.99}, {Y: 0.4}, {X: 0.7, Y: -0.71}}
	for _, n := range normals {
		blob := r.Blob(n, 0.6)
		capsule := r.Capsule(n, w)
		for i := 0; i < 36; i++ {
			rot := ms2.RotationMat2(float32(i) * 2 * math.Pi / 36)
			rn := ms2.MulMatVec(rot, n)
			if got := r.Blob(rn, 0.6); math32.Abs(got-blob) > tol {
				t.Errorf("blob coverage changed under rotation of %v: %g != %g", n, got, blob)
			}
			if got := r.Capsule(rn, w); math32.Abs(got-capsule) > tol {
				t.Errorf("capsule coverage changed under rotation of %v: %g != %g", n, got, capsule)
			}
		}
	}
}

func TestCoverageZeroNormal(t *testing.T) {
	var r Ramp
	if got := r.Blob(ms2.Vec{}, 0.6); got != 1 {
		t.Errorf("blob center: want full coverage, got %g", got)
	}
	if got := r.Capsule(ms2.Vec{}, Widths{Outer: 0.2, Inner: 0.08}); got != 0 {
		t.Errorf("capsule centerline with inner width: want zero coverage, got %g", got)
	}
	// Without an inner width the centerline is covered.
	if got := r.Capsule(ms2.Vec{}, Widths{Outer: 0.2}); got != 1 {
		t.Errorf("capsule centerline without inner width: want full coverage, got %g", got)
	}
}

func TestCoverageNaN(t *testing.T) {
	var r Ramp
	nan := math32.NaN()
	if got := r.SingleSided(nan, 0.6); got != 0 {
		t.Errorf("NaN distance: want 0, got %g", got)
	}
	if got := r.DoubleSided(0.1, nan, 0.2); got != 0 {
		t.Errorf("NaN inner width: want 0, got %g", got)
	}
}

func TestEvaluateBuffers(t *testing.T) {
	var r Ramp
	normals := []ms2.Vec{{}, {X: 0.5}, {X: 1}}
	widths := []float32{0.6, 0.6, 0.6}
	alpha := make([]float32, 3)
	err := r.EvaluateBlob(normals, widths, alpha)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{1, 1, 0}
	for i := range want {
		if alpha[i] != want[i] {
			t.Errorf("blob %d: want %g, got %g", i, want[i], alpha[i])
		}
	}
	err = r.EvaluateBlob(normals, widths[:2], alpha)
	if err != ErrMismatchLength {
		t.Errorf("want %v, got %v", ErrMismatchLength, err)
	}
	err = r.EvaluateBlob(nil, nil, nil)
	if err != ErrEmptyBuffers {
		t.Errorf("want %v, got %v", ErrEmptyBuffers, err)
	}
	err = r.EvaluateCapsule(normals, Widths{Outer: 0.1, Inner: 0.2}, alpha)
	if err == nil {
		t.Error("want error for inverted widths")
	}
	err = r.EvaluateCapsule(normals, RoundLineDemoWidths, alpha)
	if err != nil {
		t.Fatal(err)
	}
	// |n|=0.5 -> dist=0.1 inside band.
	if alpha[0] != 0 || alpha[1] != 1 || alpha[2] != 0 {
		t.Errorf("unexpected capsule coverage %v", alpha)
	}
}

func TestWidthsValidate(t *testing.T) {
	for _, test := range []struct {
		w  Widths
		ok bool
	}{
		{w: Widths{Outer: 0.2, Inner: 0.08}, ok: true},
		{w: Widths{Outer: 0.2}, ok: true},
		{w: Widths{}, ok: false},
		{w: Widths{Outer: 0.2, Inner: 0.2}, ok: false},
		{w: Widths{Outer: 0.2, Inner: -0.1}, ok: false},
		{w: Widths{Outer: math32.Inf(1)}, ok: false},
	} {
		err := test.w.Validate()
		if (err == nil) != test.ok {
			t.Errorf("%+v: want ok=%v, got err=%v", test.w, test.ok, err)
		}
	}
}
