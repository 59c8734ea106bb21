package orbit

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestPositionStaysOnPath(t *testing.T) {
	o := New(rand.New(rand.NewPCG(1, 2)))
	o.Resize(800, 600)

	start := o.Position(0)
	want := r2.Vec{
		X: 400 + 200*math.Sin(o.Seed1),
		Y: 300 + 200*math.Sin(o.Seed2),
	}
	if r2.Norm(r2.Sub(start, want)) > 1e-9 {
		t.Fatalf("Position(0) = %v, want %v", start, want)
	}

	for tick := 0; tick < 5000; tick += 37 {
		p := r2.Sub(o.Position(tick), o.Center)
		if math.Abs(p.X) > o.Radius+1e-9 || math.Abs(p.Y) > o.Radius+1e-9 {
			t.Fatalf("tick %d left the box: %v", tick, p)
		}
	}
}

func TestHue(t *testing.T) {
	o := &Orbit{Seed1: 0.5, Seed2: 0.25}
	tests := []struct {
		tick int
		want float64
	}{
		{0, 180},
		{10, 180},
		{20, 181},
		{3600, 0},
		{3620, 1},
	}
	for _, tt := range tests {
		if got := o.Hue(tt.tick); got != tt.want {
			t.Errorf("Hue(%d) = %v, want %v", tt.tick, got, tt.want)
		}
	}
}

func TestStepColorAndTrail(t *testing.T) {
	o := New(rand.New(rand.NewPCG(7, 7)))
	o.MaxTrail = 3

	var last Dot
	for i := 0; i < 5; i++ {
		last = o.Step()
	}
	if last.Tick != 4 || o.Tick() != 5 {
		t.Fatalf("ticks: dot %d, orbit %d", last.Tick, o.Tick())
	}
	h, s, l := last.Color.Hsl()
	if math.Abs(s-0.7) > 1e-6 || math.Abs(l-0.5) > 1e-6 {
		t.Errorf("color hsl = (%v, %v, %v), want s=0.7 l=0.5", h, s, l)
	}

	trail := o.Trail()
	if len(trail) != 3 || trail[0].Tick != 2 {
		t.Fatalf("trail = %d dots starting at %d", len(trail), trail[0].Tick)
	}

	o.Clear()
	if len(o.Trail()) != 0 || o.Tick() != 5 {
		t.Error("Clear should empty the trail and keep the tick")
	}
	o.Reset()
	if o.Tick() != 0 {
		t.Error("Reset should restart the path")
	}
}

func TestSeedsDiffer(t *testing.T) {
	a, b := New(nil), New(nil)
	if a.Seed1 == b.Seed1 && a.Seed2 == b.Seed2 {
		t.Error("two orbits got the same seeds")
	}
}
