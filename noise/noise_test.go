package noise

import "testing"

func TestEval2Deterministic(t *testing.T) {
	a := NewField(5, 0.5, 2.0, 1234)
	b := NewField(5, 0.5, 2.0, 1234)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			fx, fy := float64(x)*0.1, float64(y)*0.1
			if av, bv := a.Eval2(fx, fy), b.Eval2(fx, fy); av != bv {
				t.Fatalf("value at (%f,%f) differs: %f != %f", fx, fy, av, bv)
			}
		}
	}
}

func TestEval2Range(t *testing.T) {
	f := NewField(6, 0.5, 2.0, 99)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			v := f.Eval2(float64(x)*0.17, float64(y)*0.17)
			if v < 0 || v > 1 {
				t.Fatalf("value %f at (%d,%d) outside [0,1]", v, x, y)
			}
		}
	}
}

func TestEval3Range(t *testing.T) {
	f := NewField(4, 0.5, 2.0, 7)
	for i := 0; i < 64; i++ {
		v := f.Eval3(float64(i)*0.21, float64(i)*0.13, float64(i)*0.07)
		if v < 0 || v > 1 {
			t.Fatalf("value %f at sample %d outside [0,1]", v, i)
		}
	}
}

func TestSeedsDiffer(t *testing.T) {
	a := NewField(5, 0.5, 2.0, 1)
	b := NewField(5, 0.5, 2.0, 2)
	differs := false
	for i := 0; i < 64 && !differs; i++ {
		fx := float64(i) * 0.11
		if a.Eval2(fx, fx*0.7) != b.Eval2(fx, fx*0.7) {
			differs = true
		}
	}
	if !differs {
		t.Fatal("different seeds produced identical fields")
	}
}

func TestLacunarityMatters(t *testing.T) {
	a := NewField(5, 0.5, 1.6, 1234)
	b := NewField(5, 0.5, 2.4, 1234)
	differs := false
	for i := 1; i < 64 && !differs; i++ {
		fx := float64(i) * 0.11
		if a.Eval2(fx, fx) != b.Eval2(fx, fx) {
			differs = true
		}
	}
	if !differs {
		t.Fatal("lacunarity had no effect on the field")
	}
}

func TestPlusOneOctave(t *testing.T) {
	f := NewField(3, 0.5, 2.0, 42)
	g := f.PlusOneOctave()
	if g.Octaves != 4 {
		t.Fatalf("expected 4 octaves, got %d", g.Octaves)
	}
	if g.Seed != f.Seed || g.Persistence != f.Persistence || g.Lacunarity != f.Lacunarity {
		t.Fatal("octave bump changed unrelated parameters")
	}
}
