package fractalworlds

import (
	"math"
	"reflect"
	"testing"

	"github.com/camkilo/fractalworlds/rng"
)

func TestPatternDepths(t *testing.T) {
	want := [NumPatterns]int{6, 5, 6, 8, 4}
	if patternDepth != want {
		t.Fatalf("patternDepth = %v, want %v", patternDepth, want)
	}
}

func TestBuildPatternNodeCounts(t *testing.T) {
	// Tower and spiral emit a fixed count per level, mandala and portal a
	// ring per level, crystal forks into two children per level.
	wantNodes := map[StructurePattern]int{
		PatternFractalTower:     35,  // 7 levels x (floor + 4 pillars)
		PatternRadialMandala:    36,  // 6 levels x 6 petals
		PatternHexagonalCrystal: 762, // (2^7 - 1) calls x 6 vertices
		PatternSpiral:           45,  // 9 levels x 5 arc nodes
		PatternPortalCircle:     50,  // rings of 14, 12, 10, 8, 6 stones
	}
	for p, want := range wantNodes {
		depth := patternDepth[p]
		nodes := buildPattern(p, depth)
		if len(nodes) != want {
			t.Errorf("%v: %d nodes, want %d", p, len(nodes), want)
		}
		for i, n := range nodes {
			if n.Depth < 0 || n.Depth > depth {
				t.Errorf("%v node %d: depth %d outside [0, %d]", p, i, n.Depth, depth)
			}
			if n.Scale <= 0 {
				t.Errorf("%v node %d: scale %v", p, i, n.Scale)
			}
		}
		if again := buildPattern(p, depth); !reflect.DeepEqual(nodes, again) {
			t.Errorf("%v: geometry not deterministic", p)
		}
	}
}

func TestGenerateStructures(t *testing.T) {
	tr := generateTerrain(42, 128)
	cfg := NewGenConfig()
	structures := generateStructures(tr, rng.New(42).Sub("structures"), cfg)
	if want := 7; len(structures) != want {
		t.Fatalf("got %d structures, want %d", len(structures), want)
	}

	for si, s := range structures {
		if s.Depth != patternDepth[s.Pattern] {
			t.Errorf("structure %d: depth %d for %v", si, s.Depth, s.Pattern)
		}
		if s.Runes < s.Depth || s.Runes > s.Depth+7 {
			t.Errorf("structure %d: %d runes for depth %d", si, s.Runes, s.Depth)
		}
		if s.Glow <= 0 || s.Glow > cfg.MagicIntensity {
			t.Errorf("structure %d: glow %v outside (0, %v]", si, s.Glow, cfg.MagicIntensity)
		}
		cell := tr.CellIndex(int(s.X), int(s.Y))
		if !tr.Biomes[cell].IsLand() {
			t.Errorf("structure %d placed on %v", si, tr.Biomes[cell])
		}
		if h := tr.Height[cell]; h <= 0.25 || h >= 0.75 {
			t.Errorf("structure %d placed at height %v", si, h)
		}
	}

	again := generateStructures(tr, rng.New(42).Sub("structures"), cfg)
	if !reflect.DeepEqual(structures, again) {
		t.Fatal("same seed produced different structures")
	}
}

func TestGenerateVillages(t *testing.T) {
	tr := generateTerrain(42, 128)
	villages := generateVillages(tr, rng.New(42).Sub("structures"), NewGenConfig())
	if len(villages) == 0 {
		t.Fatal("no villages on a 128x128 world")
	}
	if max := 2 + tr.Size*tr.Size/8192; len(villages) > max {
		t.Fatalf("got %d villages, cap is %d", len(villages), max)
	}

	minSep := float64(tr.Size) / 8
	for vi, v := range villages {
		if b := tr.Biomes[v.Cell]; b != BiomePlains && b != BiomeForest {
			t.Errorf("village %d anchored on %v", vi, b)
		}
		if v.Name == "" {
			t.Errorf("village %d has no name", vi)
		}
		if n := len(v.Huts); n < 4 || n > 9 {
			t.Errorf("village %d has %d huts", vi, n)
		}
		for hi, h := range v.Huts {
			if h.X < 0 || h.X > float64(tr.Size-1) || h.Y < 0 || h.Y > float64(tr.Size-1) {
				t.Errorf("village %d hut %d at (%v, %v) off grid", vi, hi, h.X, h.Y)
			}
			if h.Size < 0.8 || h.Size > 1.6 {
				t.Errorf("village %d hut %d size %v", vi, hi, h.Size)
			}
		}
		for wi, w := range villages[:vi] {
			x1, y1 := tr.CellXY(v.Cell)
			x2, y2 := tr.CellXY(w.Cell)
			if d := math.Hypot(float64(x1-x2), float64(y1-y2)); d < minSep {
				t.Errorf("villages %d and %d only %.1f apart, want %.1f", wi, vi, d, minSep)
			}
		}
	}
}

func TestGenerateCaves(t *testing.T) {
	tr := generateTerrain(42, 128)
	caves := generateCaves(tr, rng.New(42).Sub("structures"))
	if len(caves) == 0 {
		t.Fatal("no caves on a 128x128 world")
	}
	if max := 4 + tr.Size/64; len(caves) > max {
		t.Fatalf("got %d caves, cap is %d", len(caves), max)
	}
	for ci, c := range caves {
		if h := tr.Height[c.Cell]; h <= caveLevel {
			t.Errorf("cave %d at height %v, want above %v", ci, h, caveLevel)
		}
		if !tr.Biomes[c.Cell].IsLand() {
			t.Errorf("cave %d on %v", ci, tr.Biomes[c.Cell])
		}
		if c.Depth < 8 || c.Depth > 40 {
			t.Errorf("cave %d depth %d outside [8, 40]", ci, c.Depth)
		}
	}
}

func TestRandomLandCellRespectsWindow(t *testing.T) {
	tr := flatTerrain(32)
	for i := range tr.Height {
		tr.Height[i] = 0.9
	}
	if _, ok := randomLandCell(tr, rng.New(3).Sub("structures"), 40); ok {
		t.Fatal("found a mid-range cell on terrain that has none")
	}
}

func TestPatternStrings(t *testing.T) {
	want := map[StructurePattern]string{
		PatternFractalTower:     "fractal_tower",
		PatternRadialMandala:    "radial_mandala",
		PatternHexagonalCrystal: "hexagonal_crystal",
		PatternSpiral:           "spiral",
		PatternPortalCircle:     "portal_circle",
	}
	for p, s := range want {
		if p.String() != s {
			t.Errorf("%d.String() = %q, want %q", p, p.String(), s)
		}
	}
}
