package fractalworlds

import (
	"testing"
)

func TestClassifyBiome(t *testing.T) {
	const water = 0.36
	tests := []struct {
		name            string
		height, climate float64
		want            Biome
	}{
		{"below water level", 0.2, 0.5, BiomeWater},
		{"bottom of the sea", 0.0, 0.9, BiomeWater},
		{"high peak", 0.9, 0.5, BiomeMountains},
		{"cold climate", 0.5, 0.1, BiomeTundra},
		{"hot and dry", 0.5, 0.9, BiomeDesert},
		{"wet lowland", 0.40, 0.60, BiomeSwamp},
		{"wet highland drains", 0.55, 0.60, BiomeForest},
		{"grove band", 0.52, 0.44, BiomeMagicalGrove},
		{"grove terrain too low", 0.40, 0.44, BiomePlains},
		{"temperate forest", 0.5, 0.65, BiomeForest},
		{"open plains", 0.5, 0.35, BiomePlains},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyBiome(tc.height, tc.climate, water); got != tc.want {
				t.Errorf("classifyBiome(%.2f, %.2f) = %v, want %v", tc.height, tc.climate, got, tc.want)
			}
		})
	}
}

func TestClassifyTracksWaterLevel(t *testing.T) {
	// Raising the water level drowns cells without retuning the bands.
	if got := classifyBiome(0.45, 0.5, 0.5); got != BiomeWater {
		t.Errorf("cell below raised water level classified %v", got)
	}
	// The swamp band rides on top of the new water level.
	if got := classifyBiome(0.55, 0.60, 0.5); got != BiomeSwamp {
		t.Errorf("lowland above raised water level = %v, want swamp", got)
	}
}

func TestBiomeSharesNearTargets(t *testing.T) {
	if testing.Short() {
		t.Skip("large grid")
	}
	tr := generateTerrain(42, 256)
	shares := tr.Stats().BiomeShares

	// Coverage targets are statistical; the windows here are wide on
	// purpose and only catch gross miscalibration.
	windows := map[string][2]float64{
		"forest":        {8, 50},
		"plains":        {15, 60},
		"water":         {5, 35},
		"mountains":     {1, 25},
		"desert":        {0.2, 15},
		"swamp":         {0.2, 15},
		"tundra":        {0.2, 15},
		"magical_grove": {0.2, 15},
	}
	for name, window := range windows {
		share, ok := shares[name]
		if !ok {
			t.Fatalf("biome %q missing from stats", name)
		}
		if share < window[0] || share > window[1] {
			t.Errorf("%s share %.2f%% outside [%v%%, %v%%]", name, share, window[0], window[1])
		}
	}

	if got := tr.BiomeCount(); got != NumBiomes {
		t.Errorf("distinct biomes = %d, want %d", got, NumBiomes)
	}
}

func TestAllCellsCarryValidBiome(t *testing.T) {
	tr := generateTerrain(3, 64)
	for i, b := range tr.Biomes {
		if int(b) >= NumBiomes {
			t.Fatalf("cell %d carries invalid biome %d", i, b)
		}
	}
}

func TestBiomeStrings(t *testing.T) {
	want := map[Biome]string{
		BiomeForest:       "forest",
		BiomeMountains:    "mountains",
		BiomePlains:       "plains",
		BiomeDesert:       "desert",
		BiomeSwamp:        "swamp",
		BiomeTundra:       "tundra",
		BiomeMagicalGrove: "magical_grove",
		BiomeWater:        "water",
	}
	for b, name := range want {
		if b.String() != name {
			t.Errorf("%d.String() = %q, want %q", b, b.String(), name)
		}
	}
}

func TestBiomeColorsDistinct(t *testing.T) {
	seen := map[[4]uint8]Biome{}
	for b := Biome(0); b < Biome(NumBiomes); b++ {
		c := b.Color()
		if c.A != 255 {
			t.Errorf("%v color not opaque", b)
		}
		key := [4]uint8{c.R, c.G, c.B, c.A}
		if prev, dup := seen[key]; dup {
			t.Errorf("%v and %v share a color", b, prev)
		}
		seen[key] = b
	}
}

func TestIsLand(t *testing.T) {
	if BiomeWater.IsLand() {
		t.Error("water counts as land")
	}
	for b := Biome(0); b < Biome(NumBiomes); b++ {
		if b != BiomeWater && !b.IsLand() {
			t.Errorf("%v should be land", b)
		}
	}
}
