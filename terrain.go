package fractalworlds

import (
	"github.com/camkilo/fractalworlds/noise"
	"github.com/camkilo/fractalworlds/rng"
	"github.com/camkilo/fractalworlds/various"
)

// Terrain holds the immutable generated grids. All slices have length
// Size*Size and are indexed y*Size+x.
type Terrain struct {
	Size    int       // edge length of the square grid
	Height  []float64 // fractal heightfield in [0,1]
	Climate []float64 // low-frequency climate noise in [0,1]
	Biomes  []Biome   // classified biome per cell

	heightNoise  *noise.Field
	climateNoise *noise.Field
}

// heightScale and climateScale set how many noise periods span the world
// edge. Climate carries enough octaves that the rare climate bands show up
// even on small grids.
const (
	heightScale    = 3.0
	climateScale   = 3.0
	climateOctaves = 4
)

// newTerrain samples the height and climate fields and classifies biomes.
// Height and climate draw from separate substreams so tuning one never
// shifts the other.
func newTerrain(terrainStream, climateStream *rng.Stream, cfg *GenConfig) *Terrain {
	size := cfg.WorldSize
	t := &Terrain{
		Size:         size,
		Height:       make([]float64, size*size),
		Climate:      make([]float64, size*size),
		Biomes:       make([]Biome, size*size),
		heightNoise:  noise.NewField(cfg.FractalIterations, 0.5, lacunarityForRoughness(cfg.Roughness), terrainStream.Seed),
		climateNoise: noise.NewField(climateOctaves, 0.5, 2.0, climateStream.Seed),
	}

	// Noise sampling is pure, so the grids fill in parallel.
	fSize := float64(size)
	various.KickOffChunkWorkers(size*size, func(start, end int) {
		for i := start; i < end; i++ {
			x, y := t.CellXY(i)
			nx, ny := float64(x)/fSize, float64(y)/fSize
			t.Height[i] = t.heightNoise.Eval2(nx*heightScale, ny*heightScale)
			t.Climate[i] = t.climateNoise.Eval2(nx*climateScale, ny*climateScale)
		}
	})

	// Stretch both grids to span exactly [0,1] so the classification
	// thresholds cut range-relative, not raw-noise-relative.
	normalizeGrid(t.Height)
	normalizeGrid(t.Climate)

	various.KickOffChunkWorkers(size*size, func(start, end int) {
		for i := start; i < end; i++ {
			t.Biomes[i] = classifyBiome(t.Height[i], t.Climate[i], cfg.WaterLevel)
		}
	})
	return t
}

// normalizeGrid rescales the values to exactly [0,1]. A flat grid maps to
// 0.5 everywhere.
func normalizeGrid(vals []float64) {
	lo, hi := minMax(vals)
	span := hi - lo
	if span < 1e-12 {
		for i := range vals {
			vals[i] = 0.5
		}
		return
	}
	various.KickOffChunkWorkers(len(vals), func(start, end int) {
		for i := start; i < end; i++ {
			vals[i] = (vals[i] - lo) / span
		}
	})
}

// lacunarityForRoughness maps the configured roughness to the per-octave
// frequency growth. Roughness 0.5 gives the classic doubling ladder.
func lacunarityForRoughness(roughness float64) float64 {
	return 1.6 + 0.8*roughness
}

// CellIndex returns the slice index for the given cell coordinates.
func (t *Terrain) CellIndex(x, y int) int {
	return y*t.Size + x
}

// CellXY returns the cell coordinates for the given slice index.
func (t *Terrain) CellXY(i int) (x, y int) {
	return i % t.Size, i / t.Size
}

// InBounds reports whether the given cell coordinates lie on the grid.
func (t *Terrain) InBounds(x, y int) bool {
	return x >= 0 && x < t.Size && y >= 0 && y < t.Size
}

// neighborOffsets is the fixed scan order for 8-neighborhood walks. Ties
// in steepest-descent tracing break by this order, never randomly.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// TerrainStats summarizes the generated grids.
type TerrainStats struct {
	MinHeight   float64            `json:"min_height"`
	MaxHeight   float64            `json:"max_height"`
	MeanHeight  float64            `json:"mean_height"`
	BiomeShares map[string]float64 `json:"biome_distribution"` // percentages
}

// Stats computes min/max/mean height and per-biome coverage percentages.
func (t *Terrain) Stats() TerrainStats {
	minH, maxH := minMax(t.Height)
	var sum float64
	for _, h := range t.Height {
		sum += h
	}

	var counts [NumBiomes]int
	for _, b := range t.Biomes {
		counts[b]++
	}
	shares := make(map[string]float64, NumBiomes)
	total := float64(len(t.Biomes))
	for b := 0; b < NumBiomes; b++ {
		shares[Biome(b).String()] = various.RoundToDecimals(100*float64(counts[b])/total, 2)
	}

	return TerrainStats{
		MinHeight:   minH,
		MaxHeight:   maxH,
		MeanHeight:  sum / total,
		BiomeShares: shares,
	}
}

// BiomeCount returns how many distinct biomes appear on the grid.
func (t *Terrain) BiomeCount() int {
	var seen [NumBiomes]bool
	for _, b := range t.Biomes {
		seen[b] = true
	}
	var n int
	for _, s := range seen {
		if s {
			n++
		}
	}
	return n
}
