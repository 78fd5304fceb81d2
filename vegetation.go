package fractalworlds

import (
	"errors"
	"log"

	"github.com/camkilo/fractalworlds/lsystem"
	"github.com/camkilo/fractalworlds/rng"
)

// Tree is one placed tree. Branches points at the unit-scale skeleton
// shared by the whole patch; multiply by Height to get world units.
type Tree struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Height  float64 `json:"height"`  // 3..12 units
	Foliage float64 `json:"foliage"` // foliage density, 0.6..1.0
	Magic   bool    `json:"magic"`

	Branches []lsystem.Segment `json:"-"`
}

// Forest is a patch of trees anchored to one grid cell. All trees in the
// patch grow from the same grammar expansion; the skeleton is stored once
// at unit scale and never mutated.
type Forest struct {
	Cell     int               `json:"cell"`
	Trees    []*Tree           `json:"trees"`
	Skeleton []lsystem.Segment `json:"skeleton"`
}

const (
	forestPatchChance = 0.02 // per eligible cell, scaled by tree density
	riverbankBonus    = 2.0  // patch chance multiplier next to rivers
	minTreesPerPatch  = 5
	maxTreesPerPatch  = 15
)

// generateVegetation grows forest patches on forest and grove cells. Patch
// density doubles along riverbanks, which is why vegetation runs after
// hydrology.
func generateVegetation(t *Terrain, rivers []*River, rs *rng.Stream, seed uint32, cfg *GenConfig) []*Forest {
	banks := riverAdjacency(t, rivers)

	var forests []*Forest
	var capped int
	for i, b := range t.Biomes {
		if b != BiomeForest && b != BiomeMagicalGrove {
			continue
		}
		chance := forestPatchChance * cfg.TreeDensity
		if banks[i] {
			chance *= riverbankBonus
		}
		if !rs.Chance(chance) {
			continue
		}
		patch, wasCapped := growPatch(t, i, rs, cfg)
		forests = append(forests, patch)
		if wasCapped {
			capped++
		}
	}
	if capped > 0 {
		log.Printf("vegetation: %d patches kept their last valid expansion (seed %d)", capped, seed)
	}
	return forests
}

// growPatch places 5..15 trees around the anchor cell. Expansion overruns
// degrade to the last valid iteration rather than failing the patch.
func growPatch(t *Terrain, cell int, rs *rng.Stream, cfg *GenConfig) (*Forest, bool) {
	iterations := 3 + rs.Intn(3)
	sys := lsystem.NewTreeSystem(iterations)
	symbols, err := sys.Expand()
	capped := errors.Is(err, lsystem.ErrLengthCap)
	skeleton := normalizeSkeleton(lsystem.Interpret(symbols, 1.0, lsystem.DefaultBranchAngle))

	grove := t.Biomes[cell] == BiomeMagicalGrove
	cx, cy := t.CellXY(cell)

	n := minTreesPerPatch + rs.Intn(maxTreesPerPatch-minTreesPerPatch+1)
	trees := make([]*Tree, 0, n)
	for i := 0; i < n; i++ {
		trees = append(trees, &Tree{
			X:        clampCoord(float64(cx)+rs.Jitter(3), t.Size),
			Y:        clampCoord(float64(cy)+rs.Jitter(3), t.Size),
			Height:   rs.InRange(3, 12),
			Foliage:  rs.InRange(0.6, 1.0),
			Magic:    grove || rs.Chance(cfg.MagicIntensity*0.5),
			Branches: skeleton,
		})
	}
	return &Forest{Cell: cell, Trees: trees, Skeleton: skeleton}, capped
}

// normalizeSkeleton rescales a skeleton so its vertical extent is one
// unit. Tree height then scales it to world units.
func normalizeSkeleton(segments []lsystem.Segment) []lsystem.Segment {
	var maxZ float64
	for _, s := range segments {
		if s.End.Z > maxZ {
			maxZ = s.End.Z
		}
	}
	if maxZ <= 0 {
		return segments
	}
	scale := 1.0 / maxZ
	out := make([]lsystem.Segment, len(segments))
	for i, s := range segments {
		s.Start.X *= scale
		s.Start.Y *= scale
		s.Start.Z *= scale
		s.End.X *= scale
		s.End.Y *= scale
		s.End.Z *= scale
		out[i] = s
	}
	return out
}

// clampCoord keeps a world coordinate on the grid.
func clampCoord(v float64, size int) float64 {
	if v < 0 {
		return 0
	}
	if max := float64(size - 1); v > max {
		return max
	}
	return v
}
