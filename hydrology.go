package fractalworlds

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"github.com/camkilo/fractalworlds/rng"
)

// River is a traced watercourse. Width and flow speed are assigned once at
// creation so the river stays visually coherent along its length.
type River struct {
	Path  []int   // cell indices, source to terminus
	Width float64 // display width in cells
	Speed float64 // flow speed in cells per tick
	Glow  bool    // magic rivers glow at night
}

const (
	riverSourceLevel = 0.7 // minimum height for a river source
	minRiverLength   = 8   // shorter paths are discarded
)

// traceRivers walks candidate source cells downhill until they reach water
// or a local minimum. Zero rivers is a valid outcome reported as ErrNoRivers
// so the caller can log it with the seed and carry on.
func traceRivers(t *Terrain, rs *rng.Stream, cfg *GenConfig) ([]*River, error) {
	var candidates []int
	for i, h := range t.Height {
		if h > riverSourceLevel && t.Biomes[i] != BiomeWater {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no sources above %.2f: %w", riverSourceLevel, ErrNoRivers)
	}

	// Highest sources first; ties break on the lower cell index.
	sort.Slice(candidates, func(a, b int) bool {
		if t.Height[candidates[a]] != t.Height[candidates[b]] {
			return t.Height[candidates[a]] > t.Height[candidates[b]]
		}
		return candidates[a] < candidates[b]
	})

	maxRivers := t.Size / 16
	if maxRivers < 1 {
		maxRivers = 1
	}
	minSeparation := float64(t.Size) / 8

	var rivers []*River
	var sources []int
	for _, src := range candidates {
		if len(rivers) >= maxRivers {
			break
		}
		if tooCloseToSources(t, src, sources, minSeparation) {
			continue
		}
		path := descend(t, src)
		if len(path) < minRiverLength {
			continue
		}
		drop := t.Height[path[0]] - t.Height[path[len(path)-1]]
		width, speed := riverShape(len(path), drop)
		rivers = append(rivers, &River{
			Path:  path,
			Width: width,
			Speed: speed,
			Glow:  touchesGrove(t, path) || rs.Chance(cfg.MagicIntensity*0.3),
		})
		sources = append(sources, src)
	}
	if len(rivers) == 0 {
		return nil, fmt.Errorf("all %d candidates too short or crowded: %w", len(candidates), ErrNoRivers)
	}
	return rivers, nil
}

// descend walks from src to the lowest strictly lower 8-neighbor until a
// water cell or a local minimum. Ties break by the neighborOffsets scan
// order, never randomly.
func descend(t *Terrain, src int) []int {
	path := []int{src}
	cur := src
	maxSteps := t.Size * 4
	for step := 0; step < maxSteps; step++ {
		if t.Biomes[cur] == BiomeWater {
			break
		}
		x, y := t.CellXY(cur)
		next := -1
		lowest := t.Height[cur]
		for _, off := range neighborOffsets {
			nx, ny := x+off[0], y+off[1]
			if !t.InBounds(nx, ny) {
				continue
			}
			ni := t.CellIndex(nx, ny)
			if t.Height[ni] < lowest {
				lowest = t.Height[ni]
				next = ni
			}
		}
		if next < 0 {
			break
		}
		path = append(path, next)
		cur = next
	}
	return path
}

func tooCloseToSources(t *Terrain, cell int, sources []int, minDist float64) bool {
	x, y := t.CellXY(cell)
	for _, s := range sources {
		sx, sy := t.CellXY(s)
		if dist2(float64(x), float64(y), float64(sx), float64(sy)) < minDist {
			return true
		}
	}
	return false
}

func touchesGrove(t *Terrain, path []int) bool {
	for _, cell := range path {
		if t.Biomes[cell] == BiomeMagicalGrove {
			return true
		}
	}
	return false
}

// riverShape derives width and flow speed from a hash of path length and
// elevation drop, so regeneration always shapes the river identically and
// the values stay constant along the course.
func riverShape(length int, drop float64) (width, speed float64) {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(length))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(drop))
	h.Write(buf[:])
	v := h.Sum64()
	width = 1.5 + 3.5*float64(v&0xffff)/65535.0
	speed = 0.5 + 2.0*float64((v>>16)&0xffff)/65535.0
	return width, speed
}

// riverAdjacency returns the set of cells on or next to any river path.
// Vegetation uses it to thicken growth along the banks.
func riverAdjacency(t *Terrain, rivers []*River) map[int]bool {
	var cells []int
	for _, r := range rivers {
		cells = append(cells, r.Path...)
	}
	adjacent := convToMap(cells)
	for _, cell := range cells {
		x, y := t.CellXY(cell)
		for _, off := range neighborOffsets {
			nx, ny := x+off[0], y+off[1]
			if t.InBounds(nx, ny) {
				adjacent[t.CellIndex(nx, ny)] = true
			}
		}
	}
	return adjacent
}
