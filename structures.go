package fractalworlds

import (
	"math"

	"github.com/Flokey82/go_gens/genlanguage"

	"github.com/camkilo/fractalworlds/rng"
)

// StructurePattern is the family of a generated structure.
type StructurePattern byte

const (
	PatternFractalTower StructurePattern = iota
	PatternRadialMandala
	PatternHexagonalCrystal
	PatternSpiral
	PatternPortalCircle
	NumPatterns int = iota
)

func (p StructurePattern) String() string {
	switch p {
	case PatternFractalTower:
		return "fractal_tower"
	case PatternRadialMandala:
		return "radial_mandala"
	case PatternHexagonalCrystal:
		return "hexagonal_crystal"
	case PatternSpiral:
		return "spiral"
	case PatternPortalCircle:
		return "portal_circle"
	}
	return "unknown"
}

// patternDepth is the fixed iteration count per family.
var patternDepth = [NumPatterns]int{
	PatternFractalTower:     6,
	PatternRadialMandala:    5,
	PatternHexagonalCrystal: 6,
	PatternSpiral:           8,
	PatternPortalCircle:     4,
}

// goldenAngle offsets rotational patterns so levels never align.
const goldenAngle = 2.39996322972865332

// GeometryNode is one self-similar element of a structure, positioned
// relative to the structure center.
type GeometryNode struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	Depth    int     `json:"depth"`
}

// Structure is one placed architectural pattern.
type Structure struct {
	X       float64          `json:"x"`
	Y       float64          `json:"y"`
	Pattern StructurePattern `json:"-"`
	Depth   int              `json:"depth"`
	Nodes   []GeometryNode   `json:"nodes"`
	Runes   int              `json:"runes"`
	Glow    float64          `json:"glow"`
}

// Village is a hut cluster on plains or forest.
type Village struct {
	Cell int    `json:"cell"`
	Name string `json:"name"`
	Huts []Hut  `json:"huts"`
}

// Hut is one village building.
type Hut struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Rotation float64 `json:"rotation"`
}

// Cave is an entrance into high terrain.
type Cave struct {
	Cell  int `json:"cell"`
	Depth int `json:"depth"` // tunnel depth in cells
}

// generateStructures places fractal structures on land, away from water.
// Geometry is deterministic given the substream, position and pattern.
func generateStructures(t *Terrain, rs *rng.Stream, cfg *GenConfig) []*Structure {
	count := 3 + t.Size*t.Size/4096
	count = int(float64(count) * (0.5 + cfg.MagicIntensity))

	var structures []*Structure
	for len(structures) < count {
		cell, ok := randomLandCell(t, rs, 40)
		if !ok {
			break
		}
		pattern := StructurePattern(rs.Intn(NumPatterns))
		depth := patternDepth[pattern]
		x, y := t.CellXY(cell)
		structures = append(structures, &Structure{
			X:       float64(x),
			Y:       float64(y),
			Pattern: pattern,
			Depth:   depth,
			Nodes:   buildPattern(pattern, depth),
			Runes:   depth + rs.Intn(8),
			Glow:    rs.InRange(0.6, 1.0) * cfg.MagicIntensity,
		})
	}
	return structures
}

// randomLandCell rolls for a cell with mid-range elevation outside water.
func randomLandCell(t *Terrain, rs *rng.Stream, attempts int) (int, bool) {
	for i := 0; i < attempts; i++ {
		cell := rs.Intn(t.Size * t.Size)
		if t.Biomes[cell].IsLand() && t.Height[cell] > 0.25 && t.Height[cell] < 0.75 {
			return cell, true
		}
	}
	return 0, false
}

// buildPattern generates the node tree for a pattern family. Each level
// places the family's base shape and recurses with the family's scale and
// rotation rule; depth 0 is the base shape alone.
func buildPattern(pattern StructurePattern, depth int) []GeometryNode {
	var nodes []GeometryNode
	switch pattern {
	case PatternFractalTower:
		buildTower(&nodes, 0, depth, 0, 1.0, 0)
	case PatternRadialMandala:
		buildMandala(&nodes, 0, depth, 1.0, 0)
	case PatternHexagonalCrystal:
		buildCrystal(&nodes, 0, depth, 0, 0, 1.0, 0)
	case PatternSpiral:
		buildSpiral(&nodes, 0, depth, 1.0, 0)
	case PatternPortalCircle:
		buildPortal(&nodes, 0, depth, 1.0)
	}
	return nodes
}

// buildTower stacks shrinking floors with corner pillars.
func buildTower(nodes *[]GeometryNode, level, depth int, z, scale, rot float64) {
	if level > depth {
		return
	}
	*nodes = append(*nodes, GeometryNode{Z: z, Scale: scale, Rotation: rot, Depth: level})
	for i := 0; i < 4; i++ {
		a := rot + float64(i)*math.Pi/2 + math.Pi/4
		*nodes = append(*nodes, GeometryNode{
			X:        math.Cos(a) * scale,
			Y:        math.Sin(a) * scale,
			Z:        z,
			Scale:    scale * 0.3,
			Rotation: a,
			Depth:    level,
		})
	}
	buildTower(nodes, level+1, depth, z+scale*1.6, scale*0.72, rot+0.26)
}

// buildMandala rings shrinking petals around a recursing center.
func buildMandala(nodes *[]GeometryNode, level, depth int, scale, rot float64) {
	if level > depth {
		return
	}
	for i := 0; i < 6; i++ {
		a := rot + float64(i)*math.Pi/3
		*nodes = append(*nodes, GeometryNode{
			X:        math.Cos(a) * scale * 2,
			Y:        math.Sin(a) * scale * 2,
			Scale:    scale * 0.5,
			Rotation: a,
			Depth:    level,
		})
	}
	buildMandala(nodes, level+1, depth, scale*0.6, rot+goldenAngle)
}

// buildCrystal grows hexagons off two opposite vertices of each parent.
func buildCrystal(nodes *[]GeometryNode, level, depth int, x, y, scale, rot float64) {
	if level > depth {
		return
	}
	for i := 0; i < 6; i++ {
		a := rot + float64(i)*math.Pi/3
		*nodes = append(*nodes, GeometryNode{
			X:        x + math.Cos(a)*scale,
			Y:        y + math.Sin(a)*scale,
			Z:        float64(level) * 0.4 * scale,
			Scale:    scale * 0.4,
			Rotation: a,
			Depth:    level,
		})
	}
	next := scale * 0.55
	buildCrystal(nodes, level+1, depth, x+math.Cos(rot)*scale*1.5, y+math.Sin(rot)*scale*1.5, next, rot+math.Pi/6)
	buildCrystal(nodes, level+1, depth, x-math.Cos(rot)*scale*1.5, y-math.Sin(rot)*scale*1.5, next, rot-math.Pi/6)
}

// buildSpiral lays nodes along a golden-angle arc that tightens inward.
func buildSpiral(nodes *[]GeometryNode, level, depth int, scale, rot float64) {
	if level > depth {
		return
	}
	radius := scale * 3
	for i := 0; i < 5; i++ {
		a := rot + float64(i)*goldenAngle/5
		r := radius * math.Pow(0.92, float64(i))
		*nodes = append(*nodes, GeometryNode{
			X:        math.Cos(a) * r,
			Y:        math.Sin(a) * r,
			Z:        float64(level) * 0.2,
			Scale:    scale * 0.5,
			Rotation: a,
			Depth:    level,
		})
	}
	buildSpiral(nodes, level+1, depth, scale*0.85, rot+goldenAngle)
}

// buildPortal nests rings with a widening stone count outward.
func buildPortal(nodes *[]GeometryNode, level, depth int, scale float64) {
	if level > depth {
		return
	}
	stones := 6 + 2*(depth-level)
	for i := 0; i < stones; i++ {
		a := float64(i) * 2 * math.Pi / float64(stones)
		*nodes = append(*nodes, GeometryNode{
			X:        math.Cos(a) * scale * 2,
			Y:        math.Sin(a) * scale * 2,
			Scale:    scale * 0.35,
			Rotation: a,
			Depth:    level,
		})
	}
	buildPortal(nodes, level+1, depth, scale*0.8)
}

// generateVillages clusters huts on plains and forest cells.
func generateVillages(t *Terrain, rs *rng.Stream, cfg *GenConfig) []*Village {
	count := 2 + t.Size*t.Size/8192
	minSeparation := float64(t.Size) / 8

	// All settlements of a world share one tongue.
	lang := genlanguage.GenLanguage(int64(rs.Seed))

	var villages []*Village
	var centers []int
	for attempt := 0; attempt < count*30 && len(villages) < count; attempt++ {
		cell := rs.Intn(t.Size * t.Size)
		if b := t.Biomes[cell]; b != BiomePlains && b != BiomeForest {
			continue
		}
		if tooCloseToSources(t, cell, centers, minSeparation) {
			continue
		}
		cx, cy := t.CellXY(cell)
		huts := make([]Hut, 0, 9)
		n := 4 + rs.Intn(6)
		radius := rs.InRange(2, 4)
		for i := 0; i < n; i++ {
			a := float64(i)*2*math.Pi/float64(n) + rs.Jitter(0.2)
			huts = append(huts, Hut{
				X:        clampCoord(float64(cx)+math.Cos(a)*radius, t.Size),
				Y:        clampCoord(float64(cy)+math.Sin(a)*radius, t.Size),
				Size:     rs.InRange(0.8, 1.6),
				Rotation: a,
			})
		}
		villages = append(villages, &Village{Cell: cell, Name: lang.MakeCityName(), Huts: huts})
		centers = append(centers, cell)
	}
	return villages
}

// caveLevel is the height above which cave entrances may appear.
const caveLevel = 0.75

// generateCaves marks entrances on high terrain, spaced apart.
func generateCaves(t *Terrain, rs *rng.Stream) []*Cave {
	maxCaves := 4 + t.Size/64
	minSeparation := float64(t.Size) / 10

	var caves []*Cave
	var cells []int
	for i, h := range t.Height {
		if len(caves) >= maxCaves {
			break
		}
		if h <= caveLevel || !t.Biomes[i].IsLand() {
			continue
		}
		if tooCloseToSources(t, i, cells, minSeparation) {
			continue
		}
		caves = append(caves, &Cave{Cell: i, Depth: 8 + rs.Intn(33)})
		cells = append(cells, i)
	}
	return caves
}
