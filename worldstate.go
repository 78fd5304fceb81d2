package fractalworlds

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Flokey82/go_gens/utils"

	"github.com/camkilo/fractalworlds/lsystem"
)

// WorldState is a deep-copied, serialization-ready view of a world. Every
// field is a fixed-shape struct with JSON tags; enums appear as strings.
type WorldState struct {
	Seed        uint32             `json:"seed"`
	Size        int                `json:"size"`
	Tick        int                `json:"tick"`
	Terrain     TerrainStats       `json:"terrain"`
	Rivers      []RiverState       `json:"rivers"`
	Forests     []ForestState      `json:"forests"`
	Structures  []StructureState   `json:"structures"`
	Villages    []VillageState     `json:"villages"`
	Caves       []CaveState        `json:"caves"`
	Creatures   []CreatureState    `json:"creatures"`
	Environment EnvironmentState   `json:"environment"`
	History     []PopulationSample `json:"population_history"`
}

// RiverPoint is one sampled cell along a river course.
type RiverPoint struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Height float64 `json:"height"`
}

type RiverState struct {
	Points []RiverPoint `json:"points"`
	Width  float64      `json:"width"`
	Speed  float64      `json:"speed"`
	Glow   bool         `json:"glow"`
}

type ForestState struct {
	X        int               `json:"x"`
	Y        int               `json:"y"`
	Trees    []Tree            `json:"trees"`
	Skeleton []lsystem.Segment `json:"skeleton"`
}

type StructureState struct {
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Pattern string         `json:"pattern"`
	Depth   int            `json:"depth"`
	Nodes   []GeometryNode `json:"nodes"`
	Runes   int            `json:"runes"`
	Glow    float64        `json:"glow"`
}

type VillageState struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name"`
	Huts []Hut  `json:"huts"`
}

type CaveState struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Depth int `json:"depth"`
}

type CreatureState struct {
	ID      int     `json:"id"`
	Species string  `json:"species"`
	Genome  Genome  `json:"genome"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	State   string  `json:"state"`
	Health  float64 `json:"health"`
	Age     int     `json:"age"`
}

type EnvironmentState struct {
	TimeOfDay float64 `json:"time_of_day"`
	Weather   string  `json:"weather"`
	Night     bool    `json:"night"`
}

// Snapshot captures the world under the tick lock. Mutable simulation state
// is copied out; generated layers are immutable and safe to reference.
func (w *World) Snapshot() *WorldState {
	w.mu.Lock()
	defer w.mu.Unlock()

	ws := &WorldState{
		Seed:    w.Seed,
		Size:    w.Terrain.Size,
		Tick:    w.Ecosystem.CurrentTick(),
		Terrain: w.Terrain.Stats(),
		Environment: EnvironmentState{
			TimeOfDay: w.Environment.TimeOfDay,
			Weather:   w.Environment.Weather.String(),
			Night:     w.Environment.IsNight(),
		},
		History: w.Ecosystem.PopulationHistory(),
	}

	ws.Rivers = make([]RiverState, 0, len(w.Rivers))
	for _, r := range w.Rivers {
		points := make([]RiverPoint, 0, len(r.Path))
		for _, cell := range r.Path {
			x, y := w.Terrain.CellXY(cell)
			points = append(points, RiverPoint{X: x, Y: y, Height: w.Terrain.Height[cell]})
		}
		ws.Rivers = append(ws.Rivers, RiverState{Points: points, Width: r.Width, Speed: r.Speed, Glow: r.Glow})
	}

	ws.Forests = make([]ForestState, 0, len(w.Forests))
	for _, f := range w.Forests {
		x, y := w.Terrain.CellXY(f.Cell)
		trees := make([]Tree, 0, len(f.Trees))
		for _, tr := range f.Trees {
			trees = append(trees, *tr)
		}
		ws.Forests = append(ws.Forests, ForestState{X: x, Y: y, Trees: trees, Skeleton: f.Skeleton})
	}

	ws.Structures = make([]StructureState, 0, len(w.Structures))
	for _, s := range w.Structures {
		ws.Structures = append(ws.Structures, StructureState{
			X:       s.X,
			Y:       s.Y,
			Pattern: s.Pattern.String(),
			Depth:   s.Depth,
			Nodes:   s.Nodes,
			Runes:   s.Runes,
			Glow:    s.Glow,
		})
	}

	ws.Villages = make([]VillageState, 0, len(w.Villages))
	for _, v := range w.Villages {
		x, y := w.Terrain.CellXY(v.Cell)
		ws.Villages = append(ws.Villages, VillageState{X: x, Y: y, Name: v.Name, Huts: v.Huts})
	}

	ws.Caves = make([]CaveState, 0, len(w.Caves))
	for _, c := range w.Caves {
		x, y := w.Terrain.CellXY(c.Cell)
		ws.Caves = append(ws.Caves, CaveState{X: x, Y: y, Depth: c.Depth})
	}

	creatures := w.Ecosystem.Creatures()
	ws.Creatures = make([]CreatureState, 0, len(creatures))
	for _, c := range creatures {
		ws.Creatures = append(ws.Creatures, CreatureState{
			ID:      c.ID,
			Species: c.Species.String(),
			Genome:  c.Genome,
			X:       c.X,
			Y:       c.Y,
			State:   c.State.String(),
			Health:  c.Health,
			Age:     c.Age,
		})
	}

	return ws
}

// SaveJSON writes the current snapshot to path as indented JSON.
func (w *World) SaveJSON(path string) error {
	data, err := json.MarshalIndent(w.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal world snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Summary renders a short human-readable report of the world.
func (w *World) Summary() string {
	ws := w.Snapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "world seed %d, %dx%d cells, tick %d\n", ws.Seed, ws.Size, ws.Size, ws.Tick)
	fmt.Fprintf(&b, "height %.2f..%.2f, mean %.2f\n", ws.Terrain.MinHeight, ws.Terrain.MaxHeight, ws.Terrain.MeanHeight)

	biomes := make([]string, 0, len(ws.Terrain.BiomeShares))
	for name := range ws.Terrain.BiomeShares {
		biomes = append(biomes, name)
	}
	sort.Strings(biomes)
	for _, name := range biomes {
		fmt.Fprintf(&b, "  %-14s %5.1f%%\n", name, ws.Terrain.BiomeShares[name])
	}

	treeCount := 0
	for _, f := range ws.Forests {
		treeCount += len(f.Trees)
	}
	fmt.Fprintf(&b, "%d rivers, %d forest patches with %d trees\n", len(ws.Rivers), len(ws.Forests), treeCount)
	fmt.Fprintf(&b, "%d structures, %d villages, %d caves\n", len(ws.Structures), len(ws.Villages), len(ws.Caves))

	byspecies := make(map[string]int)
	for _, c := range ws.Creatures {
		byspecies[c.Species]++
	}
	species := make([]string, 0, len(byspecies))
	for s := range byspecies {
		species = append(species, s)
	}
	sort.Strings(species)
	fmt.Fprintf(&b, "%d creatures:", len(ws.Creatures))
	for _, s := range species {
		fmt.Fprintf(&b, " %s %d", s, byspecies[s])
	}
	b.WriteByte('\n')

	phase := "day"
	if ws.Environment.Night {
		phase = "night"
	}
	fmt.Fprintf(&b, "time %.2f (%s), weather %s\n", ws.Environment.TimeOfDay, phase, ws.Environment.Weather)
	return b.String()
}

// PrintSummary writes the summary to stdout.
func (w *World) PrintSummary() {
	fmt.Print(w.Summary())
}

// FindSpawnPosition searches outward from the world center for a
// comfortable spawn cell: solid land at moderate height. The scan order is
// fixed, so identical terrain always yields the same cell.
func (t *Terrain) FindSpawnPosition() (x, y int, ok bool) {
	cx, cy := t.Size/2, t.Size/2
	for r := 0; r <= t.Size/2; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if utils.Max(utils.Abs(dx), utils.Abs(dy)) != r {
					continue
				}
				nx, ny := cx+dx, cy+dy
				if !t.InBounds(nx, ny) {
					continue
				}
				i := t.CellIndex(nx, ny)
				if t.Biomes[i].IsLand() && t.Height[i] > 0.3 && t.Height[i] < 0.7 {
					return nx, ny, true
				}
			}
		}
	}
	return cx, cy, false
}
