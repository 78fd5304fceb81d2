package fractalworlds

import (
	"log"
	"math"
	"sort"

	"github.com/camkilo/fractalworlds/rng"
)

// Creature is one simulated inhabitant. Creatures are owned exclusively by
// the Ecosystem; everything outside works on snapshot copies or ids.
type Creature struct {
	ID           int
	Species      Species
	Genome       Genome
	X, Y         float64
	HomeX, HomeY float64
	State        BehaviorState
	Pattern      MovementPattern
	Health       float64
	Age          int
}

// Move is one creature's position after a tick.
type Move struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	State string  `json:"state"`
}

// TickDelta reports what changed during one tick. Births and Deaths carry
// creature ids in ascending order; Moves covers every creature alive at the
// start of the tick.
type TickDelta struct {
	Tick   int    `json:"tick"`
	Births []int  `json:"births"`
	Deaths []int  `json:"deaths"`
	Moves  []Move `json:"moves"`
}

// PopulationSample is one entry of the population history.
type PopulationSample struct {
	Tick   int            `json:"tick"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

const (
	huntHealthGain    = 0.25
	healthDecay       = 0.0015
	agilityWeight     = 0.85
	crowdCullRate     = 0.03
	crowdCullMax      = 0.4
	oldAgeDeathChance = 0.05
	adultAge          = 40
	spawnJitter       = 5.0
	initialAgeSpread  = 200
	historyLimit      = 512
)

// speciesSpawnWeight skews the initial population toward small common
// species; apex predators stay rare.
var speciesSpawnWeight = [NumSpecies]int{
	SpeciesFractalDragon: 1,
	SpeciesGeometricWolf: 3,
	SpeciesSpiralSerpent: 2,
	SpeciesCrystalSpider: 2,
	SpeciesPatternBird:   4,
	SpeciesGoldenBear:    2,
}

// Ecosystem owns the creature arena and advances it tick by tick. The arena
// is indexed by creature id; a removed creature leaves a nil slot so ids are
// never reused.
type Ecosystem struct {
	cfg   *EcoConfig
	size  int
	seed  uint32
	debug bool
	rs    *rng.Stream

	arena   []*Creature
	tick    int
	history []PopulationSample

	loggedDeadRef bool
}

// newEcosystem seeds the initial population on land cells. The first pass
// guarantees one member per species; the rest draw from the spawn weights.
func newEcosystem(t *Terrain, rs *rng.Stream, seed uint32, cfg *Config) *Ecosystem {
	e := &Ecosystem{
		cfg:   cfg.EcoConfig,
		size:  t.Size,
		seed:  seed,
		debug: cfg.Debug,
		rs:    rs,
	}

	count := int(float64(8+t.Size*t.Size/1024) * (0.5 + cfg.CreatureDensity))
	if count < NumSpecies {
		count = NumSpecies
	}
	for i := 0; i < count; i++ {
		s := Species(i % NumSpecies)
		if i >= NumSpecies {
			s = e.pickSpecies()
		}
		cell, ok := randomLandCell(t, rs, 40)
		if !ok {
			cell = t.CellIndex(t.Size/2, t.Size/2)
		}
		cx, cy := t.CellXY(cell)
		c := e.spawnCreature(s, float64(cx), float64(cy))
		c.Health = rs.InRange(0.8, 1.0)
		c.Age = rs.Intn(initialAgeSpread)
	}

	e.recordHistory()
	return e
}

func (e *Ecosystem) pickSpecies() Species {
	total := 0
	for _, w := range speciesSpawnWeight {
		total += w
	}
	roll := e.rs.Intn(total)
	for s, w := range speciesSpawnWeight {
		if roll < w {
			return Species(s)
		}
		roll -= w
	}
	return SpeciesPatternBird
}

// spawnCreature appends a creature with a fresh baseline-jittered genome.
func (e *Ecosystem) spawnCreature(s Species, x, y float64) *Creature {
	c := &Creature{
		ID:      len(e.arena),
		Species: s,
		Genome:  NewGenome(s, e.rs),
		X:       x,
		Y:       y,
		HomeX:   x,
		HomeY:   y,
		State:   BehaviorIdle,
		Pattern: speciesMovement[s],
		Health:  1,
	}
	e.arena = append(e.arena, c)
	return c
}

// Tick advances the simulation one step: behavior and movement, hunt
// resolution, carrying-capacity pressure, low-population spawning, aging.
// Every phase walks the arena in ascending id order so identical seeds
// reproduce identical trajectories.
func (e *Ecosystem) Tick() TickDelta {
	e.tick++
	delta := TickDelta{
		Tick:   e.tick,
		Births: []int{},
		Deaths: []int{},
		Moves:  make([]Move, 0, e.Alive()),
	}

	// Behavior, movement, hunts.
	for id := 0; id < len(e.arena); id++ {
		c := e.arena[id]
		if c == nil {
			continue
		}
		ctx := e.buildContext(c)
		dec := Decide(c, ctx, e.rs, e.tick)
		c.State = dec.State
		c.X = clampCoord(c.X+dec.DX, e.size)
		c.Y = clampCoord(c.Y+dec.DY, e.size)
		delta.Moves = append(delta.Moves, Move{ID: c.ID, X: c.X, Y: c.Y, State: dec.State.String()})
		if dec.State == BehaviorHunt {
			e.resolveHunt(c, dec.Target, &delta)
		}
	}

	// Carrying capacity: crowded creatures cull with probability
	// proportional to the overflow.
	for id := 0; id < len(e.arena); id++ {
		c := e.arena[id]
		if c == nil {
			continue
		}
		crowd := e.localDensity(c)
		if crowd <= e.cfg.LocalCapacity {
			continue
		}
		p := math.Min(crowdCullMax, crowdCullRate*float64(crowd-e.cfg.LocalCapacity))
		if e.rs.Chance(p) {
			e.kill(c.ID, &delta)
		}
	}

	// Spawning: species below the minimum recover through adult offspring.
	counts := e.countSpecies()
	adults := len(e.arena)
	for s := Species(0); s < Species(NumSpecies); s++ {
		if counts[s] == 0 || counts[s] >= e.cfg.MinPopulation {
			continue
		}
		for id := 0; id < adults && counts[s] < e.cfg.MinPopulation; id++ {
			c := e.arena[id]
			if c == nil || c.Species != s || c.Age < adultAge {
				continue
			}
			if !e.rs.Chance(e.cfg.SpawnChance) {
				continue
			}
			x := clampCoord(c.X+e.rs.Jitter(spawnJitter), e.size)
			y := clampCoord(c.Y+e.rs.Jitter(spawnJitter), e.size)
			child := e.spawnCreature(s, x, y)
			delta.Births = append(delta.Births, child.ID)
			counts[s]++
		}
	}

	// Aging and natural death.
	for id := 0; id < len(e.arena); id++ {
		c := e.arena[id]
		if c == nil {
			continue
		}
		c.Age++
		c.Health -= healthDecay
		if c.Health <= 0 {
			e.kill(c.ID, &delta)
			continue
		}
		if c.Age > e.cfg.MaxAge && e.rs.Chance(oldAgeDeathChance) {
			e.kill(c.ID, &delta)
		}
	}

	sort.Ints(delta.Deaths)
	e.recordHistory()
	return delta
}

// buildContext classifies every live creature within the nearby radius into
// the threat, prey and ally lists, each sorted by distance then id, and
// finds the nearest other-species intruder inside the territory.
func (e *Ecosystem) buildContext(c *Creature) *Context {
	ctx := &Context{}
	var intruder Neighbor
	intruderDist := math.Inf(1)

	for _, o := range e.arena {
		if o == nil || o.ID == c.ID {
			continue
		}
		d := dist2(c.X, c.Y, o.X, o.Y)
		if d <= e.cfg.NearbyRadius {
			n := Neighbor{ID: o.ID, Species: o.Species, X: o.X, Y: o.Y, Dist: d}
			switch {
			case IsThreat(c.Species, o.Species):
				if d <= e.cfg.ThreatRadius {
					ctx.Threats = append(ctx.Threats, n)
				}
			case CanHunt(c.Species, o.Species):
				if d <= e.cfg.HuntRadius {
					ctx.Prey = append(ctx.Prey, n)
				}
			case o.Species == c.Species:
				if d <= e.cfg.SocialRadius {
					ctx.Allies = append(ctx.Allies, n)
				}
			}
		}
		if o.Species != c.Species {
			hd := dist2(c.HomeX, c.HomeY, o.X, o.Y)
			if hd <= e.cfg.TerritoryRadius && hd < intruderDist {
				intruderDist = hd
				intruder = Neighbor{ID: o.ID, Species: o.Species, X: o.X, Y: o.Y, Dist: hd}
			}
		}
	}

	sortNeighbors(ctx.Threats)
	sortNeighbors(ctx.Prey)
	sortNeighbors(ctx.Allies)
	if !math.IsInf(intruderDist, 1) {
		ctx.Intruder = &intruder
	}
	return ctx
}

func sortNeighbors(ns []Neighbor) {
	sort.Slice(ns, func(i, j int) bool {
		if ns[i].Dist != ns[j].Dist {
			return ns[i].Dist < ns[j].Dist
		}
		return ns[i].ID < ns[j].ID
	})
}

// resolveHunt kills the target when the hunter closed to kill distance and
// the success roll passes. A failed roll leaves the prey alive to flee next
// tick.
func (e *Ecosystem) resolveHunt(hunter *Creature, targetID int, delta *TickDelta) {
	target := e.creatureAt(targetID)
	if target == nil {
		e.deadReference(targetID)
		return
	}
	if dist2(hunter.X, hunter.Y, target.X, target.Y) >= e.cfg.KillDistance {
		return
	}
	if e.rs.Chance(huntSuccess(hunter, target)) {
		e.kill(targetID, delta)
		hunter.Health = math.Min(1, hunter.Health+huntHealthGain)
	}
}

// huntSuccess weighs the hunter's aggression and intelligence against the
// target's intelligence, clamped away from certainty on both ends.
func huntSuccess(hunter, target *Creature) float64 {
	g := hunter.Genome
	p := 0.5 + (g.Aggression+g.Intelligence)/2 - target.Genome.Intelligence*agilityWeight
	return math.Min(0.95, math.Max(0.05, p))
}

// localDensity counts same-species creatures within the nearby radius,
// including the creature itself.
func (e *Ecosystem) localDensity(c *Creature) int {
	count := 0
	for _, o := range e.arena {
		if o == nil || o.Species != c.Species {
			continue
		}
		if dist2(c.X, c.Y, o.X, o.Y) <= e.cfg.NearbyRadius {
			count++
		}
	}
	return count
}

func (e *Ecosystem) kill(id int, delta *TickDelta) {
	if e.creatureAt(id) == nil {
		e.deadReference(id)
		return
	}
	e.arena[id] = nil
	delta.Deaths = append(delta.Deaths, id)
}

func (e *Ecosystem) creatureAt(id int) *Creature {
	if id < 0 || id >= len(e.arena) {
		return nil
	}
	return e.arena[id]
}

// deadReference handles a tick referencing an already-removed creature id.
// Debug worlds panic so the fault surfaces in tests; otherwise the reference
// is a no-op, logged once with the seed.
func (e *Ecosystem) deadReference(id int) {
	if e.debug {
		log.Panicf("ecosystem: seed %d tick %d: reference to removed creature %d", e.seed, e.tick, id)
	}
	if !e.loggedDeadRef {
		log.Printf("ecosystem: seed %d tick %d: ignoring reference to removed creature %d", e.seed, e.tick, id)
		e.loggedDeadRef = true
	}
}

func (e *Ecosystem) countSpecies() [NumSpecies]int {
	var counts [NumSpecies]int
	for _, c := range e.arena {
		if c != nil {
			counts[c.Species]++
		}
	}
	return counts
}

func (e *Ecosystem) recordHistory() {
	counts := e.countSpecies()
	sample := PopulationSample{Tick: e.tick, Counts: make(map[string]int, NumSpecies)}
	for s := Species(0); s < Species(NumSpecies); s++ {
		sample.Counts[s.String()] = counts[s]
		sample.Total += counts[s]
	}
	if len(e.history) >= historyLimit {
		copy(e.history, e.history[1:])
		e.history = e.history[:len(e.history)-1]
	}
	e.history = append(e.history, sample)
}

// Alive returns the number of live creatures.
func (e *Ecosystem) Alive() int {
	count := 0
	for _, c := range e.arena {
		if c != nil {
			count++
		}
	}
	return count
}

// Creatures returns the live creatures in ascending id order. The pointers
// alias simulator state; callers wanting stability should snapshot.
func (e *Ecosystem) Creatures() []*Creature {
	out := make([]*Creature, 0, e.Alive())
	for _, c := range e.arena {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// CurrentTick returns the number of completed ticks.
func (e *Ecosystem) CurrentTick() int {
	return e.tick
}

// PopulationHistory returns a copy of the recorded per-species live counts,
// oldest first.
func (e *Ecosystem) PopulationHistory() []PopulationSample {
	return append([]PopulationSample(nil), e.history...)
}
