package fractalworlds

import (
	"math"

	"github.com/Flokey82/go_gens/vectors"

	"github.com/camkilo/fractalworlds/rng"
)

// BehaviorState is the action a creature settled on for one tick.
type BehaviorState byte

const (
	BehaviorIdle BehaviorState = iota
	BehaviorFlee
	BehaviorHunt
	BehaviorDefend
	BehaviorSocialize
	BehaviorWander
)

func (b BehaviorState) String() string {
	switch b {
	case BehaviorIdle:
		return "idle"
	case BehaviorFlee:
		return "flee"
	case BehaviorHunt:
		return "hunt"
	case BehaviorDefend:
		return "defend"
	case BehaviorSocialize:
		return "socialize"
	case BehaviorWander:
		return "wander"
	}
	return "unknown"
}

// MovementPattern shapes wander and socialize trajectories per species.
type MovementPattern byte

const (
	MoveCircular MovementPattern = iota
	MoveSpiral
	MoveZigzag
	MoveWave
	MoveRandomWalk
	MoveLevyFlight
)

func (m MovementPattern) String() string {
	switch m {
	case MoveCircular:
		return "circular"
	case MoveSpiral:
		return "spiral"
	case MoveZigzag:
		return "zigzag"
	case MoveWave:
		return "wave"
	case MoveRandomWalk:
		return "random_walk"
	case MoveLevyFlight:
		return "levy_flight"
	}
	return "unknown"
}

// speciesMovement assigns each species its trademark trajectory.
var speciesMovement = [NumSpecies]MovementPattern{
	SpeciesFractalDragon: MoveSpiral,
	SpeciesGeometricWolf: MoveZigzag,
	SpeciesSpiralSerpent: MoveWave,
	SpeciesCrystalSpider: MoveRandomWalk,
	SpeciesPatternBird:   MoveCircular,
	SpeciesGoldenBear:    MoveLevyFlight,
}

// Behavior thresholds and speeds. Speeds are world units per tick.
const (
	preyFleeThreshold     = 0.5
	predatorHuntThreshold = 0.6
	territorialThreshold  = 0.7
	socialThreshold       = 0.7

	fleeSpeed   = 3.0
	huntSpeed   = 2.0
	defendSpeed = 2.0
	socialSpeed = 1.0
	wanderSpeed = 1.0

	homeBias = 0.1
)

// Neighbor is a creature seen from another creature's point of view.
type Neighbor struct {
	ID      int
	Species Species
	X, Y    float64
	Dist    float64
}

// Context is the local view handed to Decide. The neighbor lists are
// sorted by distance (ties by id) so "nearest" is well defined.
type Context struct {
	Threats  []Neighbor // species that may hunt this creature
	Prey     []Neighbor // species this creature may hunt
	Allies   []Neighbor // same species
	Intruder *Neighbor  // nearest other-species creature inside the territory
}

// Decision is the outcome of one behavior evaluation.
type Decision struct {
	State  BehaviorState
	Target int // creature id, -1 if none
	DX, DY float64
}

// Decide evaluates the behavior priorities for one tick: flee, hunt,
// defend, socialize, wander, first match wins. It reads the creature and
// context but never mutates them; randomness comes only from the given
// stream.
func Decide(c *Creature, ctx *Context, rs *rng.Stream, tick int) Decision {
	g := c.Genome

	if len(ctx.Threats) > 0 && g.Prey > preyFleeThreshold {
		t := ctx.Threats[0]
		dx, dy := directionBetween(t.X, t.Y, c.X, c.Y)
		return Decision{State: BehaviorFlee, Target: t.ID, DX: dx * fleeSpeed, DY: dy * fleeSpeed}
	}

	if len(ctx.Prey) > 0 && g.Predator > predatorHuntThreshold {
		p := ctx.Prey[0]
		dx, dy := directionBetween(c.X, c.Y, p.X, p.Y)
		return Decision{State: BehaviorHunt, Target: p.ID, DX: dx * huntSpeed, DY: dy * huntSpeed}
	}

	if ctx.Intruder != nil && g.Territorial > territorialThreshold {
		dx, dy := directionBetween(c.X, c.Y, ctx.Intruder.X, ctx.Intruder.Y)
		return Decision{State: BehaviorDefend, Target: ctx.Intruder.ID, DX: dx * defendSpeed, DY: dy * defendSpeed}
	}

	if len(ctx.Allies) > 0 && g.Social > socialThreshold {
		a := ctx.Allies[0]
		ox, oy := patternOffset(speciesMovement[c.Species], movePhase(c, tick), rs)
		dx, dy := directionBetween(c.X, c.Y, a.X+ox, a.Y+oy)
		return Decision{State: BehaviorSocialize, Target: a.ID, DX: dx * socialSpeed, DY: dy * socialSpeed}
	}

	// Wander: the species pattern plus a pull toward home.
	ox, oy := patternOffset(speciesMovement[c.Species], movePhase(c, tick), rs)
	dx := ox*wanderSpeed + (c.HomeX-c.X)*homeBias
	dy := oy*wanderSpeed + (c.HomeY-c.Y)*homeBias
	dx, dy = clampStep(dx, dy, wanderSpeed*2.5)
	return Decision{State: BehaviorWander, Target: -1, DX: dx, DY: dy}
}

// movePhase keys the periodic patterns so creatures move out of sync.
func movePhase(c *Creature, tick int) float64 {
	return float64(tick)*0.35 + float64(c.ID)*goldenAngle
}

// patternOffset returns a step offset of roughly unit magnitude. The levy
// flight pattern has a heavy-tailed magnitude instead.
func patternOffset(p MovementPattern, phase float64, rs *rng.Stream) (dx, dy float64) {
	switch p {
	case MoveCircular:
		return math.Cos(phase), math.Sin(phase)
	case MoveSpiral:
		mag := 1 + 0.4*math.Sin(phase*0.17)
		return math.Cos(phase) * mag, math.Sin(phase) * mag
	case MoveZigzag:
		base := phase * 0.11
		lateral := math.Pi / 4
		if math.Mod(phase, 2*math.Pi) > math.Pi {
			lateral = -lateral
		}
		return math.Cos(base + lateral), math.Sin(base + lateral)
	case MoveWave:
		base := phase * 0.09
		swell := 0.8 * math.Sin(phase)
		return math.Cos(base) - swell*math.Sin(base), math.Sin(base) + swell*math.Cos(base)
	case MoveRandomWalk:
		return clampStep(rs.NormFloat64()*0.7, rs.NormFloat64()*0.7, 2.5)
	case MoveLevyFlight:
		a := rs.Float64() * 2 * math.Pi
		step := math.Min(3.0, 0.4/math.Pow(rs.Float64()+1e-9, 0.66))
		return math.Cos(a) * step, math.Sin(a) * step
	}
	return 0, 0
}

// directionBetween returns the unit vector from (x1,y1) to (x2,y2), or
// zero when the points coincide.
func directionBetween(x1, y1, x2, y2 float64) (float64, float64) {
	dx, dy := x2-x1, y2-y1
	if dx == 0 && dy == 0 {
		return 0, 0
	}
	v := vectors.Normalize(vectors.Vec2{X: dx, Y: dy})
	return v.X, v.Y
}

// clampStep limits a step to the given magnitude.
func clampStep(dx, dy, max float64) (float64, float64) {
	mag := math.Sqrt(dx*dx + dy*dy)
	if mag <= max || mag == 0 {
		return dx, dy
	}
	scale := max / mag
	return dx * scale, dy * scale
}
