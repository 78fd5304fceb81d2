package fractalworlds

import "github.com/camkilo/fractalworlds/rng"

// Species is a closed enum of creature kinds. All per-species behavior
// derives from static tables keyed on it.
type Species byte

const (
	SpeciesFractalDragon Species = iota
	SpeciesGeometricWolf
	SpeciesSpiralSerpent
	SpeciesCrystalSpider
	SpeciesPatternBird
	SpeciesGoldenBear
	NumSpecies int = iota
)

func (s Species) String() string {
	switch s {
	case SpeciesFractalDragon:
		return "Fractal Dragon"
	case SpeciesGeometricWolf:
		return "Geometric Wolf"
	case SpeciesSpiralSerpent:
		return "Spiral Serpent"
	case SpeciesCrystalSpider:
		return "Crystal Spider"
	case SpeciesPatternBird:
		return "Pattern Bird"
	case SpeciesGoldenBear:
		return "Golden Bear"
	}
	return "Unknown"
}

// Genome is the fixed set of behavioral traits of one creature. All traits
// live in [0,1]. Instances are set once at spawn and never mutated.
type Genome struct {
	Aggression   float64 `json:"aggression"`
	Intelligence float64 `json:"intelligence"`
	Social       float64 `json:"social"`
	Territorial  float64 `json:"territorial"`
	Predator     float64 `json:"predator"` // predator affinity
	Prey         float64 `json:"prey"`     // prey affinity
}

// speciesBaseline is the trait table all instances jitter from.
var speciesBaseline = [NumSpecies]Genome{
	SpeciesFractalDragon: {Aggression: 0.8, Intelligence: 0.9, Social: 0.3, Territorial: 0.9, Predator: 1.0, Prey: 0.0},
	SpeciesGeometricWolf: {Aggression: 0.6, Intelligence: 0.7, Social: 0.8, Territorial: 0.6, Predator: 0.9, Prey: 0.2},
	SpeciesSpiralSerpent: {Aggression: 0.5, Intelligence: 0.5, Social: 0.2, Territorial: 0.4, Predator: 0.7, Prey: 0.4},
	SpeciesCrystalSpider: {Aggression: 0.4, Intelligence: 0.6, Social: 0.1, Territorial: 0.7, Predator: 0.6, Prey: 0.5},
	SpeciesPatternBird:   {Aggression: 0.2, Intelligence: 0.7, Social: 0.9, Territorial: 0.3, Predator: 0.3, Prey: 0.8},
	SpeciesGoldenBear:    {Aggression: 0.7, Intelligence: 0.6, Social: 0.4, Territorial: 0.8, Predator: 0.8, Prey: 0.3},
}

// BaselineGenome returns the species trait baseline.
func BaselineGenome(s Species) Genome {
	return speciesBaseline[s]
}

// genomeJitter bounds the spawn-time variation of every trait.
const genomeJitter = 0.1

// NewGenome returns the species baseline with bounded spawn jitter,
// clamped to [0,1]. Offspring jitter from the baseline too, not from
// their parent.
func NewGenome(s Species, rs *rng.Stream) Genome {
	base := speciesBaseline[s]
	return Genome{
		Aggression:   clamp01(base.Aggression + rs.Jitter(genomeJitter)),
		Intelligence: clamp01(base.Intelligence + rs.Jitter(genomeJitter)),
		Social:       clamp01(base.Social + rs.Jitter(genomeJitter)),
		Territorial:  clamp01(base.Territorial + rs.Jitter(genomeJitter)),
		Predator:     clamp01(base.Predator + rs.Jitter(genomeJitter)),
		Prey:         clamp01(base.Prey + rs.Jitter(genomeJitter)),
	}
}

// predationTable marks which species may hunt which. It derives from the
// baseline predator affinities alone, so hunting eligibility never depends
// on per-instance jitter.
var predationTable = buildPredationTable()

func buildPredationTable() [NumSpecies][NumSpecies]bool {
	var table [NumSpecies][NumSpecies]bool
	for hunter := 0; hunter < NumSpecies; hunter++ {
		for target := 0; target < NumSpecies; target++ {
			if hunter == target {
				continue
			}
			table[hunter][target] = speciesBaseline[hunter].Predator > speciesBaseline[target].Predator
		}
	}
	return table
}

// CanHunt reports whether hunter species may prey on the target species.
func CanHunt(hunter, target Species) bool {
	return predationTable[hunter][target]
}

// IsThreat reports whether other endangers s.
func IsThreat(s, other Species) bool {
	return predationTable[other][s]
}
