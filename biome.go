package fractalworlds

import "image/color"

// Biome is a categorical terrain / climate zone.
type Biome byte

const (
	BiomeForest Biome = iota
	BiomeMountains
	BiomePlains
	BiomeDesert
	BiomeSwamp
	BiomeTundra
	BiomeMagicalGrove
	BiomeWater
	NumBiomes int = iota
)

func (b Biome) String() string {
	switch b {
	case BiomeForest:
		return "forest"
	case BiomeMountains:
		return "mountains"
	case BiomePlains:
		return "plains"
	case BiomeDesert:
		return "desert"
	case BiomeSwamp:
		return "swamp"
	case BiomeTundra:
		return "tundra"
	case BiomeMagicalGrove:
		return "magical_grove"
	case BiomeWater:
		return "water"
	}
	return "unknown"
}

// Color returns the map color of the biome.
func (b Biome) Color() color.NRGBA {
	switch b {
	case BiomeForest:
		return color.NRGBA{R: 34, G: 139, B: 34, A: 255}
	case BiomeMountains:
		return color.NRGBA{R: 139, G: 137, B: 137, A: 255}
	case BiomePlains:
		return color.NRGBA{R: 154, G: 205, B: 50, A: 255}
	case BiomeDesert:
		return color.NRGBA{R: 237, G: 201, B: 175, A: 255}
	case BiomeSwamp:
		return color.NRGBA{R: 85, G: 107, B: 47, A: 255}
	case BiomeTundra:
		return color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	case BiomeMagicalGrove:
		return color.NRGBA{R: 50, G: 205, B: 50, A: 255}
	case BiomeWater:
		return color.NRGBA{R: 65, G: 105, B: 225, A: 255}
	}
	return color.NRGBA{A: 255}
}

// IsLand reports whether creatures and structures can occupy the biome.
func (b Biome) IsLand() bool {
	return b != BiomeWater
}

// mountainLevel is the height above which terrain classifies as mountains
// regardless of climate.
const mountainLevel = 0.70

// climateBand is one row of the land classification table. Height bounds
// are offsets above the water level so the table tracks a configured
// water level without retuning.
type climateBand struct {
	biome         Biome
	minClimate    float64 // inclusive; -1 means unbounded
	maxClimate    float64 // exclusive; -1 means unbounded
	minAboveWater float64 // inclusive height offset; -1 means unbounded
	maxAboveWater float64 // exclusive height offset; -1 means unbounded
}

// climateBands maps climate (and for wetlands and groves, height above the
// water level) to a biome. First match wins; cells matching no band fall
// through to plains. The thresholds are calibrated against the coverage
// targets: forest 29%, plains 38%, water 15%, mountains 8%, swamp 3%,
// tundra 3%, desert 2%, magical grove 2%. Shares are statistical, not
// guaranteed per run.
var climateBands = []climateBand{
	{biome: BiomeTundra, minClimate: -1, maxClimate: 0.22, minAboveWater: -1, maxAboveWater: -1},
	{biome: BiomeDesert, minClimate: 0.79, maxClimate: -1, minAboveWater: -1, maxAboveWater: -1},
	{biome: BiomeSwamp, minClimate: 0.58, maxClimate: 0.64, minAboveWater: -1, maxAboveWater: 0.12},
	{biome: BiomeMagicalGrove, minClimate: 0.43, maxClimate: 0.46, minAboveWater: 0.14, maxAboveWater: 0.26},
	{biome: BiomeForest, minClimate: 0.53, maxClimate: -1, minAboveWater: -1, maxAboveWater: -1},
}

// classifyBiome maps one cell's height and climate sample to a biome.
// Water and mountains cut on height alone; the remaining land splits on
// the ordered climate bands.
func classifyBiome(height, climate, waterLevel float64) Biome {
	if height < waterLevel {
		return BiomeWater
	}
	if height > mountainLevel {
		return BiomeMountains
	}
	above := height - waterLevel
	for _, band := range climateBands {
		if band.minClimate >= 0 && climate < band.minClimate {
			continue
		}
		if band.maxClimate >= 0 && climate >= band.maxClimate {
			continue
		}
		if band.minAboveWater >= 0 && above < band.minAboveWater {
			continue
		}
		if band.maxAboveWater >= 0 && above >= band.maxAboveWater {
			continue
		}
		return band.biome
	}
	return BiomePlains
}
