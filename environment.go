package fractalworlds

import (
	"github.com/camkilo/fractalworlds/rng"
)

// Weather is the current world weather condition.
type Weather byte

const (
	WeatherClear Weather = iota
	WeatherRain
	WeatherFog
	WeatherStorm
	WeatherAurora

	NumWeathers int = iota
)

func (w Weather) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherFog:
		return "fog"
	case WeatherStorm:
		return "storm"
	case WeatherAurora:
		return "aurora"
	}
	return "unknown"
}

const (
	dayLength       = 240 // ticks per full day
	weatherInterval = 40  // ticks between weather rolls
	nightEnd        = 0.25
	nightStart      = 0.75
)

// Environment tracks the world clock and weather. TimeOfDay runs in [0,1)
// with 0 at midnight; night covers the outer quarters of the cycle.
type Environment struct {
	TimeOfDay float64
	Weather   Weather

	magic float64
	rs    *rng.Stream
	tick  int
}

func newEnvironment(rs *rng.Stream, cfg *GenConfig) *Environment {
	return &Environment{Weather: WeatherClear, magic: cfg.MagicIntensity, rs: rs}
}

// IsNight reports whether the current time falls outside daylight.
func (env *Environment) IsNight() bool {
	return env.TimeOfDay < nightEnd || env.TimeOfDay >= nightStart
}

// Advance moves the clock one tick and rolls the weather at each interval.
// An aurora fades to clear the moment day breaks. The clock derives from the
// tick counter so it never drifts over long runs.
func (env *Environment) Advance() {
	env.tick++
	wasNight := env.IsNight()
	env.TimeOfDay = float64(env.tick%dayLength) / dayLength
	if wasNight && !env.IsNight() && env.Weather == WeatherAurora {
		env.Weather = WeatherClear
	}
	if env.tick%weatherInterval == 0 {
		env.Weather = env.nextWeather()
	}
}

// nextWeather draws the next condition from a weighted table. The aurora
// entry only exists at night and scales with the world's magic intensity,
// so mundane worlds never see one.
func (env *Environment) nextWeather() Weather {
	weights := [NumWeathers]float64{
		WeatherClear: 0.40,
		WeatherRain:  0.22,
		WeatherFog:   0.16,
		WeatherStorm: 0.12,
	}
	if env.IsNight() {
		weights[WeatherAurora] = 0.30 * env.magic
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := env.rs.Float64() * total
	for w, weight := range weights {
		if r < weight {
			return Weather(w)
		}
		r -= weight
	}
	return WeatherClear
}
