// Package noise provides a multi-octave fractal sampler over opensimplex
// gradient noise. Identical (seed, coordinate, parameters) always yield
// identical output, which is the foundation of reproducible worlds.
package noise

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Field is a fractal noise field, initialized with a given seed, octave
// count, persistence, and lacunarity.
type Field struct {
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Amplitudes  []float64
	Seed        int64
	OS          opensimplex.Noise
}

// NewField returns a new Field. Persistence halves (by default 0.5) the
// amplitude per octave, lacunarity scales the frequency growth per octave
// (2.0 doubles it).
func NewField(octaves int, persistence, lacunarity float64, seed int64) *Field {
	f := &Field{
		Octaves:     octaves,
		Persistence: persistence,
		Lacunarity:  lacunarity,
		Amplitudes:  make([]float64, octaves),
		Seed:        seed,
		OS:          opensimplex.NewNormalized(seed),
	}

	// Initialize the amplitudes.
	for i := range f.Amplitudes {
		f.Amplitudes[i] = math.Pow(persistence, float64(i))
	}

	return f
}

// Eval2 returns the noise value at the given point, normalized to [0,1].
func (f *Field) Eval2(x, y float64) float64 {
	var sum, sumOfAmplitudes float64
	frequency := 1.0
	for octave := 0; octave < f.Octaves; octave++ {
		sum += f.Amplitudes[octave] * f.OS.Eval2(x*frequency, y*frequency)
		sumOfAmplitudes += f.Amplitudes[octave]
		frequency *= f.Lacunarity
	}
	return sum / sumOfAmplitudes
}

// Eval3 returns the noise value at the given point, normalized to [0,1].
func (f *Field) Eval3(x, y, z float64) float64 {
	var sum, sumOfAmplitudes float64
	frequency := 1.0
	for octave := 0; octave < f.Octaves; octave++ {
		sum += f.Amplitudes[octave] * f.OS.Eval3(x*frequency, y*frequency, z*frequency)
		sumOfAmplitudes += f.Amplitudes[octave]
		frequency *= f.Lacunarity
	}
	return sum / sumOfAmplitudes
}

// PlusOneOctave returns a new Field with one more octave.
func (f *Field) PlusOneOctave() *Field {
	return NewField(f.Octaves+1, f.Persistence, f.Lacunarity, f.Seed)
}
