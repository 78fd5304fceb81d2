// Package fractalworlds generates procedural fantasy worlds: fractal noise
// terrain with biome classification, steepest-descent rivers, L-system
// vegetation, recursive fractal structures, and a genome-driven creature
// ecosystem that advances tick by tick.
package fractalworlds

import (
	"log"
	"sync"
	"time"

	"github.com/camkilo/fractalworlds/rng"
)

// World is a fully generated world plus its live simulation state. The
// generated layers (terrain, rivers, forests, structures) are immutable
// once NewWorld returns; only the ecosystem and environment change under
// Tick.
type World struct {
	Seed uint32

	*Terrain
	Rivers     []*River
	Forests    []*Forest
	Structures []*Structure
	Villages   []*Village
	Caves      []*Cave

	*Ecosystem
	*Environment

	cfg *Config
	mu  sync.Mutex
}

// NewWorld generates a complete world from a seed. A nil config (or nil
// sub-config) falls back to defaults; an invalid config returns a
// ConfigError before any generation work happens.
func NewWorld(seed uint32, cfg *Config) (*World, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if cfg.GenConfig == nil {
		cfg.GenConfig = NewGenConfig()
	}
	if cfg.EcoConfig == nil {
		cfg.EcoConfig = NewEcoConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{Seed: seed, cfg: cfg}
	w.generate()
	return w, nil
}

// generate runs the build pipeline. Every stage draws from its own named
// substream, so reordering stages never perturbs another stage's output.
func (w *World) generate() {
	root := rng.New(w.Seed)
	cfg := w.cfg.GenConfig

	start := time.Now()
	w.Terrain = newTerrain(root.Sub("terrain"), root.Sub("climate"), cfg)
	log.Println("generated terrain in", time.Since(start))

	start = time.Now()
	rivers, err := traceRivers(w.Terrain, root.Sub("hydrology"), cfg)
	if err != nil {
		log.Printf("hydrology: %v (seed %d), continuing without rivers", err, w.Seed)
	}
	w.Rivers = rivers
	log.Println("traced", len(w.Rivers), "rivers in", time.Since(start))

	// Vegetation and structures only read terrain and rivers, so they
	// build concurrently.
	start = time.Now()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		w.Forests = generateVegetation(w.Terrain, w.Rivers, root.Sub("vegetation"), w.Seed, cfg)
	}()
	go func() {
		defer wg.Done()
		srs := root.Sub("structures")
		w.Structures = generateStructures(w.Terrain, srs, cfg)
		w.Villages = generateVillages(w.Terrain, srs, cfg)
		w.Caves = generateCaves(w.Terrain, srs)
	}()
	wg.Wait()
	log.Println("grew vegetation and raised structures in", time.Since(start))

	start = time.Now()
	w.Ecosystem = newEcosystem(w.Terrain, root.Sub("creatures"), w.Seed, w.cfg)
	w.Environment = newEnvironment(root.Sub("environment"), cfg)
	log.Println("populated ecosystem in", time.Since(start))
}

// Tick advances the environment and the ecosystem one step. Safe to call
// concurrently with Snapshot.
func (w *World) Tick() TickDelta {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Environment.Advance()
	return w.Ecosystem.Tick()
}

// Config returns the configuration the world was generated with.
func (w *World) Config() *Config {
	return w.cfg
}
