package fractalworlds

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"
)

// newTestWorld builds a small world with otherwise default settings.
func newTestWorld(t testing.TB, seed uint32) *World {
	t.Helper()
	cfg := NewConfig()
	cfg.WorldSize = 64
	w, err := NewWorld(seed, cfg)
	if err != nil {
		t.Fatalf("NewWorld(%d): %v", seed, err)
	}
	return w
}

func TestNewWorldDeterministic(t *testing.T) {
	a := newTestWorld(t, 42)
	b := newTestWorld(t, 42)

	if !slices.Equal(a.Height, b.Height) {
		t.Error("heights differ between identical seeds")
	}
	if !slices.Equal(a.Climate, b.Climate) {
		t.Error("climates differ between identical seeds")
	}
	if !slices.Equal(a.Biomes, b.Biomes) {
		t.Error("biomes differ between identical seeds")
	}
	if !reflect.DeepEqual(a.Rivers, b.Rivers) {
		t.Error("rivers differ between identical seeds")
	}
	if !reflect.DeepEqual(a.Forests, b.Forests) {
		t.Error("forests differ between identical seeds")
	}
	if !reflect.DeepEqual(a.Structures, b.Structures) {
		t.Error("structures differ between identical seeds")
	}
	if !reflect.DeepEqual(a.Villages, b.Villages) {
		t.Error("villages differ between identical seeds")
	}
	if !reflect.DeepEqual(a.Caves, b.Caves) {
		t.Error("caves differ between identical seeds")
	}
	if !reflect.DeepEqual(a.Creatures(), b.Creatures()) {
		t.Error("creatures differ between identical seeds")
	}
	if a.Environment.Weather != b.Environment.Weather {
		t.Error("weather differs between identical seeds")
	}
}

func TestNewWorldAllBiomes(t *testing.T) {
	w := newTestWorld(t, 42)
	if got := w.BiomeCount(); got != NumBiomes {
		t.Fatalf("world has %d biomes, want all %d", got, NumBiomes)
	}
}

func TestNewWorldSeedsDiffer(t *testing.T) {
	a := newTestWorld(t, 1)
	b := newTestWorld(t, 2)
	if slices.Equal(a.Height, b.Height) {
		t.Fatal("different seeds produced identical terrain")
	}
}

func TestNewWorldInvalidConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.WorldSize = 10
	w, err := NewWorld(1, cfg)
	if w != nil {
		t.Fatal("got a world from an invalid config")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
	if cerr.Field != "world_size" {
		t.Errorf("ConfigError.Field = %q, want world_size", cerr.Field)
	}
}

func TestNewWorldDefaultsMissingSubConfigs(t *testing.T) {
	gen := NewGenConfig()
	gen.WorldSize = 64
	w, err := NewWorld(3, &Config{GenConfig: gen})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if w.Config().EcoConfig == nil {
		t.Fatal("nil EcoConfig not replaced with defaults")
	}
	if w.Config().EcoConfig.MinPopulation != NewEcoConfig().MinPopulation {
		t.Error("default EcoConfig fields not applied")
	}
}

func TestNewWorldNilConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size world in -short mode")
	}
	w, err := NewWorld(7, nil)
	if err != nil {
		t.Fatalf("NewWorld(7, nil): %v", err)
	}
	if w.Size != NewGenConfig().WorldSize {
		t.Fatalf("world size = %d, want default %d", w.Size, NewGenConfig().WorldSize)
	}
}

func TestWorldTick(t *testing.T) {
	w := newTestWorld(t, 42)
	for i := 0; i < 10; i++ {
		delta := w.Tick()
		if delta.Tick != i+1 {
			t.Fatalf("delta.Tick = %d on tick %d", delta.Tick, i+1)
		}
	}
	if got := w.CurrentTick(); got != 10 {
		t.Fatalf("CurrentTick = %d, want 10", got)
	}
	if want := 10.0 / dayLength; math.Abs(w.Environment.TimeOfDay-want) > 1e-9 {
		t.Fatalf("TimeOfDay = %v after 10 ticks, want %v", w.Environment.TimeOfDay, want)
	}
}

func TestWorldSnapshotDuringTicks(t *testing.T) {
	w := newTestWorld(t, 42)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 30; i++ {
			w.Tick()
		}
	}()
	for i := 0; i < 10; i++ {
		ws := w.Snapshot()
		if ws.Tick < 0 || ws.Tick > 30 {
			t.Errorf("snapshot tick %d outside [0, 30]", ws.Tick)
		}
	}
	<-done
	if got := w.Snapshot().Tick; got != 30 {
		t.Fatalf("final snapshot tick = %d, want 30", got)
	}
}
