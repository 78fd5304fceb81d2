package fractalworlds

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotShape(t *testing.T) {
	w := newTestWorld(t, 42)
	ws := w.Snapshot()

	if ws.Seed != 42 || ws.Size != 64 || ws.Tick != 0 {
		t.Fatalf("header = seed %d size %d tick %d", ws.Seed, ws.Size, ws.Tick)
	}
	if ws.Terrain.MinHeight != 0 || ws.Terrain.MaxHeight != 1 {
		t.Errorf("height range [%v, %v], want [0, 1]", ws.Terrain.MinHeight, ws.Terrain.MaxHeight)
	}

	if len(ws.Rivers) != len(w.Rivers) {
		t.Fatalf("%d river states for %d rivers", len(ws.Rivers), len(w.Rivers))
	}
	for i, r := range ws.Rivers {
		if len(r.Points) != len(w.Rivers[i].Path) {
			t.Errorf("river %d: %d points for %d cells", i, len(r.Points), len(w.Rivers[i].Path))
		}
		x, y := w.Terrain.CellXY(w.Rivers[i].Path[0])
		if r.Points[0].X != x || r.Points[0].Y != y {
			t.Errorf("river %d source at (%d, %d), want (%d, %d)", i, r.Points[0].X, r.Points[0].Y, x, y)
		}
	}

	if len(ws.Forests) != len(w.Forests) {
		t.Errorf("%d forest states for %d forests", len(ws.Forests), len(w.Forests))
	}
	if len(ws.Structures) != len(w.Structures) {
		t.Errorf("%d structure states for %d structures", len(ws.Structures), len(w.Structures))
	}
	for i, s := range ws.Structures {
		if s.Pattern == "" || s.Pattern == "unknown" {
			t.Errorf("structure %d pattern %q", i, s.Pattern)
		}
	}
	if len(ws.Creatures) != w.Alive() {
		t.Errorf("%d creature states for %d alive", len(ws.Creatures), w.Alive())
	}
	for i, c := range ws.Creatures {
		if c.Species == "unknown" || c.State == "unknown" {
			t.Errorf("creature %d: species %q state %q", i, c.Species, c.State)
		}
	}
	if len(ws.History) == 0 {
		t.Error("no population history in snapshot")
	}
	if ws.Environment.Weather == "" || ws.Environment.Weather == "unknown" {
		t.Errorf("weather %q", ws.Environment.Weather)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	w := newTestWorld(t, 42)
	ws := w.Snapshot()

	ws.Creatures[0].Health = -99
	if live := w.Creatures()[0]; live.Health == -99 {
		t.Error("snapshot creature shares state with the live one")
	}

	if len(ws.Forests) > 0 && len(ws.Forests[0].Trees) > 0 {
		ws.Forests[0].Trees[0].Height = -99
		if w.Forests[0].Trees[0].Height == -99 {
			t.Error("snapshot tree shares state with the live one")
		}
	}
}

func TestSaveJSON(t *testing.T) {
	w := newTestWorld(t, 42)
	path := filepath.Join(t.TempDir(), "world.json")
	if err := w.SaveJSON(path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var ws WorldState
	if err := json.Unmarshal(data, &ws); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ws.Seed != 42 || ws.Size != 64 {
		t.Errorf("round trip seed %d size %d", ws.Seed, ws.Size)
	}
	if len(ws.Creatures) != w.Alive() {
		t.Errorf("round trip lost creatures: %d vs %d", len(ws.Creatures), w.Alive())
	}
}

func TestSaveJSONBadPath(t *testing.T) {
	w := newTestWorld(t, 42)
	if err := w.SaveJSON(filepath.Join(t.TempDir(), "missing", "world.json")); err == nil {
		t.Fatal("no error writing into a missing directory")
	}
}

func TestSummary(t *testing.T) {
	w := newTestWorld(t, 42)
	s := w.Summary()

	for _, want := range []string{
		"world seed 42, 64x64 cells, tick 0",
		"height 0.00..1.00",
		"rivers",
		"structures",
		"creatures:",
		"weather",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestFindSpawnPositionAllWater(t *testing.T) {
	tr := flatTerrain(32)
	for i := range tr.Biomes {
		tr.Biomes[i] = BiomeWater
	}
	x, y, ok := tr.FindSpawnPosition()
	if ok {
		t.Fatal("found a spawn cell on an all-water world")
	}
	if x != 16 || y != 16 {
		t.Fatalf("fallback spawn at (%d, %d), want center", x, y)
	}
}
