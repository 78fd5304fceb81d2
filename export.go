package fractalworlds

import (
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
)

// ExportGeoJSON returns the world's features as a GeoJSON feature
// collection in grid coordinates. Rivers become line strings; forests,
// structures, villages, caves and creatures become points with a "kind"
// property to filter on.
func (w *World) ExportGeoJSON() ([]byte, error) {
	ws := w.Snapshot()
	geoJSON := geojson.NewFeatureCollection()

	for i, r := range ws.Rivers {
		coords := make([][]float64, 0, len(r.Points))
		for _, p := range r.Points {
			coords = append(coords, []float64{float64(p.X), float64(p.Y)})
		}
		f := geojson.NewLineStringFeature(coords)
		f.SetProperty("kind", "river")
		f.SetProperty("id", i)
		f.SetProperty("width", r.Width)
		f.SetProperty("speed", r.Speed)
		f.SetProperty("glow", r.Glow)
		geoJSON.AddFeature(f)
	}

	for _, fo := range ws.Forests {
		magic := 0
		for _, tr := range fo.Trees {
			if tr.Magic {
				magic++
			}
		}
		f := geojson.NewPointFeature([]float64{float64(fo.X), float64(fo.Y)})
		f.SetProperty("kind", "forest")
		f.SetProperty("trees", len(fo.Trees))
		f.SetProperty("magic", magic)
		geoJSON.AddFeature(f)
	}

	for _, s := range ws.Structures {
		f := geojson.NewPointFeature([]float64{s.X, s.Y})
		f.SetProperty("kind", "structure")
		f.SetProperty("pattern", s.Pattern)
		f.SetProperty("depth", s.Depth)
		f.SetProperty("nodes", len(s.Nodes))
		f.SetProperty("runes", s.Runes)
		f.SetProperty("glow", s.Glow)
		geoJSON.AddFeature(f)
	}

	for _, v := range ws.Villages {
		f := geojson.NewPointFeature([]float64{float64(v.X), float64(v.Y)})
		f.SetProperty("kind", "village")
		f.SetProperty("name", v.Name)
		f.SetProperty("huts", len(v.Huts))
		geoJSON.AddFeature(f)
	}

	for _, c := range ws.Caves {
		f := geojson.NewPointFeature([]float64{float64(c.X), float64(c.Y)})
		f.SetProperty("kind", "cave")
		f.SetProperty("depth", c.Depth)
		geoJSON.AddFeature(f)
	}

	for _, c := range ws.Creatures {
		f := geojson.NewPointFeature([]float64{c.X, c.Y})
		f.SetProperty("kind", "creature")
		f.SetProperty("id", c.ID)
		f.SetProperty("species", c.Species)
		f.SetProperty("state", c.State)
		f.SetProperty("health", c.Health)
		f.SetProperty("age", c.Age)
		geoJSON.AddFeature(f)
	}

	geoJSONBytes, err := geoJSON.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return geoJSONBytes, nil
}

// SaveGeoJSON writes the GeoJSON feature collection to path.
func (w *World) SaveGeoJSON(path string) error {
	data, err := w.ExportGeoJSON()
	if err != nil {
		return fmt.Errorf("export geojson: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
