package fractalworlds

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/Flokey82/genbiome"
	"github.com/Flokey82/go_gens/gameconstants"
	"github.com/Flokey82/go_gens/utils"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/mazznoer/colorgrad"

	"github.com/camkilo/fractalworlds/various"
)

// DisplayMode selects the base layer of a rendered map.
type DisplayMode int

const (
	DisplayBiomes DisplayMode = iota
	DisplayElevation
	DisplayClimate
)

const (
	minTemp          = genbiome.MinTemperatureC
	maxTemp          = genbiome.MaxTemperatureC
	rangeTemp        = maxTemp - minTemp
	maxPrecipitation = genbiome.MaxPrecipitationDM
)

// maxAltitudeFactor converts unit height above the waterline into meters
// for the temperature falloff.
const maxAltitudeFactor = gameconstants.EarthMaxElevation

// speciesColor is the marker palette for rendered creatures.
var speciesColor = [NumSpecies]color.NRGBA{
	SpeciesFractalDragon: {200, 30, 30, 255},
	SpeciesGeometricWolf: {160, 160, 170, 255},
	SpeciesSpiralSerpent: {60, 180, 75, 255},
	SpeciesCrystalSpider: {40, 40, 40, 255},
	SpeciesPatternBird:   {245, 245, 245, 255},
	SpeciesGoldenBear:    {140, 90, 40, 255},
}

// RenderImage draws the world as a raster map with vector overlays for
// rivers, structures, villages, caves and creatures. cellPx is the edge
// length of one cell in pixels; zero or less picks a size that keeps the
// image near 1024 pixels wide. At night the base layer darkens and magic
// rivers switch to their glow color.
func (w *World) RenderImage(mode DisplayMode, cellPx int) image.Image {
	if cellPx <= 0 {
		cellPx = utils.Max(1, 1024/w.Size)
	}
	size := w.Size
	dest := image.NewRGBA(image.Rect(0, 0, size*cellPx, size*cellPx))

	night := w.Environment.IsNight()
	shade := 1.0
	if night {
		shade = 0.72
	}

	colorFunc := w.cellColorFunc(mode)
	various.KickOffChunkWorkers(size, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < size; x++ {
				fillCell(dest, x, y, cellPx, shadeColor(colorFunc(w.CellIndex(x, y)), shade))
			}
		}
	})

	gc := draw2dimg.NewGraphicContext(dest)
	w.drawRivers(gc, cellPx, night)
	w.drawStructures(gc, cellPx)
	w.drawVillages(gc, cellPx)
	w.drawCaves(gc, cellPx)
	w.drawCreatures(gc, cellPx)
	return dest
}

// cellColorFunc returns the base color for a cell under the given mode.
func (w *World) cellColorFunc(mode DisplayMode) func(i int) color.NRGBA {
	switch mode {
	case DisplayElevation:
		// Blue to red over the full height range, water included.
		colorGrad := colorgrad.NewGradient()
		colorGrad.Colors(
			color.RGBA{0, 0, 255, 255},
			color.RGBA{0, 255, 255, 255},
			color.RGBA{0, 255, 0, 255},
			color.RGBA{255, 255, 0, 255},
			color.RGBA{255, 0, 0, 255},
		)
		cb, err := colorGrad.Build()
		if err != nil {
			log.Fatal(err)
		}
		return func(i int) color.NRGBA {
			return color.NRGBAModel.Convert(cb.At(w.Height[i])).(color.NRGBA)
		}
	case DisplayClimate:
		waterLevel := w.cfg.GenConfig.WaterLevel
		return func(i int) color.NRGBA {
			h := w.Height[i]
			if w.Biomes[i] == BiomeWater {
				return genBlue(clamp01(h / waterLevel))
			}
			altitude := maxAltitudeFactor * clamp01((h-waterLevel)/(1-waterLevel))
			tempC := minTemp + w.Climate[i]*rangeTemp - gameconstants.EarthElevationTemperatureFalloff*altitude
			precipDm := (1 - h) * maxPrecipitation
			return genbiome.GetWhittakerModBiomeColor(int(tempC), int(precipDm), 0.55+0.45*h)
		}
	default:
		waterLevel := w.cfg.GenConfig.WaterLevel
		return func(i int) color.NRGBA {
			h := w.Height[i]
			if w.Biomes[i] == BiomeWater {
				return genBlue(clamp01(h / waterLevel))
			}
			return shadeColor(w.Biomes[i].Color(), 0.6+0.4*h)
		}
	}
}

func fillCell(img *image.RGBA, x, y, cellPx int, col color.NRGBA) {
	c := color.RGBA{col.R, col.G, col.B, col.A}
	for py := y * cellPx; py < (y+1)*cellPx; py++ {
		for px := x * cellPx; px < (x+1)*cellPx; px++ {
			img.SetRGBA(px, py, c)
		}
	}
}

func (w *World) drawRivers(gc *draw2dimg.GraphicContext, cellPx int, night bool) {
	for _, r := range w.Rivers {
		col := color.NRGBA{30, 90, 220, 255}
		if r.Glow && night {
			col = color.NRGBA{120, 220, 255, 255}
		}
		gc.SetStrokeColor(col)
		gc.SetLineWidth(r.Width * float64(cellPx) * 0.35)
		gc.BeginPath()
		for i, cell := range r.Path {
			x, y := w.CellXY(cell)
			px := (float64(x) + 0.5) * float64(cellPx)
			py := (float64(y) + 0.5) * float64(cellPx)
			if i == 0 {
				gc.MoveTo(px, py)
			} else {
				gc.LineTo(px, py)
			}
		}
		gc.Stroke()
	}
}

func (w *World) drawStructures(gc *draw2dimg.GraphicContext, cellPx int) {
	gc.SetLineWidth(1)
	gc.SetStrokeColor(color.NRGBA{60, 20, 90, 255})
	gc.SetFillColor(color.NRGBA{170, 80, 220, 255})
	r := float64(cellPx) * 1.2
	for _, s := range w.Structures {
		cx := (s.X + 0.5) * float64(cellPx)
		cy := (s.Y + 0.5) * float64(cellPx)
		gc.BeginPath()
		gc.MoveTo(cx, cy-r)
		gc.LineTo(cx+r, cy)
		gc.LineTo(cx, cy+r)
		gc.LineTo(cx-r, cy)
		gc.Close()
		gc.FillStroke()
	}
}

func (w *World) drawVillages(gc *draw2dimg.GraphicContext, cellPx int) {
	gc.SetLineWidth(1)
	gc.SetStrokeColor(color.NRGBA{70, 40, 10, 255})
	gc.SetFillColor(color.NRGBA{190, 140, 70, 255})
	for _, v := range w.Villages {
		for _, h := range v.Huts {
			cx := (h.X + 0.5) * float64(cellPx)
			cy := (h.Y + 0.5) * float64(cellPx)
			r := h.Size * float64(cellPx) * 0.4
			gc.BeginPath()
			gc.MoveTo(cx-r, cy-r)
			gc.LineTo(cx+r, cy-r)
			gc.LineTo(cx+r, cy+r)
			gc.LineTo(cx-r, cy+r)
			gc.Close()
			gc.FillStroke()
		}
	}
}

func (w *World) drawCaves(gc *draw2dimg.GraphicContext, cellPx int) {
	gc.SetLineWidth(1)
	gc.SetStrokeColor(color.NRGBA{0, 0, 0, 255})
	gc.SetFillColor(color.NRGBA{50, 50, 60, 255})
	r := float64(cellPx) * 0.9
	for _, c := range w.Caves {
		x, y := w.CellXY(c.Cell)
		cx := (float64(x) + 0.5) * float64(cellPx)
		cy := (float64(y) + 0.5) * float64(cellPx)
		gc.BeginPath()
		gc.MoveTo(cx, cy-r)
		gc.LineTo(cx+r, cy+r)
		gc.LineTo(cx-r, cy+r)
		gc.Close()
		gc.FillStroke()
	}
}

func (w *World) drawCreatures(gc *draw2dimg.GraphicContext, cellPx int) {
	w.mu.Lock()
	creatures := w.Ecosystem.Creatures()
	type marker struct {
		x, y float64
		s    Species
	}
	markers := make([]marker, 0, len(creatures))
	for _, c := range creatures {
		markers = append(markers, marker{c.X, c.Y, c.Species})
	}
	w.mu.Unlock()

	r := math.Max(1.5, float64(cellPx)*0.3)
	gc.SetLineWidth(1)
	for _, m := range markers {
		col := speciesColor[m.s]
		gc.SetStrokeColor(color.NRGBA{0, 0, 0, 200})
		gc.SetFillColor(col)
		cx := (m.x + 0.5) * float64(cellPx)
		cy := (m.y + 0.5) * float64(cellPx)
		gc.BeginPath()
		gc.MoveTo(cx+r, cy)
		gc.ArcTo(cx, cy, r, r, 0, 2*math.Pi)
		gc.Close()
		gc.FillStroke()
	}
}

// ExportPNG renders the world in the given mode and writes it to path.
func (w *World) ExportPNG(path string, mode DisplayMode) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, w.RenderImage(mode, 0)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
