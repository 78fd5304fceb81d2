package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/camkilo/fractalworlds"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var memprofile = flag.String("memprofile", "", "write memory profile to this file")

var (
	seed       = flag.Uint("seed", 1234, "the world seed")
	size       = flag.Int("size", 0, "world size in cells, overrides the config file")
	configPath = flag.String("config", "", "path to a yaml config file")
	ticks      = flag.Int("ticks", 0, "simulation ticks to run after generation")
	pngPath    = flag.String("png", "", "write a map png to this file")
	geoPath    = flag.String("geojson", "", "write world features as geojson to this file")
	jsonPath   = flag.String("json", "", "write the world snapshot as json to this file")
	summary    = flag.Bool("summary", true, "print a world summary")
)

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg := fractalworlds.NewConfig()
	if *configPath != "" {
		var err error
		cfg, err = fractalworlds.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *size > 0 {
		cfg.WorldSize = *size
	}

	w, err := fractalworlds.NewWorld(uint32(*seed), cfg)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < *ticks; i++ {
		w.Tick()
	}

	if *summary {
		w.PrintSummary()
	}
	if *pngPath != "" {
		if err := w.ExportPNG(*pngPath, fractalworlds.DisplayBiomes); err != nil {
			log.Fatal(err)
		}
	}
	if *geoPath != "" {
		if err := w.SaveGeoJSON(*geoPath); err != nil {
			log.Fatal(err)
		}
	}
	if *jsonPath != "" {
		if err := w.SaveJSON(*jsonPath); err != nil {
			log.Fatal(err)
		}
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}
