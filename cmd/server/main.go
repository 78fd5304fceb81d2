package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/camkilo/fractalworlds"
	"github.com/gorilla/mux"
)

var world *fractalworlds.World

var (
	seed       int64 = 12345
	size       int   = 256
	configPath string
	addr       = ":3333"
)

func init() {
	flag.Int64Var(&seed, "seed", seed, "the world seed")
	flag.IntVar(&size, "size", size, "world size in cells")
	flag.StringVar(&configPath, "config", configPath, "path to a yaml config file")
	flag.StringVar(&addr, "addr", addr, "listen address")
}

func main() {
	flag.Parse()

	cfg := fractalworlds.NewConfig()
	if configPath != "" {
		var err error
		cfg, err = fractalworlds.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if size > 0 {
		cfg.WorldSize = size
	}

	w, err := fractalworlds.NewWorld(uint32(seed), cfg)
	if err != nil {
		log.Fatal(err)
	}
	world = w

	router := mux.NewRouter()
	router.HandleFunc("/world", worldHandler)
	router.HandleFunc("/summary", summaryHandler)
	router.HandleFunc("/map.png", mapHandler)
	router.HandleFunc("/geojson", geoJSONHandler)
	router.HandleFunc("/creatures", creaturesHandler)
	router.HandleFunc("/history", historyHandler)
	router.HandleFunc("/tick", tickHandler).Methods("POST")
	log.Fatal(http.ListenAndServe(addr, router))
}

func worldHandler(res http.ResponseWriter, req *http.Request) {
	writeJSON(res, world.Snapshot())
}

func summaryHandler(res http.ResponseWriter, req *http.Request) {
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.Write([]byte(world.Summary()))
}

// mapHandler renders the world map. The url parameter 'd' selects the
// display mode, 'px' the cell size in pixels.
func mapHandler(res http.ResponseWriter, req *http.Request) {
	d := req.URL.Query().Get("d")
	if d == "" {
		d = "0"
	}
	displayMode, err := strconv.Atoi(d)
	if err != nil || displayMode < 0 || displayMode > int(fractalworlds.DisplayClimate) {
		http.Error(res, "d must be 0 (biomes), 1 (elevation) or 2 (climate)", http.StatusBadRequest)
		return
	}

	cellPx := 0
	if px := req.URL.Query().Get("px"); px != "" {
		cellPx, err = strconv.Atoi(px)
		if err != nil || cellPx < 1 || cellPx > 64 {
			http.Error(res, "px must be 1..64", http.StatusBadRequest)
			return
		}
	}

	img := world.RenderImage(fractalworlds.DisplayMode(displayMode), cellPx)
	writeImage(res, img)
}

func geoJSONHandler(res http.ResponseWriter, req *http.Request) {
	data, err := world.ExportGeoJSON()
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	res.Header().Set("Content-Length", strconv.Itoa(len(data)))
	res.Write(data)
}

func creaturesHandler(res http.ResponseWriter, req *http.Request) {
	writeJSON(res, world.Snapshot().Creatures)
}

func historyHandler(res http.ResponseWriter, req *http.Request) {
	writeJSON(res, world.PopulationHistory())
}

// tickHandler advances the simulation. The url parameter 'n' sets the
// number of ticks; the response carries the delta of the last one.
func tickHandler(res http.ResponseWriter, req *http.Request) {
	n := 1
	if q := req.URL.Query().Get("n"); q != "" {
		var err error
		n, err = strconv.Atoi(q)
		if err != nil || n < 1 || n > 10000 {
			http.Error(res, "n must be 1..10000", http.StatusBadRequest)
			return
		}
	}
	var last fractalworlds.TickDelta
	for i := 0; i < n; i++ {
		last = world.Tick()
	}
	writeJSON(res, last)
}

// writeImage writes the image to the response writer.
func writeImage(res http.ResponseWriter, img image.Image) {
	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, img); err != nil {
		log.Println("unable to encode image.")
	}

	res.Header().Set("Content-Type", "image/png")
	res.Header().Set("Content-Length", strconv.Itoa(len(buffer.Bytes())))
	if _, err := res.Write(buffer.Bytes()); err != nil {
		log.Println("unable to write image.")
	}
}

// writeJSON writes the value to the response writer as JSON.
func writeJSON(res http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	res.Header().Set("Content-Length", strconv.Itoa(len(data)))
	res.Write(data)
}
