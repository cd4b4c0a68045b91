// Command shapedump writes the generated target positions of a shape as CSV.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/shapes"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	shapeName := flag.String("shape", "Heart", "Catalog shape name")
	count := flag.Int("n", 0, "Particle count (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	morph := flag.Bool("morph", false, "Dump the companion text target instead")
	output := flag.String("output", "", "Output CSV file (empty = stdout)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	n := cfg.Field.ParticleCount
	if *count > 0 {
		n = *count
	}
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	text, err := shapes.NewRasterizer(cfg.Text)
	if err != nil {
		log.Fatalf("failed to create rasterizer: %v", err)
	}
	defer text.Close()

	catalog := shapes.CatalogFromConfig(cfg.Shapes)
	shape := catalog.Lookup(*shapeName)
	gen := shapes.NewGenerator(n, text, rand.New(rand.NewSource(rngSeed)))

	buf := gen.Generate(shape)
	if *morph {
		buf = gen.GenerateMorph(shape)
		if buf == nil {
			log.Fatalf("shape %q has no companion text", shape.Name)
		}
	}

	w := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}
	if err := shapes.WriteCSV(w, buf); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("wrote %d points for %s", buf.Len(), shape.Name)
}
