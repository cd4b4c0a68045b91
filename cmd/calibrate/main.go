// Command calibrate fits the gesture fist and open distances to a recording
// of labelled hand landmarks and prints the result as config YAML.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/gesture"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	input := flag.String("input", "", "JSON-line recording with openness labels (empty = stdin)")
	samplesOut := flag.String("samples", "", "Also write the measured samples as CSV")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	in := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	var samples []gesture.CalibrationSample
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		s, err := gesture.ParseSample(b)
		if err != nil {
			log.Printf("line %d: %v", line, err)
			continue
		}
		samples = append(samples, s)
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("reading input: %v", err)
	}

	if *samplesOut != "" {
		f, err := os.Create(*samplesOut)
		if err != nil {
			log.Fatalf("failed to create samples file: %v", err)
		}
		if err := gocsv.MarshalFile(&samples, f); err != nil {
			log.Fatalf("writing samples: %v", err)
		}
		f.Close()
	}

	cal, err := gesture.FitCalibration(samples, gesture.CalibrationFromConfig(cfg.Gesture))
	if errors.Is(err, gesture.ErrNoSamples) {
		log.Fatal("no usable samples in input")
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	gc := cfg.Gesture
	gc.FistDistance = cal.Fist
	gc.OpenDistance = cal.Open
	out := struct {
		Gesture config.GestureConfig `yaml:"gesture"`
	}{gc}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encoding config: %v", err)
	}
	enc.Close()
}
