package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"hyperstack/pkg/config"
	"hyperstack/pkg/hyperspectrum"
	"hyperstack/pkg/selection"
)

func main() {
	inputDir := flag.String("input", "", "Directory containing one image per spectral channel")
	metadataPath := flag.String("metadata", "", "YAML file with the emission wavelengths (default: <input>/metadata.yaml)")
	outputDir := flag.String("output", "", "Directory receiving the results (default: home directory)")
	configPath := flag.String("config", "", "Path to the YAML configuration file")
	writeConfig := flag.String("write-config", "", "Write the default configuration to this path and exit")
	lineFlag := flag.String("line", "", "Line selection as x1,y1,x2,y2 (prompted when empty)")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *writeConfig)
		return
	}

	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
	}

	if *outputDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		*outputDir = home
	}

	source, err := newSelectionSource(*lineFlag, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("Invalid -line value: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("HYPERSPECTRAL LINE PROFILE FROM A LAMBDA STACK")
	fmt.Println("================================")

	proc := hyperspectrum.NewProcessor(&hyperspectrum.Params{
		StackDir:     *inputDir,
		MetadataPath: *metadataPath,
		OutputDir:    *outputDir,
		Selection:    source,
		Config:       cfg,
	})

	startTime := time.Now()
	if err := proc.Process(); err != nil {
		log.Fatalf("Processing failed: %v", err)
	}
	elapsed := time.Since(startTime)

	res := proc.GetResult()
	fmt.Printf("\nCompleted in %.2f seconds\n", elapsed.Seconds())
	fmt.Printf("Results saved to: %s\n", filepath.Dir(res.Paths.Raster))
	for _, path := range res.Paths.All() {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("- %s\n", filepath.Base(path))
		}
	}

	spectrum := res.Spectrum
	fmt.Println("\nMean normalized spectrum:")
	fmt.Println("=========================")
	for i, wl := range spectrum.Wavelengths {
		fmt.Printf("%4d nm: %.3f ± %.3f\n", wl, spectrum.Mean[i], spectrum.StdDev[i])
	}
	fmt.Printf("Peak emission: %d nm\n", spectrum.PeakWavelength)
}

// newSelectionSource returns a fixed selection when line is set, otherwise
// a prompt on in/out
func newSelectionSource(line string, in io.Reader, out io.Writer) (selection.Source, error) {
	if line == "" {
		return selection.NewPrompter(in, out), nil
	}
	sel, err := selection.Parse(line)
	if err != nil {
		return nil, err
	}
	return selection.Static(sel), nil
}
