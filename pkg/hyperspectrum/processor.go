// Package hyperspectrum runs the complete line-profile pipeline: it loads a
// lambda stack, waits for a line selection, samples and normalizes the
// channel intensities along it, and writes the CSV exports and the
// calibrated hyperspectral raster.
package hyperspectrum

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"hyperstack/internal/models"
	"hyperstack/pkg/axis"
	"hyperstack/pkg/config"
	"hyperstack/pkg/export"
	"hyperstack/pkg/outpath"
	"hyperstack/pkg/profile"
	"hyperstack/pkg/raster"
	"hyperstack/pkg/selection"
	"hyperstack/pkg/stack"
	"hyperstack/pkg/visualization"
)

// Params holds the inputs of one run
type Params struct {
	// StackDir is the directory holding one image per channel
	StackDir string

	// MetadataPath is the YAML file with the emission wavelengths.
	// Defaults to metadata.yaml inside StackDir.
	MetadataPath string

	// OutputDir receives a sub-directory named after the stack
	OutputDir string

	// Selection supplies the line; it may block until the user answers
	Selection selection.Source

	// Config holds canvas, axis and rendering settings
	Config *config.Config
}

// Result describes what a successful run produced
type Result struct {
	Paths    outpath.Paths
	Line     models.Line
	Profile  *profile.Profile
	Spectrum profile.Spectrum
	Ticks    []models.Tick
}

// Processor handles a single run. It is not safe for concurrent use and
// keeps no state between runs.
type Processor struct {
	params *Params
	cfg    *config.Config

	stack       *stack.Stack
	wavelengths []int
	line        models.Line
	annotator   *visualization.Annotator

	// writeRaster stores the final raster
	writeRaster func(img image.Image, path string) error

	result Result
}

// NewProcessor creates a processor for the given parameters
func NewProcessor(params *Params) *Processor {
	cfg := params.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Processor{params: params, cfg: cfg, writeRaster: visualization.SavePNG}
}

// Process runs the pipeline. Any error aborts the run.
func (p *Processor) Process() error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	annotator, err := newAnnotator(p.cfg)
	if err != nil {
		return err
	}
	p.annotator = annotator
	if p.params.Selection == nil {
		return fmt.Errorf("no selection source configured")
	}

	fmt.Println("Step 1: Loading lambda stack...")
	if err := p.loadStack(); err != nil {
		return err
	}

	fmt.Println("Step 2: Waiting for line selection...")
	sel, err := p.params.Selection.Select()
	if err != nil {
		return err
	}
	if p.line, err = selection.RequireLine(sel); err != nil {
		return err
	}
	if err := p.stack.CheckLine(p.line); err != nil {
		return err
	}
	p.result.Line = p.line
	p.logf("Line from (%.1f, %.1f) to (%.1f, %.1f), length %.1f px\n",
		p.line.X1, p.line.Y1, p.line.X2, p.line.Y2, p.line.Length())

	fmt.Println("Step 3: Sampling channel intensities along the line...")
	raw, err := profile.Sample(p.stack, p.stack.Channels(), p.line)
	if err != nil {
		return err
	}

	fmt.Println("Step 4: Normalizing per position...")
	prof, err := profile.Build(raw, p.wavelengths)
	if err != nil {
		return err
	}
	p.result.Profile = prof
	p.logf("Profile: %d positions x %d channels\n", prof.Positions(), prof.Channels())
	if n := len(prof.Degenerate); n > 0 {
		log.Printf("Warning: %d of %d positions have a constant spectrum and were set to 0", n, prof.Positions())
	}

	fmt.Println("Step 5: Rendering hyperspectral image...")
	img, err := p.render(prof)
	if err != nil {
		return err
	}

	fmt.Println("Step 6: Writing results...")
	if err := p.save(prof, img); err != nil {
		return err
	}

	p.result.Spectrum = profile.Summarize(prof)
	return nil
}

// GetResult returns the outcome of the last successful Process call
func (p *Processor) GetResult() Result {
	return p.result
}

func (p *Processor) loadStack() error {
	s, err := stack.Load(p.params.StackDir)
	if err != nil {
		return fmt.Errorf("failed to load stack: %w", err)
	}
	if s.Channels() < 2 {
		return fmt.Errorf("not a stack: %w: got %d", profile.ErrTooFewChannels, s.Channels())
	}
	s.Interpolate = p.cfg.Sampling.Interpolate
	p.stack = s
	fmt.Printf("Loaded %d channels with dimensions %dx%d\n", s.Channels(), s.Width, s.Height)

	metadataPath := p.params.MetadataPath
	if metadataPath == "" {
		metadataPath = filepath.Join(p.params.StackDir, stack.MetadataFile)
	}
	p.wavelengths, err = stack.LoadWavelengths(metadataPath, s.Channels())
	if err != nil {
		return err
	}
	p.logf("Emission wavelengths: %v nm\n", p.wavelengths)
	return nil
}

// save writes the artifacts of the run into a fresh ROI slot. When any
// write fails, the files already written by this call are removed so the
// slot stays free for the next run.
func (p *Processor) save(prof *profile.Profile, img image.Image) (err error) {
	outDir := filepath.Join(p.params.OutputDir, p.stack.Title)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	paths, err := outpath.Resolve(outDir, p.stack.Title)
	if err != nil {
		return err
	}
	p.result.Paths = paths
	fmt.Printf("Files will be saved in %s\n", outDir)

	defer func() {
		if err != nil {
			discard(paths)
		}
	}()

	if p.cfg.Output.SavePreview {
		if err := p.savePreview(paths.Preview); err != nil {
			return fmt.Errorf("failed to save preview: %w", err)
		}
	}
	if err := export.WritePair(paths.RawCSV, paths.NormCSV, prof.Header, prof.RawExport(), prof.Normalized); err != nil {
		return err
	}
	if err := p.writeRaster(img, paths.Raster); err != nil {
		return fmt.Errorf("failed to save raster: %w", err)
	}
	return nil
}

// discard removes whatever artifacts of paths exist
func discard(paths outpath.Paths) {
	for _, path := range paths.All() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove %s: %v", path, err)
		}
	}
}

func (p *Processor) savePreview(path string) error {
	img, err := visualization.Preview(p.stack.MaxProjection(), p.stack.Width, p.stack.Height, p.line, visualization.Yellow)
	if err != nil {
		return err
	}
	return visualization.SavePNG(img, path)
}

// render builds the annotated raster in memory
func (p *Processor) render(prof *profile.Profile) (*image.RGBA, error) {
	cfg := p.cfg

	builder := raster.NewBuilder(cfg.Canvas.Width, cfg.Canvas.Height)
	builder.Smooth = cfg.Raster.Smooth
	img, err := builder.Build(prof.Normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to build raster: %w", err)
	}

	ticks, err := axis.Compute(prof.Header, cfg.Canvas.Width, cfg.Canvas.Height, axis.Options{
		TickInterval: cfg.Axis.TickInterval,
		Inset:        cfg.Axis.Inset,
		LabelOffset:  cfg.Axis.LabelOffset,
	})
	if err != nil {
		return nil, err
	}
	p.result.Ticks = ticks

	final, err := p.annotator.Annotate(img, ticks)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate raster: %w", err)
	}
	return final, nil
}

// newAnnotator builds the overlay renderer from the axis and calibration
// bar settings
func newAnnotator(cfg *config.Config) (*visualization.Annotator, error) {
	annotator := visualization.NewAnnotator(cfg.Canvas.FinalHeight, cfg.Axis.StripHeight, cfg.Axis.FontSize)

	labelColor, err := visualization.ParseColor(cfg.Axis.LabelColor)
	if err != nil {
		return nil, fmt.Errorf("axis label colour: %w", err)
	}
	annotator.LabelColor = labelColor

	if cfg.CalibrationBar.Enabled {
		barColor, err := visualization.ParseColor(cfg.CalibrationBar.LabelColor)
		if err != nil {
			return nil, fmt.Errorf("calibration bar label colour: %w", err)
		}
		annotator.Bar = &visualization.CalibrationBar{
			Divisions:  cfg.CalibrationBar.Divisions,
			Decimals:   cfg.CalibrationBar.Decimals,
			FontSize:   cfg.CalibrationBar.FontSize,
			Zoom:       cfg.CalibrationBar.Zoom,
			Bold:       cfg.CalibrationBar.Bold,
			LabelColor: barColor,
		}
	}
	return annotator, nil
}

func (p *Processor) logf(format string, args ...any) {
	if p.cfg.Output.Verbose {
		fmt.Printf(format, args...)
	}
}
