package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mlapaglia/MotionMiner/internal/convert"
)

// Output formats accepted by the extraction pipeline.
const (
	FormatMP4  = "mp4"
	FormatGIF  = "gif"
	FormatBoth = "both"
)

// ExtractionConfig holds every knob of an extraction run. The zero
// value is not usable; start from Default and layer a config file and
// CLI flags on top.
type ExtractionConfig struct {
	Input        string `yaml:"input"`
	OutputDir    string `yaml:"output_dir"`
	Format       string `yaml:"format"`
	Batch        bool   `yaml:"batch"`
	ExtractPhoto bool   `yaml:"extract_photo"`

	GIF struct {
		Quality string `yaml:"quality"`
		Width   int    `yaml:"width"`
		Loop    bool   `yaml:"loop"`
	} `yaml:"gif"`
}

// Default returns the configuration an extraction run starts from.
func Default() ExtractionConfig {
	var cfg ExtractionConfig
	cfg.Format = FormatMP4
	cfg.GIF.Quality = string(convert.QualityMedium)
	cfg.GIF.Width = 480
	cfg.GIF.Loop = true
	return cfg
}

// Load reads a YAML config file over the defaults. A missing file is
// an error; callers decide whether a config file is optional.
func Load(path string) (ExtractionConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration against the filesystem and the
// known format and quality names.
func (c ExtractionConfig) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input path given")
	}
	info, err := os.Stat(c.Input)
	if err != nil {
		return fmt.Errorf("input %s: %w", c.Input, err)
	}
	if c.Batch && !info.IsDir() {
		return fmt.Errorf("batch mode needs a directory, %s is a file", c.Input)
	}
	if !c.Batch && info.IsDir() {
		return fmt.Errorf("%s is a directory, use batch mode", c.Input)
	}

	switch c.Format {
	case FormatMP4, FormatGIF, FormatBoth:
	default:
		return fmt.Errorf("unknown format %q, expected %s, %s or %s",
			c.Format, FormatMP4, FormatGIF, FormatBoth)
	}

	if c.NeedsGIF() {
		if _, err := convert.ParseQuality(c.GIF.Quality); err != nil {
			return err
		}
		if c.GIF.Width <= 0 {
			return fmt.Errorf("gif width must be positive, got %d", c.GIF.Width)
		}
	}
	return nil
}

// NeedsGIF reports whether the run will invoke the GIF converter.
func (c ExtractionConfig) NeedsGIF() bool {
	return c.Format == FormatGIF || c.Format == FormatBoth
}

// NeedsMP4 reports whether the run keeps the extracted MP4.
func (c ExtractionConfig) NeedsMP4() bool {
	return c.Format == FormatMP4 || c.Format == FormatBoth
}

// GIFOptions translates the configuration into converter options.
func (c ExtractionConfig) GIFOptions() convert.Options {
	return convert.Options{
		Quality: convert.Quality(strings.ToLower(c.GIF.Quality)),
		Width:   c.GIF.Width,
		Loop:    c.GIF.Loop,
	}
}
