package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/mlapaglia/MotionMiner/internal/config"
	"github.com/mlapaglia/MotionMiner/internal/convert"
	"github.com/mlapaglia/MotionMiner/internal/motion"
)

const (
	exitOK    = 0
	exitError = 1
)

// Options is the parsed command line. Extraction settings live in the
// embedded config so a config file and flags share one shape.
type Options struct {
	Config  config.ExtractionConfig
	Analyze bool
	JSON    bool
	Help    bool
}

// Run parses args (args[0] is the program name) and executes the
// requested mode. It returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	return runWith(args, stdout, stderr, convert.NewRunner())
}

func runWith(args []string, stdout, stderr io.Writer, runner convert.Runner) int {
	if len(args) == 0 {
		return exitError
	}
	program := programName(args[0])

	opts, inputs, err := parseArgs(args[1:])
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}
	if opts.Help {
		Help(program, stdout)
		return exitOK
	}

	switch len(inputs) {
	case 0:
		return Usage(program, stdout)
	case 1:
		opts.Config.Input = inputs[0]
	default:
		fmt.Fprintln(stderr, "expected one input path; use --batch with a directory for multiple files")
		return exitError
	}

	if opts.Analyze {
		return runAnalyze(opts, stdout, stderr)
	}

	if err := opts.Config.Validate(); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}

	a := &app{
		cfg:    opts.Config,
		runner: runner,
		stdout: stdout,
		stderr: stderr,
	}
	if opts.Config.Batch {
		return a.runBatch()
	}
	return a.runSingle()
}

func parseArgs(args []string) (Options, []string, error) {
	opts := Options{Config: config.Default()}
	inputs := make([]string, 0)
	configLoaded := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			opts.Help = true
			return opts, nil, nil
		case arg == "-o" || arg == "--output":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("%s needs a directory argument", arg)
			}
			i++
			opts.Config.OutputDir = args[i]
		case strings.HasPrefix(arg, "--output="):
			opts.Config.OutputDir = strings.TrimPrefix(arg, "--output=")
		case arg == "--mp4":
			opts.Config.Format = config.FormatMP4
		case arg == "--gif":
			opts.Config.Format = config.FormatGIF
		case arg == "--both":
			opts.Config.Format = config.FormatBoth
		case arg == "--gif-tiny":
			opts.Config.Format = gifFormat(opts.Config.Format)
			opts.Config.GIF.Quality = string(convert.QualityTiny)
		case arg == "--gif-low":
			opts.Config.Format = gifFormat(opts.Config.Format)
			opts.Config.GIF.Quality = string(convert.QualityLow)
		case arg == "--gif-medium":
			opts.Config.Format = gifFormat(opts.Config.Format)
			opts.Config.GIF.Quality = string(convert.QualityMedium)
		case arg == "--gif-high":
			opts.Config.Format = gifFormat(opts.Config.Format)
			opts.Config.GIF.Quality = string(convert.QualityHigh)
		case strings.HasPrefix(arg, "--gif-width="):
			value := strings.TrimPrefix(arg, "--gif-width=")
			width, err := strconv.Atoi(value)
			if err != nil {
				return opts, nil, fmt.Errorf("invalid --gif-width value %q", value)
			}
			opts.Config.GIF.Width = width
		case arg == "--gif-no-loop":
			opts.Config.GIF.Loop = false
		case arg == "--photo":
			opts.Config.ExtractPhoto = true
		case arg == "--analyze":
			opts.Analyze = true
		case arg == "--json":
			opts.JSON = true
		case arg == "--batch":
			opts.Config.Batch = true
		case strings.HasPrefix(arg, "--batch-output="):
			opts.Config.Batch = true
			opts.Config.OutputDir = strings.TrimPrefix(arg, "--batch-output=")
		case strings.HasPrefix(arg, "--config="):
			if configLoaded {
				return opts, nil, fmt.Errorf("--config given twice")
			}
			loaded, err := config.Load(strings.TrimPrefix(arg, "--config="))
			if err != nil {
				return opts, nil, err
			}
			// Flags seen so far are discarded; a config file belongs
			// first on the command line.
			opts.Config = loaded
			configLoaded = true
		case strings.HasPrefix(arg, "-"):
			return opts, nil, fmt.Errorf("unknown option %s", arg)
		default:
			inputs = append(inputs, arg)
		}
	}
	return opts, inputs, nil
}

// gifFormat upgrades the output format so a quality flag alone implies
// GIF output without clobbering an explicit --both.
func gifFormat(current string) string {
	if current == config.FormatBoth {
		return current
	}
	return config.FormatGIF
}

func runAnalyze(opts Options, stdout, stderr io.Writer) int {
	report, err := motion.AnalyzeFile(opts.Config.Input)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}
	if opts.JSON {
		fmt.Fprint(stdout, motion.RenderJSON(report))
	} else {
		fmt.Fprint(stdout, motion.RenderText(report))
	}
	return exitOK
}

type app struct {
	cfg    config.ExtractionConfig
	runner convert.Runner
	stdout io.Writer
	stderr io.Writer
}

func (a *app) runSingle() int {
	if err := a.extractOne(a.cfg.Input); err != nil {
		fmt.Fprintln(a.stderr, err.Error())
		return exitError
	}
	return exitOK
}

func (a *app) runBatch() int {
	photos, err := listPhotos(a.cfg.Input)
	if err != nil {
		fmt.Fprintln(a.stderr, err.Error())
		return exitError
	}
	if len(photos) == 0 {
		fmt.Fprintf(a.stderr, "no JPEG files found in %s\n", a.cfg.Input)
		return exitError
	}

	extracted, skipped, failed := 0, 0, 0
	for _, photo := range photos {
		err := a.extractOne(photo)
		switch {
		case err == nil:
			extracted++
		case motion.KindOf(err) == motion.ErrorNotMotionPhoto:
			skipped++
			fmt.Fprintf(a.stdout, "%s %s: no embedded video\n", color.YellowString("skip"), photo)
		default:
			failed++
			fmt.Fprintf(a.stderr, "%s %s: %v\n", color.RedString("fail"), photo, err)
		}
	}

	fmt.Fprintf(a.stdout, "\n%s %d extracted, %d skipped, %d failed\n",
		color.GreenString("done:"), extracted, skipped, failed)
	if failed > 0 {
		return exitError
	}
	return exitOK
}

func (a *app) extractOne(src string) error {
	outDir := a.cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(src)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))

	mp4Path := filepath.Join(outDir, base+".mp4")
	video, anomalies, err := motion.ExtractFile(src, mp4Path)
	if err != nil {
		return err
	}
	for _, anomaly := range anomalies {
		fmt.Fprintf(a.stderr, "%s %s: %s\n", color.YellowString("note"), src, anomaly)
	}
	fmt.Fprintf(a.stdout, "%s %s -> %s (%d bytes)\n",
		color.GreenString("ok"), src, mp4Path, video.Length)

	if a.cfg.ExtractPhoto {
		photoPath := filepath.Join(outDir, base+"_photo.jpg")
		if _, _, err := motion.ExtractPhotoFile(src, photoPath); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s %s -> %s\n", color.GreenString("ok"), src, photoPath)
	}

	if a.cfg.NeedsGIF() {
		gifPath := filepath.Join(outDir, base+".gif")
		if err := convert.ConvertWithFallback(context.Background(), a.runner, mp4Path, gifPath, a.cfg.GIFOptions()); err != nil {
			if !a.cfg.NeedsMP4() {
				os.Remove(mp4Path)
			}
			return err
		}
		fmt.Fprintf(a.stdout, "%s %s -> %s\n", color.GreenString("ok"), mp4Path, gifPath)
	}

	if !a.cfg.NeedsMP4() {
		os.Remove(mp4Path)
	}
	return nil
}

// listPhotos returns the JPEG files directly inside dir, sorted for
// stable batch output.
func listPhotos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var photos []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg":
			photos = append(photos, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(photos)
	return photos, nil
}

func programName(arg0 string) string {
	name := filepath.Base(arg0)
	if runtime.GOOS == "windows" {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
