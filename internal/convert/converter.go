package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Runner executes an external tool and returns its standard output.
// Production code uses execRunner; tests inject a fake to capture
// argument lists without spawning ffmpeg.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// NewRunner returns the Runner backed by the local ffmpeg/ffprobe
// binaries.
func NewRunner() Runner {
	return execRunner{}
}

const (
	defaultFPS = 30.0
	maxFPS     = 60.0
)

// Options controls GIF rendering. A zero Width or empty Quality falls
// back to the defaults; FPS of 0 means probe the source.
type Options struct {
	Quality Quality
	Width   int
	FPS     float64
	Loop    bool
}

func (o Options) withDefaults() Options {
	if o.Quality == "" {
		o.Quality = QualityMedium
	}
	if o.Width <= 0 {
		o.Width = 480
	}
	return o
}

// VideoFPS probes the frame rate of a video file. Unparseable or
// implausible rates degrade to the 30 fps default; rates above 60 are
// treated as bogus container metadata and also map to the default.
func VideoFPS(ctx context.Context, runner Runner, path string) float64 {
	out, err := runner.Run(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=avg_frame_rate,r_frame_rate",
		"-of", "default=noprint_wrappers=1",
		path)
	if err != nil {
		return defaultFPS
	}

	rates := map[string]string{}
	for _, line := range strings.Split(string(out), "\n") {
		if key, value, ok := strings.Cut(strings.TrimSpace(line), "="); ok {
			rates[key] = value
		}
	}
	for _, key := range []string{"avg_frame_rate", "r_frame_rate"} {
		if fps, ok := parseRate(rates[key]); ok {
			if fps > maxFPS {
				return defaultFPS
			}
			return fps
		}
	}
	return defaultFPS
}

// parseRate accepts both the fractional form ffprobe emits (30000/1001)
// and a plain decimal.
func parseRate(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0/0" || value == "N/A" {
		return 0, false
	}
	if num, den, ok := strings.Cut(value, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 || n <= 0 {
			return 0, false
		}
		return n / d, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}

// MP4ToGIF converts src to an animated GIF at dest using the two-pass
// palette pipeline: a palettegen pass computes an optimal color table,
// and the paletteuse pass renders with it. The palette temp file is
// removed in all cases.
func MP4ToGIF(ctx context.Context, runner Runner, src, dest string, opts Options) error {
	opts = opts.withDefaults()
	p := presets[opts.Quality]

	fps := opts.FPS
	if fps <= 0 {
		fps = VideoFPS(ctx, runner, src)
	}
	fps *= p.FPSMultiplier

	palette, err := os.CreateTemp("", "palette-*.png")
	if err != nil {
		return fmt.Errorf("creating palette file: %w", err)
	}
	palettePath := palette.Name()
	palette.Close()
	defer os.Remove(palettePath)

	scale := fmt.Sprintf("fps=%s,scale=%d:-1:flags=lanczos", formatFPS(fps), opts.Width)

	if _, err := runner.Run(ctx, "ffmpeg",
		"-y", "-i", src,
		"-vf", fmt.Sprintf("%s,palettegen=max_colors=%d", scale, p.MaxColors),
		palettePath); err != nil {
		return fmt.Errorf("palette pass: %w", err)
	}

	if _, err := runner.Run(ctx, "ffmpeg",
		"-y", "-i", src, "-i", palettePath,
		"-lavfi", fmt.Sprintf("%s[x];[x][1:v]paletteuse=dither=%s", scale, p.Dither),
		"-loop", loopFlag(opts.Loop),
		dest); err != nil {
		removeIfEmptyOrNew(dest)
		return fmt.Errorf("render pass: %w", err)
	}
	return removeIfEmpty(dest)
}

// ConvertWithFallback tries the two-pass pipeline and, when it fails,
// retries with a plain single-pass conversion so an odd source still
// produces something viewable.
func ConvertWithFallback(ctx context.Context, runner Runner, src, dest string, opts Options) error {
	if err := MP4ToGIF(ctx, runner, src, dest, opts); err == nil {
		return nil
	}
	opts = opts.withDefaults()

	fps := opts.FPS
	if fps <= 0 {
		fps = VideoFPS(ctx, runner, src)
	}
	fps *= presets[opts.Quality].FPSMultiplier

	if _, err := runner.Run(ctx, "ffmpeg",
		"-y", "-i", src,
		"-vf", fmt.Sprintf("fps=%s,scale=%d:-1:flags=lanczos", formatFPS(fps), opts.Width),
		"-loop", loopFlag(opts.Loop),
		dest); err != nil {
		removeIfEmptyOrNew(dest)
		return fmt.Errorf("fallback conversion: %w", err)
	}
	return removeIfEmpty(dest)
}

func loopFlag(loop bool) string {
	if loop {
		return "0" // repeat forever
	}
	return "-1"
}

func formatFPS(fps float64) string {
	return strconv.FormatFloat(fps, 'f', -1, 64)
}

// removeIfEmpty deletes dest when ffmpeg exited cleanly but wrote
// nothing usable.
func removeIfEmpty(dest string) error {
	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("conversion produced no output: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(dest)
		return fmt.Errorf("conversion produced an empty file")
	}
	return nil
}

// removeIfEmptyOrNew clears a zero-byte file a failed ffmpeg run may
// have left behind.
func removeIfEmptyOrNew(dest string) {
	if info, err := os.Stat(dest); err == nil && info.Size() == 0 {
		os.Remove(dest)
	}
}
