package convert

import "fmt"

// Quality selects a GIF rendering preset trading file size for fidelity.
type Quality string

const (
	QualityTiny   Quality = "tiny"
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

type preset struct {
	MaxColors     int
	Dither        string
	FPSMultiplier float64
}

var presets = map[Quality]preset{
	QualityTiny:   {MaxColors: 32, Dither: "bayer:bayer_scale=2", FPSMultiplier: 0.4},
	QualityLow:    {MaxColors: 64, Dither: "bayer:bayer_scale=1", FPSMultiplier: 0.5},
	QualityMedium: {MaxColors: 128, Dither: "floyd_steinberg", FPSMultiplier: 0.75},
	QualityHigh:   {MaxColors: 256, Dither: "floyd_steinberg", FPSMultiplier: 1.0},
}

// QualityNames lists the preset names in ascending fidelity order.
func QualityNames() []string {
	return []string{
		string(QualityTiny),
		string(QualityLow),
		string(QualityMedium),
		string(QualityHigh),
	}
}

// ParseQuality validates a preset name.
func ParseQuality(name string) (Quality, error) {
	q := Quality(name)
	if _, ok := presets[q]; !ok {
		return "", fmt.Errorf("unknown quality %q, expected one of %v", name, QualityNames())
	}
	return q, nil
}
