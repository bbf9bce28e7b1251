package motion

import "strings"

const (
	AppName = "motionminer"
	AppURL  = "https://github.com/mlapaglia/MotionMiner"
)

var AppVersion = "dev"

func SetAppVersion(version string) {
	if version != "" {
		AppVersion = version
	}
}

// FormatVersion normalizes a version string for display, prefixing a
// "v" to release numbers while leaving pseudo-versions like "dev"
// alone.
func FormatVersion(version string) string {
	if version == "" {
		return "dev"
	}
	if version == "dev" || strings.HasPrefix(version, "v") {
		return version
	}
	if version[0] >= '0' && version[0] <= '9' {
		return "v" + version
	}
	return version
}
