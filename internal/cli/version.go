package cli

import (
	"fmt"
	"io"

	"github.com/mlapaglia/MotionMiner/internal/motion"
)

var appVersion = "dev"

func SetVersion(version string) {
	if version != "" {
		appVersion = version
	}
}

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "motionminer, %s\n", motion.FormatVersion(appVersion))
}
