package cli

import (
	"fmt"
	"io"
)

func Help(program string, stdout io.Writer) {
	Version(stdout)
	fmt.Fprintf(stdout, "Usage: \"%s [options] <photo.jpg | directory>\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Options:")
	fmt.Fprintln(stdout, "--help, -h")
	fmt.Fprintln(stdout, "                    Display this help and exit")
	fmt.Fprintln(stdout, "-o, --output DIR")
	fmt.Fprintln(stdout, "                    Write extracted files to DIR (default: next to the input)")
	fmt.Fprintln(stdout, "--mp4")
	fmt.Fprintln(stdout, "                    Keep the extracted MP4 (default)")
	fmt.Fprintln(stdout, "--gif")
	fmt.Fprintln(stdout, "                    Convert the video to an animated GIF")
	fmt.Fprintln(stdout, "--both")
	fmt.Fprintln(stdout, "                    Keep the MP4 and render a GIF")
	fmt.Fprintln(stdout, "--gif-tiny | --gif-low | --gif-medium | --gif-high")
	fmt.Fprintln(stdout, "                    GIF quality preset, implies --gif (default: medium)")
	fmt.Fprintln(stdout, "--gif-width=N")
	fmt.Fprintln(stdout, "                    GIF width in pixels, height keeps aspect (default: 480)")
	fmt.Fprintln(stdout, "--gif-no-loop")
	fmt.Fprintln(stdout, "                    Render a GIF that plays once")
	fmt.Fprintln(stdout, "--photo")
	fmt.Fprintln(stdout, "                    Also write the still photo without the appended video")
	fmt.Fprintln(stdout, "--batch")
	fmt.Fprintln(stdout, "                    Process every JPEG in the input directory")
	fmt.Fprintln(stdout, "--batch-output=DIR")
	fmt.Fprintln(stdout, "                    Batch mode writing results to DIR")
	fmt.Fprintln(stdout, "--analyze")
	fmt.Fprintln(stdout, "                    Print the container structure instead of extracting")
	fmt.Fprintln(stdout, "--json")
	fmt.Fprintln(stdout, "                    Render --analyze output as JSON")
	fmt.Fprintln(stdout, "--config=FILE")
	fmt.Fprintln(stdout, "                    Load settings from a YAML file (place it before other flags)")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "version              Print motionminer version information")
	fmt.Fprintln(stdout, "update               Update motionminer to latest version (release builds only)")
}

func HelpNothing(program string, stdout io.Writer) {
	fmt.Fprintf(stdout, "Usage: \"%s [options] <photo.jpg | directory>\"\n", program)
	fmt.Fprintf(stdout, "\"%s --help\" for displaying more information\n", program)
}

func Usage(program string, stdout io.Writer) int {
	HelpNothing(program, stdout)
	return exitError
}
