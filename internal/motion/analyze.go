package motion

import (
	"bytes"
	"os"
)

// Analyze performs a best-effort structural scan of a Motion Photo
// buffer. It never fails: parse errors in one layer degrade that layer
// to partial results and the remaining layers still run, so damaged
// files can be inspected.
func Analyze(data []byte) StructureReport {
	report := StructureReport{
		FileSize: int64(len(data)),
		Markers:  map[string][]int64{},
	}

	// Segment walk keeps whatever it managed to parse before an error.
	report.Segments, _ = WalkSegments(data)

	video, anomalies, err := FindVideo(data)
	report.Anomalies = anomalies
	if err == nil {
		report.Video = video
		report.Boxes, _ = WalkBoxes(data, video.Offset, video.Offset+video.Length)
	}

	jpegEnd := int64(len(data))
	if report.Video.Valid {
		jpegEnd = report.Video.Offset
	}
	if bytes.Count(data[:jpegEnd], eoiMarker) > 1 {
		report.Anomalies = append(report.Anomalies, AnomalyMultipleEOI)
	}

	for _, name := range motionPhotoMarkers {
		if positions := markerPositions(data, name); len(positions) > 0 {
			report.Markers[name] = positions
		}
	}
	if positions := markerPositions(data, string(eoiMarker)); len(positions) > 0 {
		report.Markers["EOI"] = positions
	}
	if positions := markerPositions(data, string(ftypTag)); len(positions) > 0 {
		report.Markers["ftyp"] = positions
	}
	report.Exif = decodeEXIF(data)

	return report
}

// AnalyzeFile reads path and analyzes its contents.
func AnalyzeFile(path string) (StructureReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StructureReport{}, ioError("reading "+path, err)
	}
	report := Analyze(data)
	report.FilePath = path
	return report, nil
}
