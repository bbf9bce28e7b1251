// Package motionminer exposes the Motion Photo engine for library use.
package motionminer

import (
	"github.com/mlapaglia/MotionMiner/internal/motion"
)

// Types
type Segment = motion.Segment
type SegmentKind = motion.SegmentKind
type SegmentWalker = motion.SegmentWalker
type Box = motion.Box
type VideoRange = motion.VideoRange
type Anomaly = motion.Anomaly
type StructureReport = motion.StructureReport
type ScanError = motion.ScanError
type ErrorKind = motion.ErrorKind

// Constants
const (
	SegmentStartOfImage = motion.SegmentStartOfImage
	SegmentEndOfImage   = motion.SegmentEndOfImage
	SegmentEXIF         = motion.SegmentEXIF
	SegmentXMP          = motion.SegmentXMP
	SegmentAppData      = motion.SegmentAppData
	SegmentStartOfScan  = motion.SegmentStartOfScan

	ErrorNotMotionPhoto      = motion.ErrorNotMotionPhoto
	ErrorInvalidBoxStructure = motion.ErrorInvalidBoxStructure
	ErrorTruncatedVideo      = motion.ErrorTruncatedVideo
	ErrorMalformedNesting    = motion.ErrorMalformedNesting
	ErrorIOFailure           = motion.ErrorIOFailure
)

// Walking
func NewSegmentWalker(data []byte) SegmentWalker {
	return motion.NewSegmentWalker(data)
}

func WalkSegments(data []byte) ([]Segment, error) {
	return motion.WalkSegments(data)
}

func WalkBoxes(data []byte, start, end int64) ([]Box, error) {
	return motion.WalkBoxes(data, start, end)
}

// Scanning and extraction
func FindVideo(data []byte) (VideoRange, []Anomaly, error) {
	return motion.FindVideo(data)
}

func Extract(data []byte) (VideoRange, []Anomaly, error) {
	return motion.Extract(data)
}

func ExtractFile(srcPath, destPath string) (VideoRange, []Anomaly, error) {
	return motion.ExtractFile(srcPath, destPath)
}

func ExtractPhotoFile(srcPath, destPath string) (VideoRange, []Anomaly, error) {
	return motion.ExtractPhotoFile(srcPath, destPath)
}

// Analysis
func Analyze(data []byte) StructureReport {
	return motion.Analyze(data)
}

func AnalyzeFile(path string) (StructureReport, error) {
	return motion.AnalyzeFile(path)
}

func KindOf(err error) ErrorKind {
	return motion.KindOf(err)
}

// Rendering
func RenderText(report StructureReport) string {
	return motion.RenderText(report)
}

func RenderJSON(report StructureReport) string {
	return motion.RenderJSON(report)
}
