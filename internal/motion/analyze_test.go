package motion

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestAnalyzeMotionPhoto(t *testing.T) {
	mp4 := makeMP4()
	xmp := makeXMPPayload(`<Container GCamera:MicroVideo="1"/>`)
	jpeg := makeJPEG(makeEXIFPayload("Go1\x00"), xmp)
	data := makeMotionPhoto(jpeg, mp4)

	report := Analyze(data)

	if report.FileSize != int64(len(data)) {
		t.Errorf("file size=%d, want %d", report.FileSize, len(data))
	}
	if !report.Video.Valid || report.Video.Offset != int64(len(jpeg)) {
		t.Errorf("video=%+v, want valid at offset %d", report.Video, len(jpeg))
	}
	if len(report.Segments) == 0 {
		t.Error("no segments reported")
	}
	if len(report.Boxes) != 3 {
		t.Errorf("boxes=%d, want 3", len(report.Boxes))
	}
	if !report.HasMotionPhotoMarkers() {
		t.Error("vendor markers not detected")
	}
	if len(report.Markers["GCamera"]) == 0 {
		t.Error("GCamera marker positions missing")
	}
	if len(report.Markers["ftyp"]) == 0 || len(report.Markers["EOI"]) == 0 {
		t.Error("signature occurrence positions missing")
	}
	if report.Exif["Make"] == "" {
		t.Error("EXIF Make missing")
	}
}

func TestAnalyzePlainJPEGDegrades(t *testing.T) {
	report := Analyze(makeJPEG())

	if report.Video.Valid {
		t.Error("video reported for a plain JPEG")
	}
	if len(report.Boxes) != 0 {
		t.Errorf("boxes=%d, want none", len(report.Boxes))
	}
	if len(report.Segments) == 0 {
		t.Error("segments should still be reported")
	}
	if report.HasMotionPhotoMarkers() {
		t.Error("vendor markers reported for a plain JPEG")
	}
}

func TestAnalyzeNeverFailsOnGarbage(t *testing.T) {
	inputs := [][]byte{
		nil,
		{0xFF},
		bytes.Repeat([]byte{0x00}, 200),
		bytes.Repeat([]byte{0xFF}, 200),
		[]byte("not a jpeg at all"),
	}
	for _, data := range inputs {
		report := Analyze(data)
		if report.FileSize != int64(len(data)) {
			t.Errorf("file size=%d, want %d", report.FileSize, len(data))
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	data := makeMotionPhoto(makeJPEG(), makeMP4())
	first := Analyze(data)
	second := Analyze(data)

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("repeated analysis produced different reports")
	}
}

func TestAnalyzeFlagsMultipleEOI(t *testing.T) {
	var buf bytes.Buffer
	writeStandalone(&buf, markerSOI)
	writeStandalone(&buf, markerEOI)
	writeStandalone(&buf, markerSOI)
	writeStandalone(&buf, markerEOI)

	report := Analyze(buf.Bytes())
	if !hasAnomaly(report.Anomalies, AnomalyMultipleEOI) {
		t.Fatalf("anomalies=%v, want multiple EOI flagged", report.Anomalies)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	_, err := AnalyzeFile("/nonexistent/photo.jpg")
	if KindOf(err) != ErrorIOFailure {
		t.Fatalf("err=%v, want IO failure", err)
	}
}

func TestRenderTextReport(t *testing.T) {
	data := makeMotionPhoto(makeJPEG(), makeMP4())
	report := Analyze(data)
	report.FilePath = "photo.jpg"

	out := RenderText(report)
	for _, want := range []string{"General", "photo.jpg", "JPEG segments", "MP4 boxes", "ftyp", "ReportBy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderJSONReport(t *testing.T) {
	data := makeMotionPhoto(makeJPEG(), makeMP4())
	report := Analyze(data)
	report.FilePath = "photo.jpg"

	out := RenderJSON(report)
	var decoded struct {
		CreatingLibrary struct {
			Name string `json:"name"`
		} `json:"creatingLibrary"`
		Report StructureReport `json:"report"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.CreatingLibrary.Name != AppName {
		t.Errorf("library name=%q, want %q", decoded.CreatingLibrary.Name, AppName)
	}
	if decoded.Report.FilePath != "photo.jpg" {
		t.Errorf("file path=%q, want photo.jpg", decoded.Report.FilePath)
	}
	if !decoded.Report.Video.Valid {
		t.Error("video range lost in JSON round trip")
	}
}
