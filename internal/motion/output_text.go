package motion

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

const fieldWidth = 24

// RenderText renders a structure report in a padded name/value layout,
// one section per structural layer.
func RenderText(report StructureReport) string {
	var buf bytes.Buffer

	buf.WriteString("General\n")
	if report.FilePath != "" {
		writeField(&buf, "File", report.FilePath)
	}
	writeField(&buf, "Size", fmt.Sprintf("%d bytes", report.FileSize))
	writeField(&buf, "Motion photo markers", yesNo(report.HasMotionPhotoMarkers()))
	if report.Video.Valid {
		writeField(&buf, "Video offset", fmt.Sprintf("%d", report.Video.Offset))
		writeField(&buf, "Video length", fmt.Sprintf("%d bytes", report.Video.Length))
	} else {
		writeField(&buf, "Video", "not found")
	}

	if len(report.Segments) > 0 {
		buf.WriteString("\nJPEG segments\n")
		for _, seg := range report.Segments {
			name := fmt.Sprintf("%s (0xFF%02X)", seg.Kind, seg.Marker&0xFF)
			writeField(&buf, name, fmt.Sprintf("offset %d, length %d", seg.Offset, seg.Length))
		}
	}

	if len(report.Boxes) > 0 {
		buf.WriteString("\nMP4 boxes\n")
		writeBoxes(&buf, report.Boxes, 0)
	}

	if len(report.Markers) > 0 {
		buf.WriteString("\nVendor markers\n")
		names := make([]string, 0, len(report.Markers))
		for name := range report.Markers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			writeField(&buf, name, formatPositions(report.Markers[name]))
		}
	}

	if len(report.Exif) > 0 {
		buf.WriteString("\nEXIF\n")
		names := make([]string, 0, len(report.Exif))
		for name := range report.Exif {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			writeField(&buf, name, report.Exif[name])
		}
	}

	if len(report.Anomalies) > 0 {
		buf.WriteString("\nAnomalies\n")
		for _, anomaly := range report.Anomalies {
			buf.WriteString("  ")
			buf.WriteString(string(anomaly))
			buf.WriteString("\n")
		}
	}

	buf.WriteString("\n")
	buf.WriteString(reportByLine())
	buf.WriteString("\n")
	return buf.String()
}

func reportByLine() string {
	return fmt.Sprintf("ReportBy : %s - %s", AppName, FormatVersion(AppVersion))
}

func writeField(buf *bytes.Buffer, name, value string) {
	buf.WriteString(padRight(name, fieldWidth))
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\n")
}

func writeBoxes(buf *bytes.Buffer, boxes []Box, depth int) {
	for _, box := range boxes {
		name := strings.Repeat("  ", depth) + box.Type
		writeField(buf, name, fmt.Sprintf("offset %d, size %d", box.Offset, box.Size))
		writeBoxes(buf, box.Children, depth+1)
	}
}

func formatPositions(positions []int64) string {
	parts := make([]string, 0, len(positions))
	for _, pos := range positions {
		parts = append(parts, fmt.Sprintf("%d", pos))
	}
	return strings.Join(parts, ", ")
}

func padRight(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
