package motion

import (
	"bytes"
	"strconv"
)

// motionPhotoMarkers are the vendor strings whose presence identifies a
// Google Motion Photo container.
var motionPhotoMarkers = []string{"GCamera", "Google", "MicroVideo"}

var microVideoOffsetAttr = []byte("MicroVideoOffset")

// microVideoOffset extracts the GCamera:MicroVideoOffset value from the
// XMP metadata embedded in data. The value counts bytes from the end of
// the file. Returns false when the attribute is absent or unparseable.
func microVideoOffset(data []byte) (int64, bool) {
	pos := 0
	for {
		idx := bytes.Index(data[pos:], microVideoOffsetAttr)
		if idx < 0 {
			return 0, false
		}
		pos += idx + len(microVideoOffsetAttr)
		if v, ok := parseOffsetValue(data[pos:]); ok {
			return v, true
		}
	}
}

// parseOffsetValue reads the attribute value following the name,
// tolerating both the attribute form (="123") and the element form
// (>123<). Whitespace around the separators is accepted.
func parseOffsetValue(data []byte) (int64, bool) {
	i := 0
	for i < len(data) && isXMPSpace(data[i]) {
		i++
	}
	if i >= len(data) {
		return 0, false
	}
	switch data[i] {
	case '=':
		i++
		for i < len(data) && isXMPSpace(data[i]) {
			i++
		}
		if i >= len(data) || (data[i] != '"' && data[i] != '\'') {
			return 0, false
		}
		quote := data[i]
		i++
		end := bytes.IndexByte(data[i:], quote)
		if end < 0 {
			return 0, false
		}
		return parseOffsetDigits(data[i : i+end])
	case '>':
		i++
		end := bytes.IndexByte(data[i:], '<')
		if end < 0 {
			return 0, false
		}
		return parseOffsetDigits(data[i : i+end])
	}
	return 0, false
}

func parseOffsetDigits(raw []byte) (int64, bool) {
	s := string(bytes.TrimSpace(raw))
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func isXMPSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// markerPositions returns every occurrence of marker in data, including
// overlapping ones.
func markerPositions(data []byte, marker string) []int64 {
	var positions []int64
	needle := []byte(marker)
	if len(needle) == 0 {
		return nil
	}
	pos := 0
	for {
		idx := bytes.Index(data[pos:], needle)
		if idx < 0 {
			return positions
		}
		positions = append(positions, int64(pos+idx))
		pos += idx + 1
	}
}
