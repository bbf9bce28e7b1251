package motion

import "bytes"

var (
	eoiMarker = []byte{0xFF, 0xD9}
	ftypTag   = []byte("ftyp")
)

// FindVideo locates the embedded video range in a Motion Photo buffer.
// The candidate offset is the byte after the JPEG EOI marker; an XMP
// MicroVideoOffset declaration overrides it when the declared offset
// independently validates. A candidate that does not start with an ftyp
// box is corrected by a bounded forward scan for the signature. Every
// ambiguity that was resolved is reported as an anomaly. Fails with
// ErrorNotMotionPhoto when no usable ftyp box exists.
func FindVideo(data []byte) (VideoRange, []Anomaly, error) {
	var anomalies []Anomaly

	candidate := int64(-1)
	w := NewSegmentWalker(data)
	for w.Next() {
		if seg := w.Segment(); seg.Kind == SegmentEndOfImage {
			candidate = seg.Offset + 2
			break
		}
	}
	if candidate < 0 {
		// The walk failed or ran out before EOI; fall back to a raw
		// marker scan so a damaged segment stream does not hide an
		// otherwise intact video.
		if idx := bytes.LastIndex(data, eoiMarker); idx >= 0 {
			candidate = int64(idx) + 2
			anomalies = append(anomalies, AnomalyRawEOIFallback)
		}
	}
	if candidate < 0 {
		return VideoRange{}, anomalies, scanErrorf(ErrorNotMotionPhoto, -1, "no JPEG end-of-image marker found")
	}

	if declared, ok := microVideoOffset(data); ok {
		// GCamera convention: MicroVideoOffset counts bytes from the
		// end of the file.
		xmpCandidate := int64(len(data)) - declared
		if validFtypAt(data, xmpCandidate) {
			if xmpCandidate != candidate {
				anomalies = append(anomalies, AnomalyXMPOffsetUsed)
			}
			candidate = xmpCandidate
		} else {
			anomalies = append(anomalies, AnomalyXMPOffsetInvalid)
		}
	}

	if !validFtypAt(data, candidate) {
		idx := bytes.Index(data[candidate:], ftypTag)
		if idx < 0 {
			return VideoRange{}, anomalies, scanErrorf(ErrorNotMotionPhoto, candidate, "no ftyp signature after offset %d", candidate)
		}
		corrected := candidate + int64(idx) - 4
		if corrected < 0 {
			return VideoRange{}, anomalies, scanErrorf(ErrorNotMotionPhoto, candidate, "ftyp signature too close to buffer start for a size field")
		}
		candidate = corrected
		anomalies = append(anomalies, AnomalyOffsetRescanned)
	}

	return VideoRange{
		Offset: candidate,
		Length: int64(len(data)) - candidate,
		Valid:  true,
	}, anomalies, nil
}

// validFtypAt reports whether an 8-byte box header starting at offset
// carries the ftyp type tag.
func validFtypAt(data []byte, offset int64) bool {
	if offset < 0 || offset+8 > int64(len(data)) {
		return false
	}
	return bytes.Equal(data[offset+4:offset+8], ftypTag)
}
