package motion

import (
	"bytes"
	"encoding/binary"
)

// JPEG marker codes (second byte; the first is always 0xFF).
const (
	markerTEM  = 0x01
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP1 = 0xE1
	markerAPP2 = 0xE2
)

// resyncLimit bounds how many consecutive non-marker bytes the walker
// tolerates where a marker is expected before declaring the stream
// corrupt.
const resyncLimit = 50

var (
	exifSignature = []byte("Exif\x00\x00")
	xmpSignature  = []byte("http://ns.adobe.com/xap/1.0/\x00")
)

// SegmentWalker iterates JPEG marker segments over an in-memory buffer.
// The walk is lazy and restartable; it terminates after the EOI marker
// or at buffer exhaustion. Check Err after Next returns false.
//
//	w := NewSegmentWalker(data)
//	for w.Next() {
//	    seg := w.Segment()
//	    ...
//	}
//	if err := w.Err(); err != nil { ... }
type SegmentWalker struct {
	data []byte
	pos  int64
	seg  Segment
	err  error
	done bool
}

func NewSegmentWalker(data []byte) SegmentWalker {
	return SegmentWalker{data: data}
}

// Reset rewinds the walker to the start of the buffer.
func (w *SegmentWalker) Reset() {
	w.pos = 0
	w.seg = Segment{}
	w.err = nil
	w.done = false
}

// Segment returns the current segment. Only valid after Next returns true.
func (w *SegmentWalker) Segment() Segment {
	return w.seg
}

// Err returns the error that stopped the walk, if any.
func (w *SegmentWalker) Err() error {
	return w.err
}

// Next advances to the next segment. Returns false at EOI, buffer
// exhaustion, or on a structural error.
func (w *SegmentWalker) Next() bool {
	if w.done || w.err != nil {
		return false
	}
	size := int64(len(w.data))

	// Resync to the next 0xFF prefix, bounded by the corrupt-segment guard.
	skipped := 0
	for w.pos < size && w.data[w.pos] != 0xFF {
		w.pos++
		skipped++
		if skipped >= resyncLimit {
			w.err = scanErrorf(ErrorInvalidBoxStructure, w.pos, "no marker within %d bytes", resyncLimit)
			return false
		}
	}
	// Skip 0xFF fill bytes; the marker code is the first non-0xFF byte.
	for w.pos+1 < size && w.data[w.pos+1] == 0xFF {
		w.pos++
	}
	if w.pos+1 >= size {
		w.done = true
		return false
	}

	start := w.pos
	marker := w.data[w.pos+1]

	switch {
	case marker == markerSOI, marker == markerEOI, marker == markerTEM,
		marker >= 0xD0 && marker <= 0xD7: // RSTn
		w.seg = Segment{
			Marker: 0xFF00 | uint16(marker),
			Offset: start,
			Kind:   standaloneKind(marker),
		}
		w.pos = start + 2
		if marker == markerEOI {
			w.done = true
		}
		return true
	}

	if start+4 > size {
		w.err = scanErrorf(ErrorInvalidBoxStructure, start, "marker 0xFF%02X length field past buffer end", marker)
		return false
	}
	length := int64(binary.BigEndian.Uint16(w.data[start+2 : start+4]))
	if length < 2 {
		w.err = scanErrorf(ErrorInvalidBoxStructure, start, "marker 0xFF%02X declares length %d", marker, length)
		return false
	}
	if start+2+length > size {
		w.err = scanErrorf(ErrorInvalidBoxStructure, start, "marker 0xFF%02X payload runs past buffer end", marker)
		return false
	}

	payload := w.data[start+4 : start+2+length]
	w.seg = Segment{
		Marker: 0xFF00 | uint16(marker),
		Offset: start,
		Length: length,
		Kind:   payloadKind(marker, payload),
	}
	w.pos = start + 2 + length

	if marker == markerSOS {
		w.skipEntropyData()
	}
	return true
}

// skipEntropyData advances past entropy-coded scan data to the next real
// marker. 0xFF00 byte stuffing and restart markers belong to the scan
// and are skipped; the walk simply ends if no marker follows.
func (w *SegmentWalker) skipEntropyData() {
	size := int64(len(w.data))
	for w.pos+1 < size {
		if w.data[w.pos] != 0xFF {
			w.pos++
			continue
		}
		next := w.data[w.pos+1]
		if next == 0xFF {
			// Fill byte; the next byte may still be a marker code.
			w.pos++
			continue
		}
		if next == 0x00 || (next >= 0xD0 && next <= 0xD7) {
			w.pos += 2
			continue
		}
		return
	}
	w.pos = size
}

func standaloneKind(marker byte) SegmentKind {
	switch marker {
	case markerSOI:
		return SegmentStartOfImage
	case markerEOI:
		return SegmentEndOfImage
	default:
		return SegmentOther
	}
}

func payloadKind(marker byte, payload []byte) SegmentKind {
	switch marker {
	case markerAPP1:
		if bytes.HasPrefix(payload, exifSignature) {
			return SegmentEXIF
		}
		if bytes.HasPrefix(payload, xmpSignature) {
			return SegmentXMP
		}
		return SegmentAppData
	case markerAPP2:
		return SegmentAppData
	case markerSOS:
		return SegmentStartOfScan
	default:
		return SegmentOther
	}
}

// WalkSegments collects every segment up to EOI or buffer exhaustion.
// Segments walked before a structural error are returned with it.
func WalkSegments(data []byte) ([]Segment, error) {
	var segments []Segment
	w := NewSegmentWalker(data)
	for w.Next() {
		segments = append(segments, w.Segment())
	}
	return segments, w.Err()
}
