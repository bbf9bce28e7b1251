package motion

import (
	"bytes"
	"encoding/binary"
)

// writeBox appends an MP4 box with a 32-bit size header.
func writeBox(buf *bytes.Buffer, boxType string, payload []byte) {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(8+len(payload)))
	buf.Write(size[:])
	buf.WriteString(boxType)
	buf.Write(payload)
}

// writeSegment appends a length-bearing JPEG segment.
func writeSegment(buf *bytes.Buffer, marker byte, payload []byte) {
	buf.WriteByte(0xFF)
	buf.WriteByte(marker)
	var length [2]byte
	binary.BigEndian.PutUint16(length[:], uint16(2+len(payload)))
	buf.Write(length[:])
	buf.Write(payload)
}

func writeStandalone(buf *bytes.Buffer, marker byte) {
	buf.WriteByte(0xFF)
	buf.WriteByte(marker)
}

// makeXMPPayload wraps packet body text in the APP1 XMP namespace header.
func makeXMPPayload(body string) []byte {
	var buf bytes.Buffer
	buf.Write(xmpSignature)
	buf.WriteString(body)
	return buf.Bytes()
}

// makeEXIFPayload builds a minimal little-endian TIFF with a single
// IFD0 Make entry, wrapped in the APP1 EXIF header.
func makeEXIFPayload(make4 string) []byte {
	var tiff bytes.Buffer
	tiff.WriteString("II")
	tiff.Write([]byte{0x2A, 0x00})
	tiff.Write([]byte{0x08, 0x00, 0x00, 0x00}) // IFD0 offset
	tiff.Write([]byte{0x01, 0x00})             // one entry
	tiff.Write([]byte{0x0F, 0x01})             // Make
	tiff.Write([]byte{0x02, 0x00})             // ASCII
	tiff.Write([]byte{0x04, 0x00, 0x00, 0x00}) // count 4, value inline
	tiff.WriteString(make4)
	tiff.Write([]byte{0x00, 0x00, 0x00, 0x00}) // no next IFD

	var buf bytes.Buffer
	buf.Write(exifSignature)
	buf.Write(tiff.Bytes())
	return buf.Bytes()
}

// makeJPEG assembles SOI, the given APP segments, a tiny scan, and EOI.
func makeJPEG(appPayloads ...[]byte) []byte {
	var buf bytes.Buffer
	writeStandalone(&buf, markerSOI)
	for _, payload := range appPayloads {
		writeSegment(&buf, markerAPP1, payload)
	}
	writeSegment(&buf, markerSOS, []byte{0x01, 0x00})
	buf.Write([]byte{0x12, 0x34, 0xFF, 0x00, 0x56}) // entropy data with stuffing
	writeStandalone(&buf, markerEOI)
	return buf.Bytes()
}

// makeMP4 builds a small valid video: ftyp, a nested moov, and mdat.
func makeMP4() []byte {
	var trak bytes.Buffer
	writeBox(&trak, "tkhd", bytes.Repeat([]byte{0x00}, 12))

	var moov bytes.Buffer
	writeBox(&moov, "mvhd", bytes.Repeat([]byte{0x00}, 16))
	writeBox(&moov, "trak", trak.Bytes())

	var buf bytes.Buffer
	writeBox(&buf, "ftyp", []byte("isom\x00\x00\x00\x01mp42"))
	writeBox(&buf, "moov", moov.Bytes())
	writeBox(&buf, "mdat", []byte{0xDE, 0xAD, 0xBE, 0xEF})
	return buf.Bytes()
}

func makeMotionPhoto(jpeg, video []byte) []byte {
	return append(append([]byte{}, jpeg...), video...)
}
