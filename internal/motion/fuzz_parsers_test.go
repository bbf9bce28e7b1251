package motion

import "testing"

const fuzzParserMaxBytes = 1 << 20 // 1 MiB

func fuzzLimit(data []byte) []byte {
	if len(data) > fuzzParserMaxBytes {
		return data[:fuzzParserMaxBytes]
	}
	return data
}

func FuzzWalkSegments(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0xFF, 0xD8, 0xFF, 0xD9})
	f.Add(makeJPEG())
	f.Add(makeJPEG(makeXMPPayload(`<x GCamera:MicroVideoOffset="10"/>`)))

	f.Fuzz(func(t *testing.T, data []byte) {
		data = fuzzLimit(data)
		segments, _ := WalkSegments(data)
		for _, seg := range segments {
			if seg.Offset < 0 || seg.End() > int64(len(data)) {
				t.Fatalf("segment %+v outside buffer of %d bytes", seg, len(data))
			}
		}
	})
}

func FuzzWalkBoxes(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00, 0x00, 0x08, 'f', 't', 'y', 'p'})
	f.Add(makeMP4())

	f.Fuzz(func(t *testing.T, data []byte) {
		data = fuzzLimit(data)
		boxes, _ := WalkBoxes(data, 0, int64(len(data)))
		for _, box := range boxes {
			if box.Offset < 0 || box.Offset+box.Size > int64(len(data)) {
				t.Fatalf("box %+v outside buffer of %d bytes", box, len(data))
			}
		}
	})
}

func FuzzFindVideoAndAnalyze(f *testing.F) {
	f.Add([]byte{})
	f.Add(makeJPEG())
	f.Add(makeMotionPhoto(makeJPEG(), makeMP4()))

	f.Fuzz(func(t *testing.T, data []byte) {
		data = fuzzLimit(data)
		if video, _, err := FindVideo(data); err == nil {
			if video.Offset < 0 || video.Offset+video.Length > int64(len(data)) {
				t.Fatalf("video range %+v outside buffer of %d bytes", video, len(data))
			}
		}
		report := Analyze(data)
		if report.FileSize != int64(len(data)) {
			t.Fatalf("file size=%d, want %d", report.FileSize, len(data))
		}
	})
}
