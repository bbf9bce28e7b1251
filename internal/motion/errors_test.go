package motion

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestScanErrorKinds(t *testing.T) {
	err := scanErrorf(ErrorTruncatedVideo, 42, "box %q too short", "mdat")
	if KindOf(err) != ErrorTruncatedVideo {
		t.Fatalf("kind=%v, want truncated video", KindOf(err))
	}

	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatal("errors.As failed")
	}
	if scanErr.Offset != 42 {
		t.Errorf("offset=%d, want 42", scanErr.Offset)
	}
}

func TestScanErrorWrapsCause(t *testing.T) {
	err := ioError("reading photo.jpg", os.ErrNotExist)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if KindOf(err) != ErrorIOFailure {
		t.Fatalf("kind=%v, want IO failure", KindOf(err))
	}
}

func TestKindOfForeignError(t *testing.T) {
	if KindOf(fmt.Errorf("plain")) != ErrorUnknown {
		t.Fatal("foreign error should map to unknown")
	}
	if KindOf(nil) != ErrorUnknown {
		t.Fatal("nil error should map to unknown")
	}
}

func TestErrorKindStrings(t *testing.T) {
	cases := map[ErrorKind]string{
		ErrorNotMotionPhoto:      "not_motion_photo",
		ErrorInvalidBoxStructure: "invalid_box_structure",
		ErrorTruncatedVideo:      "truncated_video",
		ErrorMalformedNesting:    "malformed_nesting",
		ErrorIOFailure:           "io_failure",
		ErrorUnknown:             "unknown",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("%d.String()=%q, want %q", kind, kind.String(), want)
		}
	}
}
