package motion

// SegmentKind classifies a JPEG segment by its marker and, for the
// application-data markers, by the payload signature.
type SegmentKind int

const (
	SegmentOther SegmentKind = iota
	SegmentStartOfImage
	SegmentEndOfImage
	SegmentEXIF
	SegmentXMP
	SegmentAppData
	SegmentStartOfScan
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentStartOfImage:
		return "SOI"
	case SegmentEndOfImage:
		return "EOI"
	case SegmentEXIF:
		return "APP1/EXIF"
	case SegmentXMP:
		return "APP1/XMP"
	case SegmentAppData:
		return "APPn"
	case SegmentStartOfScan:
		return "SOS"
	default:
		return "Other"
	}
}

// Segment describes one JPEG marker segment. Offset points at the 0xFF
// prefix byte; Length is the declared payload length including the two
// length bytes, or 0 for markers that carry no payload.
type Segment struct {
	Marker uint16      `json:"marker"`
	Offset int64       `json:"offset"`
	Length int64       `json:"length"`
	Kind   SegmentKind `json:"kind"`
}

// End returns the offset of the first byte after the segment.
func (s Segment) End() int64 {
	return s.Offset + 2 + s.Length
}

// Box describes one MP4 box. Size is the total box size including the
// header. Children is populated only for the known container types.
type Box struct {
	Type     string `json:"type"`
	Offset   int64  `json:"offset"`
	Size     int64  `json:"size"`
	Children []Box  `json:"children,omitempty"`
}

// VideoRange is the byte range of the embedded video, running from
// Offset to the end of the buffer.
type VideoRange struct {
	Offset int64 `json:"offset"`
	Length int64 `json:"length"`
	Valid  bool  `json:"valid"`
}

// Anomaly records an oddity observed while scanning. Anomalies never
// stop analysis; the extraction pipeline reports them alongside its
// result so ambiguous offset decisions are always visible.
type Anomaly string

const (
	AnomalyMultipleEOI      Anomaly = "multiple EOI markers found"
	AnomalyXMPOffsetUsed    Anomaly = "XMP declares alternate offset; using it over the EOI-derived offset"
	AnomalyXMPOffsetInvalid Anomaly = "XMP-declared offset failed ftyp validation; using EOI-derived offset"
	AnomalyOffsetRescanned  Anomaly = "video offset corrected by forward ftyp signature scan"
	AnomalyRawEOIFallback   Anomaly = "EOI located by raw marker scan after segment walk failure"
)

// StructureReport is the result of a best-effort structural analysis of
// one buffer. All descriptors are offsets into the analyzed buffer; the
// report holds no copies of file data.
type StructureReport struct {
	FilePath  string             `json:"file_path,omitempty"`
	FileSize  int64              `json:"file_size"`
	Segments  []Segment          `json:"segments"`
	Boxes     []Box              `json:"boxes"`
	Video     VideoRange         `json:"video"`
	Anomalies []Anomaly          `json:"anomalies,omitempty"`
	Markers   map[string][]int64 `json:"markers,omitempty"`
	Exif      map[string]string  `json:"exif,omitempty"`
}

// HasMotionPhotoMarkers reports whether any of the vendor marker
// strings were found in the buffer.
func (r StructureReport) HasMotionPhotoMarkers() bool {
	for _, name := range motionPhotoMarkers {
		if len(r.Markers[name]) > 0 {
			return true
		}
	}
	return false
}
