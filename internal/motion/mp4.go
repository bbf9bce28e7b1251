package motion

import "encoding/binary"

// boxDepthLimit bounds recursion into container boxes. Real Motion
// Photo videos nest five levels (moov/trak/mdia/minf/stbl); anything
// deeper than eight signals a cyclic or pathological size field.
const boxDepthLimit = 8

var containerBoxTypes = map[string]bool{
	"moov": true,
	"trak": true,
	"mdia": true,
	"minf": true,
	"stbl": true,
	"udta": true,
}

// WalkBoxes walks the MP4 box sequence in data over [start, end),
// recursing into known container types. Boxes parsed before a failure
// are returned alongside the error so diagnostics can show partial
// structure.
func WalkBoxes(data []byte, start, end int64) ([]Box, error) {
	if start < 0 || end > int64(len(data)) || start > end {
		return nil, scanErrorf(ErrorTruncatedVideo, start, "box range [%d, %d) outside buffer of %d bytes", start, end, len(data))
	}
	return walkBoxes(data, start, end, 0)
}

func walkBoxes(data []byte, start, end int64, depth int) ([]Box, error) {
	var boxes []Box
	offset := start
	for offset < end {
		if offset+8 > end {
			return boxes, scanErrorf(ErrorTruncatedVideo, offset, "box header needs 8 bytes, %d remain", end-offset)
		}
		size := int64(binary.BigEndian.Uint32(data[offset : offset+4]))
		typ := string(data[offset+4 : offset+8])
		if !printableBoxType(typ) {
			return boxes, scanErrorf(ErrorInvalidBoxStructure, offset, "box type %q is not printable ASCII", typ)
		}

		headerSize := int64(8)
		switch size {
		case 0:
			// Reserved: box extends to the end of the range.
			size = end - offset
		case 1:
			if offset+16 > end {
				return boxes, scanErrorf(ErrorTruncatedVideo, offset, "box %q extended size field past end", typ)
			}
			size = int64(binary.BigEndian.Uint64(data[offset+8 : offset+16]))
			headerSize = 16
		}
		if size < headerSize {
			return boxes, scanErrorf(ErrorTruncatedVideo, offset, "box %q declares size %d below header size", typ, size)
		}
		if size > end-offset {
			return boxes, scanErrorf(ErrorTruncatedVideo, offset, "box %q declares size %d, %d bytes remain", typ, size, end-offset)
		}

		box := Box{Type: typ, Offset: offset, Size: size}
		if containerBoxTypes[typ] {
			if depth+1 >= boxDepthLimit {
				return boxes, scanErrorf(ErrorMalformedNesting, offset, "container box %q exceeds depth limit %d", typ, boxDepthLimit)
			}
			children, err := walkBoxes(data, offset+headerSize, offset+size, depth+1)
			box.Children = children
			if err != nil {
				boxes = append(boxes, box)
				return boxes, err
			}
		}
		boxes = append(boxes, box)
		offset += size
	}
	return boxes, nil
}

func printableBoxType(typ string) bool {
	for i := 0; i < len(typ); i++ {
		if typ[i] < 0x20 || typ[i] > 0x7E {
			return false
		}
	}
	return true
}
