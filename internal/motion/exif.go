package motion

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

type exifCollector struct {
	fields map[string]string
}

func (c *exifCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.fields[string(name)] = tag.String()
	return nil
}

// decodeEXIF reads the EXIF block of a JPEG buffer into a flat
// name/value map. Decode failures are treated as "no EXIF": many Motion
// Photos in the wild carry truncated or vendor-mangled TIFF directories
// and the surrounding analysis must not fail because of them.
func decodeEXIF(data []byte) map[string]string {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	c := &exifCollector{fields: make(map[string]string)}
	if err := x.Walk(c); err != nil {
		return nil
	}
	if len(c.fields) == 0 {
		return nil
	}
	return c.fields
}
