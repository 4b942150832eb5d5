package codec

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/wsi-go/slide"
)

// associatedImage backs a registry entry with a JPEG stream at a byte
// offset. The stream is only decoded when GetPixels is invoked.
type associatedImage struct {
	filename string
	offset   int64
	width    int32
	height   int32
}

func (img *associatedImage) GetPixels(dest []uint32) error {
	log.Debugf("read JPEG associated image: %s %d", img.filename, img.offset)
	return Read(img.filename, img.offset, dest, img.width, img.height)
}

func (img *associatedImage) Release() {
	// nothing owned beyond the descriptor strings, which the collector
	// handles once the registry drops the entry
}

// AddAssociatedImage probes the JPEG stream at offset within filename and
// registers it under name. The probe runs eagerly so a broken source fails
// registration here rather than at first materialisation; decoding itself
// is deferred until the entry's pixels are requested.
func AddAssociatedImage(reg *slide.Registry, name string, filename string, offset int64) error {
	w, h, err := ReadDimensions(filename, offset)
	if err != nil {
		return fmt.Errorf("can't read %s associated image: %w", name, err)
	}

	reg.Register(name, w, h, &associatedImage{
		filename: filename,
		offset:   offset,
		width:    w,
		height:   h,
	})
	return nil
}
