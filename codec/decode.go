package codec

import (
	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/wsi-go/util"
	"github.com/kpfaulkner/wsi-go/wsiio"
)

// Read decodes the baseline JPEG at offset within filename into dest as
// packed 0xAARRGGBB pixels with the alpha byte forced fully opaque. dest
// must be sized by the caller for w*h pixels; the decode fails before any
// write if the stream's real dimensions disagree.
func Read(filename string, offset int64, dest []uint32, w int32, h int32) error {
	log.Debugf("read JPEG: %s %d", filename, offset)
	return DecodeRGB(wsiio.NewFileSource(filename, offset), dest, w, h)
}

// DecodeBuffer is Read for an in-memory stream.
func DecodeBuffer(buf []byte, dest []uint32, w int32, h int32) error {
	log.Debugf("decode JPEG buffer: %d bytes", len(buf))
	return DecodeRGB(wsiio.NewMemSource(buf), dest, w, h)
}

// DecodeBufferGray decodes an in-memory stream into dest as one 8-bit
// sample per pixel, using the engine's standard luma conversion for colour
// streams.
func DecodeBufferGray(buf []byte, dest []uint8, w int32, h int32) error {
	log.Debugf("decode grayscale JPEG buffer: %d bytes", len(buf))
	return DecodeGray(wsiio.NewMemSource(buf), dest, w, h)
}

// DecodeRGB decodes src into a caller-sized packed-RGB destination.
func DecodeRGB(src wsiio.Source, dest []uint32, w int32, h int32) error {
	return decode(src, dest, nil, false, w, h)
}

// DecodeGray decodes src into a caller-sized grayscale destination.
func DecodeGray(src wsiio.Source, dest []uint8, w int32, h int32) error {
	return decode(src, nil, dest, true, w, h)
}

func decode(src wsiio.Source, destRGB []uint32, destGray []uint8,
	grayscale bool, w int32, h int32) error {

	// callers size destinations from previously-known dimensions; a short
	// buffer is caught here, a wrong-sized stream by the dimension check
	// below.
	need := int(w) * int(h)
	if grayscale {
		if len(destGray) < need {
			return newFormatError("destination holds %d pixels, %s needs %d",
				len(destGray), Dimensions{w, h}, need)
		}
	} else {
		if len(destRGB) < need {
			return newFormatError("destination holds %d pixels, %s needs %d",
				len(destRGB), Dimensions{w, h}, need)
		}
	}

	r, err := src.Open()
	if err != nil {
		return newIOError("%v", err)
	}
	defer r.Close()

	s := newSession()
	defer s.destroy()

	return s.run(func() error {
		s.begin(r)

		if err := s.eng.readHeader(); err != nil {
			return err
		}
		if s.eng.header().tablesOnly {
			return newFormatError("stream contains only tables, no image")
		}

		s.eng.startDecompress(grayscale)

		// ensure buffer dimensions are correct
		width, height := s.eng.outputDimensions()
		if width != w || height != h {
			return newDimensionMismatchError(
				Dimensions{Width: w, Height: h},
				Dimensions{Width: width, Height: height})
		}

		batch := s.eng.recOutbufHeight()
		if batch <= 0 {
			return newFormatError("engine recommended scanline batch height %d", batch)
		}

		staging := util.New2DMatrix[uint8](batch, width*s.eng.components())
		rows := staging.Rows()

		var destRow int32
		for s.eng.hasMoreScanlines() {
			read := s.eng.readScanlines(rows)
			for i := int32(0); i < read; i++ {
				row := rows[i]
				if grayscale {
					copy(destGray[destRow*width:(destRow+1)*width], row[:width])
				} else {
					out := destRGB[destRow*width : (destRow+1)*width]
					for x := int32(0); x < width; x++ {
						out[x] = 0xFF000000 | // A
							uint32(row[x*3+0])<<16 | // R
							uint32(row[x*3+1])<<8 | // G
							uint32(row[x*3+2]) // B
					}
				}
				destRow++
			}
		}
		return nil
	})
}
