package codec

import (
	"image"
	"image/color"
	"image/jpeg"
	"io"
)

// engine wraps the decompression engine (image/jpeg) behind the error
// bridge. Every entry point that can fail signals through the bridge instead
// of returning an error, except readHeader, whose failures are ordinary
// format errors checked by the caller.
//
// The engine hands pixel data out as interleaved 8-bit scanline batches, one
// component per sample in grayscale mode and three (R, G, B) otherwise,
// whatever colour model the compressed stream itself used.
type engine struct {
	bridge *errorBridge
	r      io.ReadSeeker

	hdr       *headerInfo
	img       image.Image
	grayscale bool
	outWidth  int32
	outHeight int32
	nextRow   int32
}

func newEngine(bridge *errorBridge, r io.ReadSeeker) *engine {
	return &engine{bridge: bridge, r: r}
}

// readHeader parses the stream header without decoding any pixel data.
func (e *engine) readHeader() error {
	hdr, err := scanHeader(e.r)
	if err != nil {
		return err
	}
	e.hdr = hdr
	return nil
}

func (e *engine) header() *headerInfo {
	return e.hdr
}

// calcOutputDimensions reports the dimensions a full decode would produce,
// from the header alone.
func (e *engine) calcOutputDimensions() (int32, int32) {
	return e.hdr.width, e.hdr.height
}

// startDecompress runs the engine's full decode in the requested output
// colour mode. Fatal engine conditions escape through the bridge; the
// engine's own message text is captured verbatim.
func (e *engine) startDecompress(grayscale bool) {
	// a tables-only prefix is header material, not image data; the decode
	// starts at the frame-bearing image's SOI recorded by the header scan.
	if _, err := e.r.Seek(e.hdr.imageStart, io.SeekStart); err != nil {
		e.bridge.fatal(newIOError("cannot seek to stream start: %v", err))
	}

	img, err := jpeg.Decode(e.r)
	if err != nil {
		e.bridge.fatalf("%v", err)
	}

	switch img.(type) {
	case *image.YCbCr, *image.Gray:
	default:
		e.bridge.fatalf("unsupported colour model %T", img)
	}

	bounds := img.Bounds()
	width := int32(bounds.Dx())
	height := int32(bounds.Dy())
	if width != e.hdr.width || height != e.hdr.height {
		// the engine recovered from something the header didn't declare;
		// its output can't be trusted.
		e.bridge.warnf("engine produced %dx%d for a header declaring %dx%d",
			width, height, e.hdr.width, e.hdr.height)
	}

	e.img = img
	e.grayscale = grayscale
	e.outWidth = width
	e.outHeight = height
	e.nextRow = 0
}

func (e *engine) outputDimensions() (int32, int32) {
	return e.outWidth, e.outHeight
}

// components is the number of samples per pixel in the output scanlines for
// the mode requested at startDecompress.
func (e *engine) components() int32 {
	if e.grayscale {
		return 1
	}
	return 3
}

// recOutbufHeight is the engine-recommended number of rows per scanline
// read, derived from the stream's vertical subsampling.
func (e *engine) recOutbufHeight() int32 {
	if img, ok := e.img.(*image.YCbCr); ok {
		switch img.SubsampleRatio {
		case image.YCbCrSubsampleRatio420,
			image.YCbCrSubsampleRatio440,
			image.YCbCrSubsampleRatio410:
			return 2
		}
	}
	return 1
}

func (e *engine) hasMoreScanlines() bool {
	return e.nextRow < e.outHeight
}

// readScanlines fills up to len(rows) staging rows with interleaved samples
// and returns the number of rows produced. Each row slice must hold
// outWidth*components() samples.
func (e *engine) readScanlines(rows [][]uint8) int32 {
	var produced int32
	for _, row := range rows {
		if e.nextRow >= e.outHeight {
			break
		}
		if e.grayscale {
			e.grayRow(row, e.nextRow)
		} else {
			e.rgbRow(row, e.nextRow)
		}
		e.nextRow++
		produced++
	}
	return produced
}

func (e *engine) grayRow(row []uint8, y int32) {
	switch img := e.img.(type) {
	case *image.Gray:
		offset := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+int(y))
		copy(row[:e.outWidth], img.Pix[offset:])
	case *image.YCbCr:
		// grayscale output of a YCbCr stream is its luma channel
		offset := img.YOffset(img.Rect.Min.X, img.Rect.Min.Y+int(y))
		copy(row[:e.outWidth], img.Y[offset:])
	}
}

func (e *engine) rgbRow(row []uint8, y int32) {
	switch img := e.img.(type) {
	case *image.Gray:
		offset := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+int(y))
		for x := int32(0); x < e.outWidth; x++ {
			v := img.Pix[offset+int(x)]
			row[x*3+0] = v
			row[x*3+1] = v
			row[x*3+2] = v
		}
	case *image.YCbCr:
		py := img.Rect.Min.Y + int(y)
		for x := int32(0); x < e.outWidth; x++ {
			px := img.Rect.Min.X + int(x)
			c := img.YCbCrAt(px, py)
			r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
			row[x*3+0] = r
			row[x*3+1] = g
			row[x*3+2] = b
		}
	}
}

// release drops the decoded frame and header state.
func (e *engine) release() {
	e.img = nil
	e.hdr = nil
}
