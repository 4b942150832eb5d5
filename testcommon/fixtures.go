package testcommon

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
)

// Test fixtures are generated with the standard encoder rather than checked
// in as binaries, so dimension and pixel expectations can't drift from what
// the engine actually produces.

// SolidJPEG encodes a width x height image filled with c.
func SolidJPEG(width int, height int, c color.Color, quality int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SolidGrayJPEG encodes a single-component stream filled with v.
func SolidGrayJPEG(width int, height int, v uint8, quality int) ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TablesOnlyStream builds an abbreviated tables-only datastream: SOI, one
// quantisation table, EOI. A valid header outcome with no image in it.
func TablesOnlyStream() []byte {
	stream := []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x43, 0x00}
	for i := 0; i < 64; i++ {
		stream = append(stream, 16)
	}
	return append(stream, 0xFF, 0xD9)
}

// WriteAtOffset writes data into a new file under dir, preceded by offset
// bytes of padding, and returns the file's path. This is the shape of a
// tile or associated image inside a container file.
func WriteAtOffset(dir string, name string, offset int64, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	padded := make([]byte, offset, offset+int64(len(data)))
	padded = append(padded, data...)
	if err := os.WriteFile(path, padded, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
