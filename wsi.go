package wsi_go

import (
	"image"
	"image/color"

	"github.com/kpfaulkner/wsi-go/codec"
)

// Thin facade over the codec package for callers that want standard library
// image types instead of raw packed buffers.

// ProbeFile reads only the header of the JPEG stream at offset within path.
func ProbeFile(path string, offset int64) (image.Config, error) {
	w, h, err := codec.ReadDimensions(path, offset)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: int(w), Height: int(h)}, nil
}

// ProbeBuffer reads only the header of an in-memory JPEG stream.
func ProbeBuffer(buf []byte) (image.Config, error) {
	w, h, err := codec.BufferDimensions(buf)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: int(w), Height: int(h)}, nil
}

// DecodeTile decodes the w*h JPEG tile at offset within path.
func DecodeTile(path string, offset int64, w int32, h int32) (*image.RGBA, error) {
	dest := make([]uint32, int(w)*int(h))
	if err := codec.Read(path, offset, dest, w, h); err != nil {
		return nil, err
	}
	return packedToRGBA(dest, w, h), nil
}

// DecodeTileBuffer decodes a w*h JPEG tile held in memory.
func DecodeTileBuffer(buf []byte, w int32, h int32) (*image.RGBA, error) {
	dest := make([]uint32, int(w)*int(h))
	if err := codec.DecodeBuffer(buf, dest, w, h); err != nil {
		return nil, err
	}
	return packedToRGBA(dest, w, h), nil
}

func packedToRGBA(src []uint32, w int32, h int32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for i, p := range src {
		img.Pix[i*4+0] = uint8(p >> 16)
		img.Pix[i*4+1] = uint8(p >> 8)
		img.Pix[i*4+2] = uint8(p)
		img.Pix[i*4+3] = uint8(p >> 24)
	}
	return img
}
