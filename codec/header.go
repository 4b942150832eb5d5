package codec

import (
	"bufio"
	"io"
)

// JPEG marker bytes the scanner cares about. Everything else is either a
// parameterless marker or a skippable length-prefixed segment.
const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerDHT  = 0xC4
	markerJPG  = 0xC8
	markerDAC  = 0xCC
	markerTEM  = 0x01
	markerSOF0 = 0xC0
	markerSOF2 = 0xC2
)

// headerInfo is the outcome of a header-only read: the dimensions and
// component count the engine will produce, without decoding any pixel data.
// tablesOnly is set when the stream carries quantisation/Huffman tables but
// no image at all, which is a valid header outcome for abbreviated streams.
// imageStart is the offset of the frame-bearing image's SOI, non-zero when
// a tables-only prefix was skipped; a decode must start there, not at the
// stream start.
type headerInfo struct {
	width       int32
	height      int32
	components  int32
	progressive bool
	tablesOnly  bool
	imageStart  int64
}

type markerScanner struct {
	r   *bufio.Reader
	pos int64
}

func (s *markerScanner) readByte() (byte, bool) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, false
	}
	s.pos++
	return b, true
}

func (s *markerScanner) readUint16() (uint16, bool) {
	hi, ok := s.readByte()
	if !ok {
		return 0, false
	}
	lo, ok := s.readByte()
	if !ok {
		return 0, false
	}
	return uint16(hi)<<8 | uint16(lo), true
}

func (s *markerScanner) skip(n int32) bool {
	discarded, err := s.r.Discard(int(n))
	s.pos += int64(discarded)
	return err == nil
}

// nextMarker consumes up to the next marker code. Fill bytes (repeated 0xFF)
// before the code are allowed, as are stray bytes between segments.
func (s *markerScanner) nextMarker() (byte, bool) {
	for {
		b, ok := s.readByte()
		if !ok {
			return 0, false
		}
		if b != 0xFF {
			continue
		}
		for b == 0xFF {
			if b, ok = s.readByte(); !ok {
				return 0, false
			}
		}
		if b == 0x00 {
			// byte stuffing, not a marker
			continue
		}
		return b, true
	}
}

// scanHeader walks the stream's markers up to (not including) entropy-coded
// data and reports the frame's declared dimensions. A leading tables-only
// segment (SOI..EOI containing no frame header) is skipped so the following
// image's header is the one reported. Reads never go past the reader's end.
func scanHeader(r io.Reader) (*headerInfo, error) {
	s := &markerScanner{r: bufio.NewReader(r)}

	if m, ok := s.readUint16(); !ok || m != 0xFFD8 {
		return nil, newFormatError("Couldn't read JPEG header")
	}

	hdr := &headerInfo{}
	for {
		marker, ok := s.nextMarker()
		if !ok {
			return nil, newFormatError("Couldn't read JPEG header")
		}

		switch {
		case isFrameMarker(marker):
			if err := s.parseFrameHeader(marker, hdr); err != nil {
				return nil, err
			}
			return hdr, nil

		case marker == markerEOI:
			// end of a segment with no frame header seen. If another
			// image follows (possibly after padding bytes) this was a
			// tables-only prefix; otherwise the whole stream is
			// tables-only. A decode has to begin at the image's own SOI.
			if m, ok := s.nextMarker(); ok && m == markerSOI {
				hdr.imageStart = s.pos - 2
				continue
			}
			hdr.tablesOnly = true
			return hdr, nil

		case marker == markerSOS:
			// entropy data with no frame header first is not a JPEG
			return nil, newFormatError("Couldn't read JPEG header")

		case marker == markerSOI || marker == markerTEM ||
			(marker >= 0xD0 && marker <= 0xD7):
			// parameterless, nothing to skip

		default:
			length, ok := s.readUint16()
			if !ok || length < 2 || !s.skip(int32(length)-2) {
				return nil, newFormatError("Couldn't read JPEG header")
			}
		}
	}
}

// isFrameMarker reports whether marker is one of the SOFn codes that carry
// frame dimensions. DHT, JPG and DAC share the 0xC0 block but are not
// frame headers.
func isFrameMarker(marker byte) bool {
	if marker < 0xC0 || marker > 0xCF {
		return false
	}
	return marker != markerDHT && marker != markerJPG && marker != markerDAC
}

func (s *markerScanner) parseFrameHeader(marker byte, hdr *headerInfo) error {
	length, ok := s.readUint16()
	if !ok || length < 8 {
		return newFormatError("Couldn't read JPEG header")
	}
	if _, ok = s.readByte(); !ok { // sample precision
		return newFormatError("Couldn't read JPEG header")
	}
	height, ok1 := s.readUint16()
	width, ok2 := s.readUint16()
	components, ok3 := s.readByte()
	if !ok1 || !ok2 || !ok3 {
		return newFormatError("Couldn't read JPEG header")
	}

	if width == 0 || height == 0 {
		return newFormatError("JPEG header declares zero dimensions (%dx%d)",
			width, height)
	}

	hdr.width = int32(width)
	hdr.height = int32(height)
	hdr.components = int32(components)
	hdr.progressive = marker == markerSOF2
	return nil
}
