package wsiio

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Source locates a compressed stream: either a byte range inside a container
// file or a borrowed in-memory buffer. Open hands back a fresh reader whose
// position 0 is the start of the compressed stream, so one Source can be
// opened once per decode call. A single opened reader carries a cursor and
// must not be shared between concurrent decodes.
type Source interface {
	Open() (io.ReadSeekCloser, error)
	Describe() string
}

type fileSource struct {
	path   string
	offset int64
}

type memSource struct {
	buf []byte
}

// NewFileSource describes a compressed stream beginning at offset within the
// file at path. The file is not touched until Open.
func NewFileSource(path string, offset int64) Source {
	return &fileSource{path: path, offset: offset}
}

// NewMemSource describes a compressed stream occupying the whole of buf.
// The buffer is borrowed, not copied; reads never go past len(buf).
func NewMemSource(buf []byte) Source {
	return &memSource{buf: buf}
}

func (s *fileSource) Open() (io.ReadSeekCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", s.path, err)
	}

	if s.offset != 0 {
		if _, err := f.Seek(s.offset, io.SeekStart); err != nil {
			f.Close()
			return nil, fmt.Errorf("cannot seek to offset: %w", err)
		}
	}

	// section reader so the decode core can rewind to the stream start
	// without knowing about the container offset.
	return &sectionReadCloser{
		SectionReader: io.NewSectionReader(f, s.offset, maxStreamLength),
		f:             f,
	}, nil
}

func (s *fileSource) Describe() string {
	return fmt.Sprintf("%s @ %d", s.path, s.offset)
}

func (s *memSource) Open() (io.ReadSeekCloser, error) {
	return &nopReadSeekCloser{bytes.NewReader(s.buf)}, nil
}

func (s *memSource) Describe() string {
	return fmt.Sprintf("buffer of %d bytes", len(s.buf))
}

// the container never tells us how long a tile's stream is; the engine stops
// at the end-of-image marker, so an effectively unbounded section is fine.
const maxStreamLength = 1 << 62

type sectionReadCloser struct {
	*io.SectionReader
	f *os.File
}

func (s *sectionReadCloser) Close() error {
	return s.f.Close()
}

type nopReadSeekCloser struct {
	*bytes.Reader
}

func (nopReadSeekCloser) Close() error {
	return nil
}
