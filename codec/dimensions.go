package codec

import (
	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/wsi-go/wsiio"
)

// ReadDimensions reports the output dimensions of the baseline JPEG stream
// beginning at offset within filename, from the header alone. No pixel data
// is decoded.
func ReadDimensions(filename string, offset int64) (int32, int32, error) {
	return ProbeDimensions(wsiio.NewFileSource(filename, offset))
}

// BufferDimensions is ReadDimensions for an in-memory stream.
func BufferDimensions(buf []byte) (int32, int32, error) {
	return ProbeDimensions(wsiio.NewMemSource(buf))
}

// ProbeDimensions opens src, reads only the stream header and reports the
// dimensions a full decode would produce. On error no dimensions are
// returned and the session is torn down.
func ProbeDimensions(src wsiio.Source) (int32, int32, error) {
	log.Debugf("probe JPEG dimensions: %s", src.Describe())

	r, err := src.Open()
	if err != nil {
		return 0, 0, newIOError("%v", err)
	}
	defer r.Close()

	s := newSession()
	defer s.destroy()

	var width, height int32
	err = s.run(func() error {
		s.begin(r)
		if err := s.eng.readHeader(); err != nil {
			return err
		}
		if s.eng.header().tablesOnly {
			return newFormatError("stream contains only tables, no image")
		}
		width, height = s.eng.calcOutputDimensions()
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}
