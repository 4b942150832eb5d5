package wsi_go

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpfaulkner/wsi-go/testcommon"
)

func TestProbeBuffer(t *testing.T) {
	jpegData, err := testcommon.SolidJPEG(40, 30, color.RGBA{R: 255, A: 255}, 90)
	require.NoError(t, err)

	cfg, err := ProbeBuffer(jpegData)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestDecodeTileBuffer(t *testing.T) {
	jpegData, err := testcommon.SolidJPEG(2, 2, color.RGBA{R: 255, A: 255}, 100)
	require.NoError(t, err)

	img, err := DecodeTileBuffer(jpegData, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	r, _, _, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), a)
	assert.GreaterOrEqual(t, r>>8, uint32(250))
}

func TestDecodeTileFromFile(t *testing.T) {
	tile, err := testcommon.SolidJPEG(16, 16, color.RGBA{G: 255, A: 255}, 90)
	require.NoError(t, err)
	path, err := testcommon.WriteAtOffset(t.TempDir(), "slide.tif", 1024, tile)
	require.NoError(t, err)

	cfg, err := ProbeFile(path, 1024)
	require.NoError(t, err)

	img, err := DecodeTile(path, 1024, int32(cfg.Width), int32(cfg.Height))
	require.NoError(t, err)
	_, g, _, _ := img.At(8, 8).RGBA()
	assert.GreaterOrEqual(t, g>>8, uint32(240))
}
