package codec

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpfaulkner/wsi-go/slide"
	"github.com/kpfaulkner/wsi-go/testcommon"
)

func TestAddAssociatedImage(t *testing.T) {
	thumb, err := testcommon.SolidJPEG(32, 24, color.RGBA{R: 255, A: 255}, 90)
	require.NoError(t, err)
	path, err := testcommon.WriteAtOffset(t.TempDir(), "slide.tif", 512, thumb)
	require.NoError(t, err)

	reg := slide.NewRegistry()
	defer reg.Close()

	require.NoError(t, AddAssociatedImage(reg, "thumbnail", path, 512))

	img, ok := reg.Get("thumbnail")
	require.True(t, ok)
	assert.Equal(t, int32(32), img.Width)
	assert.Equal(t, int32(24), img.Height)

	// pixels are only decoded now
	dest := make([]uint32, 32*24)
	require.NoError(t, img.GetPixels(dest))
	assert.Equal(t, uint32(0xFF), dest[0]>>24)
	assert.GreaterOrEqual(t, uint8(dest[0]>>16), uint8(250))
}

func TestAddAssociatedImageBadSource(t *testing.T) {
	reg := slide.NewRegistry()
	defer reg.Close()

	err := AddAssociatedImage(reg, "label", "/no/such/slide.tif", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't read label associated image")
	assert.True(t, IsKind(err, KindIO), "probe failure must keep its kind through the prefix")

	_, ok := reg.Get("label")
	assert.False(t, ok, "failed registration must not leave an entry behind")
}

func TestAddAssociatedImageOverwrite(t *testing.T) {
	dir := t.TempDir()
	first, err := testcommon.SolidJPEG(16, 16, color.RGBA{R: 255, A: 255}, 90)
	require.NoError(t, err)
	second, err := testcommon.SolidJPEG(8, 4, color.RGBA{B: 255, A: 255}, 90)
	require.NoError(t, err)

	firstPath, err := testcommon.WriteAtOffset(dir, "first.tif", 0, first)
	require.NoError(t, err)
	secondPath, err := testcommon.WriteAtOffset(dir, "second.tif", 0, second)
	require.NoError(t, err)

	reg := slide.NewRegistry()
	defer reg.Close()

	require.NoError(t, AddAssociatedImage(reg, "macro", firstPath, 0))
	require.NoError(t, AddAssociatedImage(reg, "macro", secondPath, 0))

	assert.Equal(t, 1, reg.Len())
	img, ok := reg.Get("macro")
	require.True(t, ok)
	assert.Equal(t, int32(8), img.Width)
	assert.Equal(t, int32(4), img.Height)
}
