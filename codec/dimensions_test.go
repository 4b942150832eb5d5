package codec

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpfaulkner/wsi-go/testcommon"
)

func TestReadDimensionsAtOffset(t *testing.T) {
	tile, err := testcommon.SolidJPEG(64, 64, color.RGBA{R: 255, A: 255}, 90)
	require.NoError(t, err)
	path, err := testcommon.WriteAtOffset(t.TempDir(), "slide.tif", 4096, tile)
	require.NoError(t, err)

	w, h, err := ReadDimensions(path, 4096)
	require.NoError(t, err)
	assert.Equal(t, int32(64), w)
	assert.Equal(t, int32(64), h)
}

func TestReadDimensionsMissingFile(t *testing.T) {
	w, h, err := ReadDimensions("/no/such/slide.tif", 0)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindIO))
	assert.Equal(t, int32(0), w)
	assert.Equal(t, int32(0), h)
}

func TestBufferDimensions(t *testing.T) {
	jpegData, err := testcommon.SolidJPEG(33, 17, color.RGBA{G: 200, A: 255}, 80)
	require.NoError(t, err)

	for _, tc := range []struct {
		name           string
		data           []byte
		expectErr      bool
		expectedErrMsg string
		expectedWidth  int32
		expectedHeight int32
	}{
		{
			name:           "valid stream",
			data:           jpegData,
			expectedWidth:  33,
			expectedHeight: 17,
		},
		{
			name:           "tables only",
			data:           testcommon.TablesOnlyStream(),
			expectErr:      true,
			expectedErrMsg: "only tables",
		},
		{
			name:           "garbage",
			data:           []byte("certainly not a compressed image"),
			expectErr:      true,
			expectedErrMsg: "Couldn't read JPEG header",
		},
		{
			name:           "truncated",
			data:           jpegData[:10],
			expectErr:      true,
			expectedErrMsg: "Couldn't read JPEG header",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w, h, err := BufferDimensions(tc.data)
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindFormat))
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedWidth, w)
			assert.Equal(t, tc.expectedHeight, h)
		})
	}
}
