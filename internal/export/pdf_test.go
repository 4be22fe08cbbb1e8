package export

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xee
	}
	return img
}

func TestComposeProducesPDF(t *testing.T) {
	out, err := PDF{}.Compose([]image.Image{
		solidPage(100, 80),
		solidPage(200, 150),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestComposeRejectsEmpty(t *testing.T) {
	_, err := PDF{}.Compose(nil)
	assert.Error(t, err)
}

func TestComposeDataURLs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidPage(60, 40)))
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	out, err := PDF{}.ComposeDataURLs([]string{dataURL, "not-a-data-url"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestComposeDataURLsAllInvalid(t *testing.T) {
	_, err := PDF{}.ComposeDataURLs([]string{"nope", "also nope"})
	assert.Error(t, err)
}

func TestComposeDataURLsBadBase64(t *testing.T) {
	_, err := PDF{}.ComposeDataURLs([]string{"data:image/png;base64,%%%"})
	assert.Error(t, err)
}
