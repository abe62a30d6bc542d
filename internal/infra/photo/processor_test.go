package photo

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessDownscalesToWebP(t *testing.T) {
	p := Processor{MaxSide: 64, Quality: 75}

	out, err := p.Process(bytes.NewReader(pngOf(t, 200, 100)))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestProcessRejectsGarbage(t *testing.T) {
	p := NewProcessor()

	_, err := p.Process(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = p.Process(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

type memObjects struct {
	keys []string
}

func (m *memObjects) Put(_ context.Context, key, contentType string, _ []byte) (string, error) {
	m.keys = append(m.keys, key+"|"+contentType)
	return "https://cdn.example.com/" + key, nil
}

func TestUploaderKeysByBarber(t *testing.T) {
	store := &memObjects{}
	u := NewUploader(Processor{MaxSide: 32, Quality: 60}, store)

	url, err := u.UploadBarberPhoto(context.Background(), 9, bytes.NewReader(pngOf(t, 40, 40)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/barbers/9/"))
	assert.True(t, strings.HasSuffix(url, ".webp"))
	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasSuffix(store.keys[0], "|image/webp"))
}
