package storage_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/storage"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageProcessor_Process(t *testing.T) {
	p := storage.NewImageProcessor()

	t.Run("fits large photo", func(t *testing.T) {
		out, size, w, h, err := p.Process(bytes.NewReader(encodePNG(t, 3200, 1600)), "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, 1600, w)
		assert.Equal(t, 800, h)

		data, err := io.ReadAll(out)
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), size)

		_, format, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("keeps png small photo", func(t *testing.T) {
		out, _, w, h, err := p.Process(bytes.NewReader(encodePNG(t, 300, 200)), "image/png")
		require.NoError(t, err)
		assert.Equal(t, 300, w)
		assert.Equal(t, 200, h)

		_, format, err := image.DecodeConfig(out)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
	})

	t.Run("passes undecodable bytes through", func(t *testing.T) {
		out, size, w, h, err := p.Process(bytes.NewReader([]byte("not an image")), "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, int64(12), size)
		assert.Zero(t, w)
		assert.Zero(t, h)

		data, err := io.ReadAll(out)
		require.NoError(t, err)
		assert.Equal(t, "not an image", string(data))
	})
}
