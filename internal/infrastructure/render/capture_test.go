package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCapturer(t *testing.T) *Capturer {
	t.Helper()
	c, err := NewCapturer(&CaptureConfig{Scale: 2.0})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	return img
}

func TestWrapHTML(t *testing.T) {
	c := testCapturer(t)

	t.Run("wraps fragments in a full document", func(t *testing.T) {
		out := c.wrapHTML("<div>hello</div>")
		assert.Contains(t, out, "<!DOCTYPE html>")
		assert.Contains(t, out, "<div>hello</div>")
		assert.Contains(t, out, "#ffffff")
	})

	t.Run("leaves complete documents alone", func(t *testing.T) {
		in := "<!DOCTYPE html><html><body>x</body></html>"
		assert.Equal(t, in, c.wrapHTML(in))
	})
}

func TestFitSinglePage(t *testing.T) {
	c := testCapturer(t)

	t.Run("fits a wide bitmap on one page", func(t *testing.T) {
		data, err := c.fitSinglePage(solidImage(1588, 800))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("fits a very tall bitmap by shrinking to height", func(t *testing.T) {
		data, err := c.fitSinglePage(solidImage(800, 6000))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})
}

func TestPaginate(t *testing.T) {
	c := testCapturer(t)

	t.Run("slices tall bitmaps into one page per band", func(t *testing.T) {
		// 3 full bands at 500px page height x 2.0 scale
		data, err := c.paginate(solidImage(1588, 3000), 500)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("keeps a short remainder band", func(t *testing.T) {
		data, err := c.paginate(solidImage(1588, 1100), 500)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("defaults the band height when unset", func(t *testing.T) {
		data, err := c.paginate(solidImage(1588, 1200), 0)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}

func TestCaptureValidation(t *testing.T) {
	c := testCapturer(t)

	t.Run("rejects nil request", func(t *testing.T) {
		_, err := c.Capture(context.Background(), nil)
		require.Error(t, err)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidInput, renderErr.Code)
	})

	t.Run("rejects empty HTML", func(t *testing.T) {
		_, err := c.Capture(context.Background(), &CaptureRequest{HTML: "  "})
		assert.Error(t, err)
	})
}
