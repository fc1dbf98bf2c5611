package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaus/decorator/internal/scene"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestContainFitWideImage(t *testing.T) {
	// 200x100 into 100x100: scales to 100x50, centered vertically.
	fit := ContainFit(200, 100, 100, 100)
	assert.Equal(t, image.Rect(0, 25, 100, 75), fit)
}

func TestContainFitTallImage(t *testing.T) {
	// 100x200 into 100x100: scales to 50x100, centered horizontally.
	fit := ContainFit(100, 200, 100, 100)
	assert.Equal(t, image.Rect(25, 0, 75, 100), fit)
}

func TestContainFitExactFit(t *testing.T) {
	fit := ContainFit(800, 600, 800, 600)
	assert.Equal(t, image.Rect(0, 0, 800, 600), fit)
}

func TestContainFitDegenerate(t *testing.T) {
	assert.True(t, ContainFit(0, 100, 100, 100).Empty())
	assert.True(t, ContainFit(100, 100, 0, 100).Empty())
}

func TestSnapshotWithoutBackground(t *testing.T) {
	img := Snapshot(nil, 40, 30, nil)
	require.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())
	assert.Equal(t, canvasFill, img.RGBAAt(20, 15))
}

func TestSnapshotDrawsBackgroundInContainBox(t *testing.T) {
	blue := color.RGBA{B: 0xff, A: 0xff}
	bg := solidImage(100, 50, blue) // wide: letterboxed top and bottom

	img := Snapshot(bg, 100, 100, nil)

	assert.Equal(t, blue, img.RGBAAt(50, 50), "photo occupies the contain box")
	assert.Equal(t, canvasFill, img.RGBAAt(50, 5), "letterbox stays canvas fill")
	assert.Equal(t, canvasFill, img.RGBAAt(50, 95))
}

func TestSnapshotDrawsItemFootprint(t *testing.T) {
	bg := solidImage(80, 80, color.RGBA{R: 0xff, A: 0xff})

	items := []scene.PlacedItem{
		{ID: "a", AssetRef: "chair.glb", X: 10, Y: 10, Scale: 0.1}, // 30x30 box
	}
	img := Snapshot(bg, 80, 80, items)

	assert.NotEqual(t, img.RGBAAt(25, 25), img.RGBAAt(70, 70),
		"footprint must differ from untouched background")
}

func TestSnapshotOffscreenItemIsClipped(t *testing.T) {
	items := []scene.PlacedItem{
		{ID: "a", AssetRef: "chair.glb", X: -5000, Y: -5000, Scale: 1},
	}
	// Must not panic; item is simply out of frame.
	img := Snapshot(nil, 50, 50, items)
	assert.Equal(t, canvasFill, img.RGBAAt(25, 25))
}

func TestEncodeWebP(t *testing.T) {
	img := Snapshot(nil, 16, 16, nil)

	var buf bytes.Buffer
	require.NoError(t, EncodeWebP(&buf, img))

	data := buf.Bytes()
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}
