// Package render rasterizes a scene snapshot: the background room photo
// contain-fitted into the container box with each placed item's footprint
// drawn over it in stacking order. It is the server-side stand-in for the
// interactive canvas and what the snapshot export endpoint serves.
package render

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"
	xdraw "golang.org/x/image/draw"

	"github.com/oakhaus/decorator/internal/scene"
)

// canvasFill is the neutral background behind the contain-fitted photo.
var canvasFill = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

// ContainFit returns the centered rectangle a srcW x srcH image occupies
// inside a boxW x boxH container when scaled to fit while preserving aspect
// ratio.
func ContainFit(srcW, srcH, boxW, boxH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH))
	w := int(math.Round(float64(srcW) * scale))
	h := int(math.Round(float64(srcH) * scale))
	x := (boxW - w) / 2
	y := (boxH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// Snapshot composites the background and items into a width x height image.
// background may be nil (scene awaiting upload); the canvas then stays the
// plain placeholder fill. Items are drawn in the order given.
func Snapshot(background image.Image, width, height int, items []scene.PlacedItem) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(canvasFill), image.Point{}, draw.Src)

	if background != nil {
		fit := ContainFit(background.Bounds().Dx(), background.Bounds().Dy(), width, height)
		xdraw.CatmullRom.Scale(dst, fit, background, background.Bounds(), xdraw.Over, nil)
	}

	for _, it := range items {
		drawFootprint(dst, it)
	}
	return dst
}

// drawFootprint draws one item as a translucent box with a border. The yaw
// rotation of the 3D model projects to horizontal foreshortening about the
// footprint's center, so the drawn width is scaled by |cos(rotation)|.
func drawFootprint(dst *image.RGBA, it scene.PlacedItem) {
	w, h := it.Footprint()
	drawnW := w * math.Abs(math.Cos(it.Rotation*math.Pi/180))
	if drawnW < 2 {
		drawnW = 2 // edge-on items stay visible as a sliver
	}

	x0 := int(math.Round(it.X + (w-drawnW)/2))
	y0 := int(math.Round(it.Y))
	rect := image.Rect(x0, y0, x0+int(math.Round(drawnW)), y0+int(math.Round(h)))
	rect = rect.Intersect(dst.Bounds()) // items may be dragged off-screen
	if rect.Empty() {
		return
	}

	fill, border := assetColors(it.AssetRef)
	draw.Draw(dst, rect, image.NewUniform(fill), image.Point{}, draw.Over)
	for _, edge := range []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+2),
		image.Rect(rect.Min.X, rect.Max.Y-2, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+2, rect.Max.Y),
		image.Rect(rect.Max.X-2, rect.Min.Y, rect.Max.X, rect.Max.Y),
	} {
		draw.Draw(dst, edge, image.NewUniform(border), image.Point{}, draw.Src)
	}
}

// assetColors derives a stable fill/border pair from the asset reference so
// the same product always renders in the same tint.
func assetColors(assetRef string) (fill, border color.RGBA) {
	h := fnv.New32a()
	h.Write([]byte(assetRef))
	sum := h.Sum32()

	r := uint8(64 + (sum>>16)&0x7f)
	g := uint8(64 + (sum>>8)&0x7f)
	b := uint8(64 + sum&0x7f)
	return color.RGBA{R: r, G: g, B: b, A: 0x8c}, color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// EncodeWebP writes the image as a lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("failed to encode webp: %w", err)
	}
	return nil
}
