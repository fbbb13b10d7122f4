package facedetect

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
)

// paddingRatio widens the detected box so the crop includes hair and chin,
// not just the face rectangle.
const paddingRatio = 0.35

// CropFace decodes the image, expands the box by paddingRatio, crops a square
// around its center, masks it to a circle and re-encodes as PNG.
func CropFace(data []byte, box Box) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode avatar source: %w", err)
	}

	rect := squareAround(box, src.Bounds())
	size := rect.Dx()
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(out, out.Bounds(), src, rect.Min, draw.Src)
	maskCircle(out)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

// squareAround returns a square crop rectangle centered on the padded box,
// clamped to the image bounds.
func squareAround(box Box, bounds image.Rectangle) image.Rectangle {
	side := box.Width
	if box.Height > side {
		side = box.Height
	}
	side += int(float64(side) * paddingRatio * 2)

	cx := box.X + box.Width/2
	cy := box.Y + box.Height/2

	if side > bounds.Dx() {
		side = bounds.Dx()
	}
	if side > bounds.Dy() {
		side = bounds.Dy()
	}

	x0 := clamp(cx-side/2, bounds.Min.X, bounds.Max.X-side)
	y0 := clamp(cy-side/2, bounds.Min.Y, bounds.Max.Y-side)
	return image.Rect(x0, y0, x0+side, y0+side)
}

// maskCircle makes every pixel outside the inscribed circle transparent.
func maskCircle(img *image.RGBA) {
	size := img.Bounds().Dx()
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy > r*r {
				img.SetRGBA(x, y, color.RGBA{})
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
