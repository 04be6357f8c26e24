// Package raster renders a measurement scene into an image, for headless
// measurements and for exporting what the ruler shows.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/goruler/internal/scene"
	"github.com/philipparndt/goruler/pkg/geometry"
)

// Style controls colours and stroke of a rendering
type Style struct {
	Background color.Color
	Line       color.Color
	Text       color.Color
	Thickness  int
}

// DefaultStyle matches the overlay colours: black lines on white
func DefaultStyle() Style {
	return Style{
		Background: color.White,
		Line:       color.Black,
		Text:       color.RGBA{200, 0, 0, 255},
		Thickness:  1,
	}
}

// Render draws items on a new width x height image
func Render(items []scene.Item, width, height int, style Style) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if style.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)
	}
	RenderOnto(img, items, style)
	return img
}

// RenderOnto draws items on top of an existing image
func RenderOnto(img draw.Image, items []scene.Item, style Style) {
	for _, item := range items {
		switch item.Kind {
		case scene.KindLine:
			drawLine(img, item.P1, item.P2, style.Line, style.Thickness)
		case scene.KindText:
			drawText(img, item.P1, item.Text, style.Text)
		}
	}
}

// drawLine plots a line with Bresenham's algorithm
func drawLine(img draw.Image, p1, p2 geometry.Point, col color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	x0, y0 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x1, y1 := int(math.Round(p2.X)), int(math.Round(p2.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		plot(img, x0, y0, col, thickness)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func plot(img draw.Image, x, y int, col color.Color, thickness int) {
	half := thickness / 2
	for ox := -half; ox < thickness-half; ox++ {
		for oy := -half; oy < thickness-half; oy++ {
			if (image.Point{X: x + ox, Y: y + oy}).In(img.Bounds()) {
				img.Set(x+ox, y+oy, col)
			}
		}
	}
}

// drawText draws text centred horizontally on at, baseline below it
func drawText(img draw.Image, at geometry.Point, text string, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(math.Round(at.X))) - width/2,
		Y: fixed.I(int(math.Round(at.Y)) + face.Ascent/2),
	}
	d.DrawString(text)
}

// WritePNG encodes img as PNG at path, creating parent directories
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
