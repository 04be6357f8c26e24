package viewer

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/goruler/internal/input"
	"github.com/philipparndt/goruler/internal/scene"
	"github.com/philipparndt/goruler/pkg/geometry"
)

const (
	labelTextSize = 14
	minCanvasSize = 200
)

var (
	lineColor  = color.RGBA{0, 0, 0, 255}
	labelColor = color.RGBA{200, 0, 0, 255}
)

// Canvas shows an image with the measurement scene on top and turns
// primary button gestures into input events.
type Canvas struct {
	widget.BaseWidget
	scene *scene.Scene
	post  func(input.Event)

	mu  sync.RWMutex
	img image.Image

	down  bool
	shift bool
}

var (
	_ desktop.Mouseable = (*Canvas)(nil)
	_ fyne.Draggable    = (*Canvas)(nil)
)

// NewCanvas creates a canvas rendering sc. Gestures are handed to post.
func NewCanvas(sc *scene.Scene, post func(input.Event)) *Canvas {
	c := &Canvas{scene: sc, post: post}
	c.ExtendBaseWidget(c)
	return c
}

// SetImage replaces the background image
func (c *Canvas) SetImage(img image.Image) {
	c.mu.Lock()
	c.img = img
	c.mu.Unlock()
	c.Refresh()
}

// Image returns the background image, nil when none is loaded
func (c *Canvas) Image() image.Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.img
}

// SetShift records the Shift key state reported by the window
func (c *Canvas) SetShift(down bool) {
	c.shift = down
}

func (c *Canvas) mods(m fyne.KeyModifier) input.Mods {
	mods := input.ModNone
	if c.shift || m&fyne.KeyModifierShift != 0 {
		mods |= input.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		mods |= input.ModCtrl
	}
	if m&fyne.KeyModifierAlt != 0 {
		mods |= input.ModAlt
	}
	return mods
}

func toPoint(pos fyne.Position) geometry.Point {
	return geometry.NewPoint(float64(pos.X), float64(pos.Y)).Round()
}

// MouseDown starts a gesture on the primary button
func (c *Canvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.down = true
	c.post(input.PointerEvent(input.Press, toPoint(ev.Position), c.mods(ev.Modifier)))
}

// MouseUp finishes the gesture started by MouseDown
func (c *Canvas) MouseUp(ev *desktop.MouseEvent) {
	if !c.down || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.down = false
	c.post(input.PointerEvent(input.Release, toPoint(ev.Position), c.mods(ev.Modifier)))
}

// Dragged moves the end of the line being drawn
func (c *Canvas) Dragged(ev *fyne.DragEvent) {
	if !c.down {
		return
	}
	c.post(input.PointerEvent(input.Drag, toPoint(ev.Position), c.mods(0)))
}

// DragEnd is a no-op, MouseUp releases the gesture
func (c *Canvas) DragEnd() {}

// CreateRenderer creates the renderer for the widget
func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	r := &canvasRenderer{canvas: c}
	r.rebuild()
	return r
}

// canvasRenderer implements fyne.WidgetRenderer
type canvasRenderer struct {
	canvas  *Canvas
	image   *canvas.Image
	objects []fyne.CanvasObject
}

func (r *canvasRenderer) rebuild() {
	r.objects = r.objects[:0]

	if img := r.canvas.Image(); img != nil {
		if r.image == nil || r.image.Image != img {
			r.image = canvas.NewImageFromImage(img)
			r.image.FillMode = canvas.ImageFillStretch
			r.image.ScaleMode = canvas.ImageScalePixels
		}
		b := img.Bounds()
		r.image.Move(fyne.NewPos(0, 0))
		r.image.Resize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
		r.objects = append(r.objects, r.image)
	} else {
		r.image = nil
	}

	items, _ := r.canvas.scene.Snapshot()
	for _, item := range items {
		switch item.Kind {
		case scene.KindLine:
			line := canvas.NewLine(lineColor)
			line.StrokeWidth = 1.5
			line.Position1 = fyne.NewPos(float32(item.P1.X), float32(item.P1.Y))
			line.Position2 = fyne.NewPos(float32(item.P2.X), float32(item.P2.Y))
			r.objects = append(r.objects, line)
		case scene.KindText:
			text := canvas.NewText(item.Text, labelColor)
			text.TextSize = labelTextSize
			size := text.MinSize()
			text.Resize(size)
			// Centre the label on its anchor
			text.Move(fyne.NewPos(float32(item.P1.X)-size.Width/2, float32(item.P1.Y)-size.Height/2))
			r.objects = append(r.objects, text)
		}
	}
}

func (r *canvasRenderer) Layout(fyne.Size) {}

func (r *canvasRenderer) MinSize() fyne.Size {
	if img := r.canvas.Image(); img != nil {
		b := img.Bounds()
		return fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
	}
	return fyne.NewSize(minCanvasSize, minCanvasSize)
}

func (r *canvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.canvas)
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *canvasRenderer) Destroy() {}
