package overlay

import (
	"context"
	"image"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goruler/internal/capture"
)

// windowChrome changes window decoration and opacity. raylib must be called
// from the render loop, so requests are queued and run between frames.
type windowChrome struct {
	calls chan func()

	mu  sync.Mutex
	ctx context.Context
}

var _ capture.Chrome = (*windowChrome)(nil)

func newWindowChrome() *windowChrome {
	return &windowChrome{calls: make(chan func(), 16)}
}

func (c *windowChrome) attach(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
}

func (c *windowChrome) detach() {
	c.mu.Lock()
	c.ctx = nil
	c.mu.Unlock()
}

// do runs fn on the render loop and waits for it. Requests made while the
// window is closed are dropped.
func (c *windowChrome) do(fn func()) bool {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	if ctx == nil {
		return false
	}

	done := make(chan struct{})
	select {
	case c.calls <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return false
	}

	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// runPending executes queued requests; called once per frame
func (c *windowChrome) runPending() {
	for {
		select {
		case fn := <-c.calls:
			fn()
		default:
			return
		}
	}
}

func (c *windowChrome) SetOpacity(opacity float32) {
	c.do(func() { rl.SetWindowOpacity(opacity) })
}

func (c *windowChrome) SetDecorated(decorated bool) {
	c.do(func() {
		if decorated {
			rl.ClearWindowState(rl.FlagWindowUndecorated)
		} else {
			rl.SetWindowState(rl.FlagWindowUndecorated)
		}
	})
}

func (c *windowChrome) Bounds() image.Rectangle {
	var r image.Rectangle
	c.do(func() {
		pos := rl.GetWindowPosition()
		x, y := int(pos.X), int(pos.Y)
		r = image.Rect(x, y, x+rl.GetScreenWidth(), y+rl.GetScreenHeight())
	})
	return r
}
