package overlay

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goruler/internal/scene"
)

const (
	lineThickness = 1.5
	labelFontSize = 14
)

var (
	backgroundColor = rl.NewColor(255, 255, 255, 255)
	lineColor       = rl.NewColor(0, 0, 0, 255)
	labelColor      = rl.NewColor(200, 0, 0, 255)
)

// drawItems renders a scene snapshot; must run between BeginDrawing and EndDrawing
func drawItems(items []scene.Item) {
	for _, item := range items {
		switch item.Kind {
		case scene.KindLine:
			rl.DrawLineEx(
				rl.Vector2{X: float32(item.P1.X), Y: float32(item.P1.Y)},
				rl.Vector2{X: float32(item.P2.X), Y: float32(item.P2.Y)},
				lineThickness, lineColor,
			)
		case scene.KindText:
			// Centre the label on its anchor
			width := rl.MeasureText(item.Text, labelFontSize)
			x := int32(item.P1.X) - width/2
			y := int32(item.P1.Y) - labelFontSize/2
			rl.DrawText(item.Text, x, y, labelFontSize, labelColor)
		}
	}
}
