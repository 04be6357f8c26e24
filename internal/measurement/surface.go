package measurement

import (
	"context"

	"github.com/philipparndt/goruler/pkg/geometry"
)

// Handle is an opaque reference to a primitive drawn on a Surface.
// The zero Handle refers to nothing.
type Handle uint64

// Surface is the 2D canvas a Session draws on
type Surface interface {
	DrawLine(p1, p2 geometry.Point) Handle
	DrawText(at geometry.Point, text string) Handle
	Erase(h Handle)
	ClearAll()
}

// Prompt asks the user a question and waits for a textual answer.
// Implementations return ErrAborted (possibly wrapped) when the user gives up.
type Prompt interface {
	Ask(ctx context.Context, question string) (string, error)
}
