package viewer

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/goruler/internal/measurement"
)

type answer struct {
	text string
	ok   bool
}

// dialogPrompt asks calibration questions in a form dialog. Ask is called
// from the dispatcher goroutine and waits while the UI thread shows the form.
type dialogPrompt struct {
	window fyne.Window

	// before runs on the asking goroutine ahead of each dialog
	before func()
}

var _ measurement.Prompt = (*dialogPrompt)(nil)

func (p *dialogPrompt) Ask(ctx context.Context, question string) (string, error) {
	answers := make(chan answer, 1)
	var form dialog.Dialog

	if p.before != nil {
		p.before()
	}

	fyne.Do(func() {
		entry := widget.NewEntry()
		entry.SetPlaceHolder("50 mm")
		items := []*widget.FormItem{
			widget.NewFormItem("Distance", entry),
		}
		items[0].HintText = question
		form = dialog.NewForm("Set scale", "Apply", "Cancel", items, func(ok bool) {
			answers <- answer{text: entry.Text, ok: ok}
		}, p.window)
		form.Resize(fyne.NewSize(420, 160))
		form.Show()
		p.window.Canvas().Focus(entry)
	})

	select {
	case a := <-answers:
		if !a.ok {
			return "", measurement.ErrAborted
		}
		return a.text, nil
	case <-ctx.Done():
		fyne.Do(func() {
			if form != nil {
				form.Hide()
			}
		})
		return "", fmt.Errorf("%w: %w", measurement.ErrAborted, ctx.Err())
	}
}
