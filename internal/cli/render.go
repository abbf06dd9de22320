package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/s1natex/todos-cli-GO/internal/config"
	"github.com/s1natex/todos-cli-GO/internal/tasks"
)

type Renderer struct {
	w io.Writer

	added   *color.Color
	open    *color.Color
	done    *color.Color
	changed *color.Color
	deleted *color.Color
}

func NewRenderer(w io.Writer, colorize bool) *Renderer {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return &Renderer{
		w:       w,
		added:   mk(color.FgYellow),
		open:    mk(color.FgGreen),
		done:    mk(color.FgRed, color.CrossedOut),
		changed: mk(color.FgMagenta),
		deleted: mk(color.FgRed),
	}
}

func (r *Renderer) Added(t tasks.Task) {
	fmt.Fprintln(r.w, r.added.Sprintf("Added: %d: %s", t.ID, t.Description))
}

func (r *Renderer) List(todos []tasks.Task) {
	if len(todos) == 0 {
		fmt.Fprintln(r.w, "No todos.")
		return
	}
	for _, t := range todos {
		if t.Status {
			fmt.Fprintln(r.w, r.done.Sprintf("%d: %s", t.ID, strike(t.Description)))
			continue
		}
		fmt.Fprintln(r.w, r.open.Sprintf("%d: %s", t.ID, t.Description))
	}
}

func (r *Renderer) Completed(t tasks.Task) {
	fmt.Fprintln(r.w, r.changed.Sprintf("Completed: %d: %s", t.ID, t.Description))
}

func (r *Renderer) Reopened(t tasks.Task) {
	fmt.Fprintln(r.w, r.changed.Sprintf("Reopened: %d: %s", t.ID, t.Description))
}

func (r *Renderer) Deleted(id int64) {
	fmt.Fprintln(r.w, r.deleted.Sprintf("Deleted: %d", id))
}

// strike follows every rune with U+0336 so the cross-out shows even when
// color is off.
func strike(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		b.WriteRune(r)
		b.WriteRune('\u0336')
	}
	return b.String()
}

// useColor resolves the color mode for w. auto colors only terminals and
// respects NO_COLOR.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
