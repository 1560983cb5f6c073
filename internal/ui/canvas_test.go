package ui

import (
	"testing"

	"github.com/tmux-dojo/dojo/internal/layout"
)

func TestCanvasDrawsBoxAndClipsText(t *testing.T) {
	cv := newCanvas(8, 3)
	cv.box(layout.Rect{W: 8, H: 3}, nil)
	cv.text(1, 1, "hello world", 6, nil)
	want := "┌──────┐\n│hello │\n└──────┘"
	if got := cv.render(); got != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestCanvasCentersAndIgnoresOutOfBounds(t *testing.T) {
	cv := newCanvas(7, 3)
	cv.centerIn(layout.Rect{W: 7, H: 3}, "12", nil)
	cv.set(-1, 0, 'x', nil)
	cv.set(7, 2, 'x', nil)
	want := "       \n  12   \n       "
	if got := cv.render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCanvasEmpty(t *testing.T) {
	if got := newCanvas(-3, 0).render(); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}
