package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetLightsSinglePixel(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)

	out := c.String()
	if !strings.HasPrefix(out, "⠁") {
		t.Errorf("first cell = %q, want dot 1 lit", out[:1])
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected one line per row")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -3)
	c.Set(100, 100)

	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			t.Fatalf("unexpected lit cell %q", r)
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.FillCircle(3, 6, 2)
	c.Clear()

	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			t.Fatalf("clear left lit cell %q", r)
		}
	}
}
