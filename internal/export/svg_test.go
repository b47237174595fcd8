package export

import (
	"strings"
	"testing"
)

func TestTrajectoriesToSVGOnePathPerBody(t *testing.T) {
	states := [][]float64{
		{0, 0, 0, 0, 0, 0, 3, 1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0, 0, 4, 2, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 5, 1, 0, 0, 0, 0},
	}

	svg := TrajectoriesToSVG(states, 400, 300, 0)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Fatalf("missing XML header")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("path count = %d, want 2", got)
	}
}

func TestTrajectoriesToSVGCapsBodies(t *testing.T) {
	states := [][]float64{
		make([]float64, 5*6),
		make([]float64, 5*6),
	}
	states[1][0] = 1

	svg := TrajectoriesToSVG(states, 400, 300, 2)
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("path count = %d, want 2", got)
	}
}

func TestTrajectoriesToSVGEmptyInput(t *testing.T) {
	if svg := TrajectoriesToSVG(nil, 400, 300, 0); svg != "" {
		t.Errorf("expected empty output, got %d bytes", len(svg))
	}
	if svg := TrajectoriesToSVG([][]float64{{1, 2, 3, 4, 5, 6}}, 400, 300, 0); svg != "" {
		t.Errorf("single snapshot should produce no paths")
	}
}
