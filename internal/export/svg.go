// Package export renders recorded runs to standalone artifacts.
package export

import (
	"fmt"
	"strings"
)

// Path colors cycle when a run has more bodies than entries.
var palette = []string{
	"#00ff87", "#5fd7ff", "#ff6b6b", "#ffd75f", "#af87ff", "#ff87d7",
}

// TrajectoriesToSVG draws the xy projection of each body's path across
// the sampled snapshots. Rows of states are flattened per-body records
// (px, py, pz, vx, vy, vz); maxBodies caps how many paths are drawn,
// starting from index 0 so the planets always make the cut.
func TrajectoriesToSVG(states [][]float64, width, height, maxBodies int) string {
	if len(states) < 2 || len(states[0]) < 6 {
		return ""
	}

	bodies := len(states[0]) / 6
	if maxBodies > 0 && bodies > maxBodies {
		bodies = maxBodies
	}

	minX, maxX := states[0][0], states[0][0]
	minY, maxY := states[0][1], states[0][1]
	for _, s := range states {
		for b := 0; b < bodies; b++ {
			x, y := s[b*6], s[b*6+1]
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for b := 0; b < bodies; b++ {
		color := palette[b%len(palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.2" d="M`, color))

		for i, s := range states {
			x := (s[b*6] - minX) / rangeX * float64(width)
			y := float64(height) - (s[b*6+1]-minY)/rangeY*float64(height)

			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}

		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
