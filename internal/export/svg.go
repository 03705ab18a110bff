package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/suikasim/internal/physics"
)

// BoardToSVG draws a board in world coordinates: balls in tier colors and
// the warning line at lineY.
func BoardToSVG(p physics.Params, lineY float64, balls []physics.Ball, score int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#181410"/>
<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke="#ff6961" stroke-width="4" stroke-dasharray="16 12"/>
<g stroke="#000000" stroke-opacity="0.3" stroke-width="3">
`, p.Width, p.Height, p.Width, p.Height, lineY, p.Width, lineY))

	for _, b := range balls {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.X, b.Y, b.Radius, physics.Hex(b.Level)))
	}

	sb.WriteString(fmt.Sprintf(`</g>
<text x="20" y="60" font-family="monospace" font-size="48" fill="#fff5e6">%d</text>
</svg>`, score))
	return sb.String()
}

// ScoreCurveToSVG plots a score history as a polyline.
func ScoreCurveToSVG(scores []int, width, height int, strokeColor string) string {
	if len(scores) < 2 {
		return ""
	}

	maxScore := scores[0]
	for _, s := range scores {
		maxScore = max(maxScore, s)
	}
	top := float64(maxScore)
	if top == 0 {
		top = 1
	}
	pad := 0.05 * float64(height)
	span := float64(height) - 2*pad

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	last := float64(len(scores) - 1)
	for i, s := range scores {
		x := float64(i) / last * float64(width)
		y := float64(height) - pad - float64(s)/top*span

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
