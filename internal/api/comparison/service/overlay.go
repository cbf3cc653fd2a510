package comparisonService

import (
	"PostureRefine/internal/entity"
	"fmt"
	"strconv"
	"strings"
)

// Overlay geometry lives on the landmark [0,1000] scale and is mapped to a
// 100x100 viewBox (v / 10, i.e. percent). The whole overlay group replays
// the photo transform about the viewport center, which is what keeps it
// pixel-aligned with the image under any pan/zoom/flip.

const (
	ColorBefore = "#64748b"
	ColorAfter  = "#3b82f6"
)

type OverlayStyle struct {
	Color   string
	Opacity float64
	Ghost   bool
}

// ProjectPoint maps a normalized landmark coordinate to viewport percent.
func ProjectPoint(p entity.Point2D) (x, y float64) {
	return p.X / 10, p.Y / 10
}

// BodyPathPoints collects the skeletal polyline in anatomical order: head,
// ear, shoulder, the spine curve, hip, knee, ankle, heel. Absent points are
// filtered so a partial set still yields a drawable path.
func BodyPathPoints(l *entity.PostureLandmarks) []entity.Point2D {
	if l == nil {
		return nil
	}

	candidates := make([]*entity.Point2D, 0, 7+len(l.SpinePath))
	candidates = append(candidates, l.Head, l.Ear, l.Shoulder)
	for i := range l.SpinePath {
		candidates = append(candidates, &l.SpinePath[i])
	}
	candidates = append(candidates, l.Hip, l.Knee, l.Ankle, l.Heel)

	points := make([]entity.Point2D, 0, len(candidates))
	for _, p := range candidates {
		if p != nil {
			points = append(points, *p)
		}
	}
	return points
}

// TransformAttr replays the photo transform as an SVG group transform in the
// same order the alignment editor applied it: scale, translate, flip, with
// the origin moved to the viewport center.
func TransformAttr(photo entity.PhotoData) string {
	flip := 1.0
	if photo.IsFlipped {
		flip = -1.0
	}

	return fmt.Sprintf(
		"translate(50 50) scale(%s) translate(%s %s) scale(%s 1) translate(-50 -50)",
		fmtF(photo.Scale), fmtF(photo.Offset.X), fmtF(photo.Offset.Y), fmtF(flip),
	)
}

// RenderOverlaySVG produces the vector overlay for one landmark set over one
// photo. Missing head or heel anchors make the overlay unrenderable; the
// result is then an empty string, never an error.
func RenderOverlaySVG(l *entity.PostureLandmarks, style OverlayStyle, photo entity.PhotoData) string {
	if l == nil || l.Head == nil || l.Heel == nil {
		return ""
	}

	if style.Opacity <= 0 || style.Opacity > 1 {
		style.Opacity = 1
	}

	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" preserveAspectRatio="none">`)
	fmt.Fprintf(&sb, `<g transform="%s" opacity="%s">`, TransformAttr(photo), fmtF(style.Opacity))

	// Plumb line from head to heel as a faint vertical reference.
	headX, headY := ProjectPoint(*l.Head)
	_, heelY := ProjectPoint(*l.Heel)
	fmt.Fprintf(&sb,
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="0.15" stroke-dasharray="1,2" stroke-opacity="0.3"/>`,
		fmtF(headX), fmtF(headY), fmtF(headX), fmtF(heelY), style.Color,
	)

	if d := bodyPathData(l); d != "" {
		strokeWidth, dashArray := "1.0", "none"
		if style.Ghost {
			strokeWidth, dashArray = "0.6", "2,2"
		}
		fmt.Fprintf(&sb,
			`<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-dasharray="%s" stroke-linecap="round" stroke-linejoin="round"/>`,
			d, style.Color, strokeWidth, dashArray,
		)
	}

	markerR, markerOpacity := 1.0, 1.0
	if style.Ghost {
		markerR, markerOpacity = 0.5, 0.6
	}
	for _, p := range []*entity.Point2D{l.Head, l.Ear, l.Shoulder, l.Hip, l.Knee, l.Ankle, l.Heel} {
		if p == nil {
			continue
		}
		x, y := ProjectPoint(*p)
		fmt.Fprintf(&sb,
			`<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="#ffffff" stroke-width="0.2" opacity="%s"/>`,
			fmtF(x), fmtF(y), fmtF(markerR), style.Color, fmtF(markerOpacity),
		)
	}

	sb.WriteString(`</g></svg>`)
	return sb.String()
}

// bodyPathData builds the SVG path for the skeletal polyline; a path needs
// at least two surviving points.
func bodyPathData(l *entity.PostureLandmarks) string {
	points := BodyPathPoints(l)
	if len(points) < 2 {
		return ""
	}

	segments := make([]string, 0, len(points))
	for _, p := range points {
		x, y := ProjectPoint(p)
		segments = append(segments, fmtF(x)+" "+fmtF(y))
	}
	return "M " + strings.Join(segments, " L ")
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
