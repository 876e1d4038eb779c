package export

import (
	"math"

	"github.com/pyhub-apps/inkdoc-golang/pkg/document"
	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
)

// ruleLine is one line of background ruling in page coordinates
type ruleLine struct {
	from, to geom.Point
	color    element.Color
}

// ruling is the paper of a page as drawing primitives
type ruling struct {
	paper element.Color
	fill  bool // paint the paper color
	lines []ruleLine
	dots  []geom.Point
}

// pageRuling returns what to draw below the layers of p
func pageRuling(p *document.Page, mode ExportBackground) ruling {
	var r ruling
	if mode == BackgroundNone {
		return r
	}
	r.paper = p.Background.Color
	r.fill = true
	if p.Background.Kind == document.BackgroundPDF {
		// annotations only, the paper is the source PDF page
		r.paper = element.White
	}
	if mode != BackgroundAll {
		return r
	}

	w, h := p.Width, p.Height
	switch p.Background.Kind {
	case document.BackgroundLined:
		for y := document.HeaderHeight; y < h; y += document.LineSpacing {
			r.lines = append(r.lines, ruleLine{geom.Point{X: 0, Y: y}, geom.Point{X: w, Y: y}, document.RulingColor})
		}
		if document.MarginLeft < w {
			r.lines = append(r.lines, ruleLine{
				geom.Point{X: document.MarginLeft, Y: 0},
				geom.Point{X: document.MarginLeft, Y: h},
				document.MarginColor,
			})
		}
	case document.BackgroundGraph:
		for x := gridStart(w, document.GraphSpacing); x < w; x += document.GraphSpacing {
			r.lines = append(r.lines, ruleLine{geom.Point{X: x, Y: 0}, geom.Point{X: x, Y: h}, document.RulingColor})
		}
		for y := gridStart(h, document.GraphSpacing); y < h; y += document.GraphSpacing {
			r.lines = append(r.lines, ruleLine{geom.Point{X: 0, Y: y}, geom.Point{X: w, Y: y}, document.RulingColor})
		}
	case document.BackgroundDotted:
		for y := gridStart(h, document.DotSpacing); y < h; y += document.DotSpacing {
			for x := gridStart(w, document.DotSpacing); x < w; x += document.DotSpacing {
				r.dots = append(r.dots, geom.Point{X: x, Y: y})
			}
		}
	}
	return r
}

// gridStart centers a grid of the given spacing on a page dimension
func gridStart(size, spacing float64) float64 {
	rest := math.Mod(size, spacing)
	if rest == 0 {
		return spacing
	}
	return rest / 2
}

func (op outputPage) elements() []element.Element {
	var out []element.Element
	for _, l := range op.layers {
		out = append(out, l.Elements()...)
	}
	return out
}

const (
	rulingLineWidth = document.RulingWidth
	rulingDotColor  = document.RulingColor
	rulingDotRadius = document.DotRadius
)
