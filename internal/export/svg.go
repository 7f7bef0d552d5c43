// Package export writes static pictures of a scene.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/viz"
)

const background = "#0a0a0a"

// OrbitMapOptions controls the top-down map.
type OrbitMapOptions struct {
	Size int
	// Extent is the half-width of the mapped area in scene units. Zero
	// fits every orbit and belt.
	Extent float64
	// MinRadius keeps small bodies visible, in pixels.
	MinRadius float64
	Labels    bool
}

// OrbitMap draws the scene seen from above (+Y) onto the XZ plane: orbit
// paths, belt particles and one disc per body at its current position.
func OrbitMap(w io.Writer, sc *scene.Scene, opts OrbitMapOptions) error {
	if opts.Size <= 0 {
		opts.Size = 800
	}
	if opts.MinRadius <= 0 {
		opts.MinRadius = 1.5
	}
	if opts.Extent <= 0 {
		opts.Extent = extent(sc)
	}
	size := float64(opts.Size)
	scale := size / (2 * opts.Extent)
	to := func(x, z float64) (float64, float64) {
		return size/2 + x*scale, size/2 + z*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Size, opts.Size, opts.Size, opts.Size, background)

	var discs, labels strings.Builder
	sc.Graph.Walk(func(n *scene.Node, world scene.Frame) {
		if n.ID == sc.Background {
			return
		}
		switch n.Kind {
		case scene.Path:
			cx, cy := to(world.Origin.X, world.Origin.Z)
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#444" stroke-width="0.5"/>
`, cx, cy, n.Radius*world.Scale*scale)

		case scene.Points:
			fmt.Fprintf(&sb, `<g fill="%s">
`, hex(n))
			for _, p := range n.Points {
				wp := world.Apply(p)
				x, y := to(wp.X, wp.Z)
				if x < 0 || y < 0 || x > size || y > size {
					continue
				}
				fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="1" height="1"/>
`, x, y)
			}
			sb.WriteString("</g>\n")

		case scene.Sphere:
			if n.Material != nil && n.Material.Opacity < 1 {
				return
			}
			x, y := to(world.Origin.X, world.Origin.Z)
			r := math.Max(n.Radius*world.Scale*scale, opts.MinRadius)
			fmt.Fprintf(&discs, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, hex(n))
			if opts.Labels && n.Info != nil {
				fmt.Fprintf(&labels, `<text x="%.1f" y="%.1f" fill="#ccc" font-size="10" font-family="monospace">%s</text>
`, x+r+2, y-r-2, n.Info.Name)
			}
		}
	})

	sb.WriteString(discs.String())
	sb.WriteString(labels.String())
	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// extent is the largest orbit, ring or belt radius plus a margin.
func extent(sc *scene.Scene) float64 {
	r := 1.0
	for _, b := range sc.Bodies {
		if b.Host == nil {
			r = math.Max(r, b.Spec.Distance)
		}
	}
	for _, b := range sc.Belts {
		r = math.Max(r, b.Spec.Outer)
	}
	return r * 1.05
}

func hex(n *scene.Node) string {
	if n.Material == nil {
		return "#aaaaaa"
	}
	return n.Material.Color().Clamped().Hex()
}

// CanvasToSVG redraws a terminal canvas as SVG, one circle per dot,
// keeping each cell's color.
func CanvasToSVG(w io.Writer, c *viz.Canvas, scale float64) error {
	if c == nil {
		return fmt.Errorf("nil canvas")
	}
	if scale <= 0 {
		scale = 4
	}
	width := float64(c.PixelWidth()) * scale
	height := float64(c.PixelHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	dot := scale * 0.4
	white := colorful.Color{R: 1, G: 1, B: 1}
	for y := 0; y < c.PixelHeight(); y++ {
		for x := 0; x < c.PixelWidth(); x++ {
			if !c.IsSet(x, y) {
				continue
			}
			col := c.Colors[y/4][x/2]
			if col == (colorful.Color{}) {
				col = white
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dot, col.Clamped().Hex())
		}
	}
	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
