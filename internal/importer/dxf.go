package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/SheetLink/internal/model"
)

// Sampling density used when measuring curved geometry.
const (
	arcSegments   = 32
	bulgeSegments = 32
)

// OpenDXF opens a DXF file and returns the drawing together with its
// entities wrapped as opaque layout entities.
func OpenDXF(path string) (*drawing.Drawing, []model.Entity, error) {
	d, err := dxf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open DXF file %s: %w", path, err)
	}
	return d, Entities(d), nil
}

// Entities wraps every entity of a drawing as a model.Entity.
func Entities(d *drawing.Drawing) []model.Entity {
	ents := d.Entities()
	out := make([]model.Entity, 0, len(ents))
	for _, e := range ents {
		out = append(out, e)
	}
	return out
}

// EntityBounds measures a DXF entity. LINE, LWPOLYLINE (including bulge
// arcs), CIRCLE, ARC and TEXT are supported; any other entity, or a value that
// is not a DXF entity at all, has no usable bounds.
func EntityBounds(e model.Entity) (model.BoundingBox, bool) {
	switch ent := e.(type) {
	case *entity.Line:
		return model.BoxOf(toPoint(ent.Start), toPoint(ent.End))

	case *entity.LwPolyline:
		return model.BoxOf(lwPolylinePoints(ent)...)

	case *entity.Circle:
		c := toPoint(ent.Center)
		r := ent.Radius
		return model.NewBoundingBox(c.Translate(-r, -r), c.Translate(r, r)), true

	case *entity.Arc:
		return model.BoxOf(arcToPoints(ent, arcSegments)...)

	case *entity.Text:
		// Glyph extents depend on the font; only the insertion point is known.
		return model.BoxOf(toPoint(ent.Coord1))

	default:
		// Unsupported entity types are silently skipped
		return model.BoundingBox{}, false
	}
}

// toPoint converts a DXF coordinate slice to a Point. Missing components are zero.
func toPoint(c []float64) model.Point {
	var p model.Point
	if len(c) > 0 {
		p.X = c[0]
	}
	if len(c) > 1 {
		p.Y = c[1]
	}
	if len(c) > 2 {
		p.Z = c[2]
	}
	return p
}

// lwPolylinePoints returns the vertices of a LWPOLYLINE. Bulge values on
// vertices produce interpolated arc points. The last vertex only connects
// back to the first on closed polylines.
func lwPolylinePoints(lw *entity.LwPolyline) []model.Point {
	var pts []model.Point

	for i := 0; i < len(lw.Vertices); i++ {
		current := toPoint(lw.Vertices[i])

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		last := i == len(lw.Vertices)-1
		if math.Abs(bulge) > 1e-9 && len(lw.Vertices) > 1 && (!last || lw.Closed) {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := toPoint(lw.Vertices[nextIdx])
			arcPts := bulgeArcPoints(current, next, bulge, bulgeSegments)
			// The next vertex is added by its own iteration
			pts = append(pts, arcPts[:len(arcPts)-1]...)
		} else {
			pts = append(pts, current)
		}
	}

	return pts
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 model.Point, bulge float64, numSegments int) []model.Point {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return []model.Point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// Center lies on the chord's perpendicular bisector, left of the chord
	// for counter-clockwise (positive) bulges.
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make([]model.Point, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, model.Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
			Z: p1.Z,
		})
	}
	return pts
}

// arcToPoints converts a DXF ARC entity to a series of points along the arc.
func arcToPoints(a *entity.Arc, numSegments int) []model.Point {
	center := toPoint(a.Circle.Center)
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]model.Point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = model.Point{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
			Z: center.Z,
		}
	}
	return pts
}
