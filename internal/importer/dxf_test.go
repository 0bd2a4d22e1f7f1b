package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/SheetLink/internal/engine"
	"github.com/piwi3910/SheetLink/internal/model"
)

func TestEntityBounds_Line(t *testing.T) {
	line := &entity.Line{Start: []float64{100, 20, 0}, End: []float64{-5, 80, 3}}

	box, ok := EntityBounds(line)
	require.True(t, ok)
	assert.Equal(t, model.Point{X: -5, Y: 20, Z: 0}, box.Min)
	assert.Equal(t, model.Point{X: 100, Y: 80, Z: 3}, box.Max)
}

func TestEntityBounds_Circle(t *testing.T) {
	c := &entity.Circle{Center: []float64{50, 50, 0}, Radius: 10}

	box, ok := EntityBounds(c)
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 40, Y: 40}, box.Min)
	assert.Equal(t, model.Point{X: 60, Y: 60}, box.Max)
}

func TestEntityBounds_LwPolyline(t *testing.T) {
	lw := &entity.LwPolyline{
		Vertices: [][]float64{{0, 0}, {200, 0}, {200, 100}, {0, 100}},
	}

	box, ok := EntityBounds(lw)
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 0, Y: 0}, box.Min)
	assert.Equal(t, model.Point{X: 200, Y: 100}, box.Max)
}

func TestEntityBounds_LwPolylineBulge(t *testing.T) {
	// A bulge of 1 on the first segment is a semicircle of radius 50 that
	// swings below the chord from (0,0) to (100,0).
	lw := &entity.LwPolyline{
		Vertices: [][]float64{{0, 0}, {100, 0}},
		Bulges:   []float64{1, 0},
	}

	box, ok := EntityBounds(lw)
	require.True(t, ok)
	assert.InDelta(t, 0.0, box.Min.X, 1e-6)
	assert.InDelta(t, 100.0, box.Max.X, 1e-6)
	assert.InDelta(t, 50.0, box.Max.Y-box.Min.Y, 1e-6, "semicircle sagitta should equal radius")
}

func TestEntityBounds_LwPolylineClosingBulge(t *testing.T) {
	// The bulge on the last vertex only describes a segment when the
	// polyline closes back to the first vertex.
	open := &entity.LwPolyline{
		Vertices: [][]float64{{0, 0}, {100, 0}},
		Bulges:   []float64{0, 1},
	}
	box, ok := EntityBounds(open)
	require.True(t, ok)
	assert.InDelta(t, 0.0, box.Height(), 1e-9)

	closed := &entity.LwPolyline{
		Closed:   true,
		Vertices: [][]float64{{0, 0}, {100, 0}},
		Bulges:   []float64{0, 1},
	}
	box, ok = EntityBounds(closed)
	require.True(t, ok)
	assert.InDelta(t, 50.0, box.Max.Y, 1e-6)
	assert.InDelta(t, 0.0, box.Min.Y, 1e-6)
}

func TestBulgeArcPointsMinorArc(t *testing.T) {
	// Bulge 0.5 over a 100 unit chord has a sagitta of 25. Positive bulges
	// run counter-clockwise, so the arc dips below the chord.
	pts := bulgeArcPoints(model.Point{X: 0, Y: 0}, model.Point{X: 100, Y: 0}, 0.5, 32)
	box, ok := model.BoxOf(pts...)
	require.True(t, ok)
	assert.InDelta(t, -25.0, box.Min.Y, 1e-6)
	assert.InDelta(t, 0.0, box.Max.Y, 1e-6)

	pts = bulgeArcPoints(model.Point{X: 0, Y: 0}, model.Point{X: 100, Y: 0}, -0.5, 32)
	box, ok = model.BoxOf(pts...)
	require.True(t, ok)
	assert.InDelta(t, 25.0, box.Max.Y, 1e-6)
	assert.InDelta(t, 0.0, box.Min.Y, 1e-6)
}

func TestEntityBounds_Text(t *testing.T) {
	text := &entity.Text{Coord1: []float64{12, 34, 0}, Value: "NOTE"}

	box, ok := EntityBounds(text)
	require.True(t, ok)
	assert.Equal(t, box.Min, box.Max)
	assert.Equal(t, model.Point{X: 12, Y: 34}, box.Min)
}

func TestEntityBounds_Unsupported(t *testing.T) {
	_, ok := EntityBounds("not an entity")
	assert.False(t, ok)
	_, ok = EntityBounds(nil)
	assert.False(t, ok)
}

func TestBulgeArcPointsDegenerateChord(t *testing.T) {
	p := model.Point{X: 1, Y: 1}
	pts := bulgeArcPoints(p, p, 1, 8)
	assert.Len(t, pts, 2)
}

func TestOpenDXFResolvesExtent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.dxf")

	d := dxf.NewDrawing()
	_, err := d.Line(0, 0, 0, 1000, 0, 0)
	require.NoError(t, err)
	_, err = d.Line(1000, 0, 0, 1000, 500, 0)
	require.NoError(t, err)
	_, err = d.Circle(500, 250, 0, 100)
	require.NoError(t, err)
	require.NoError(t, d.SaveAs(path))

	_, entities, err := OpenDXF(path)
	require.NoError(t, err)
	require.Len(t, entities, 3)

	box, ok := engine.ResolveExtent(entities, EntityBounds)
	require.True(t, ok)
	assert.InDelta(t, 0.0, box.Min.X, 1e-9)
	assert.InDelta(t, 0.0, box.Min.Y, 1e-9)
	assert.InDelta(t, 1000.0, box.Max.X, 1e-9)
	assert.InDelta(t, 500.0, box.Max.Y, 1e-9)
}

func TestOpenDXFMissingFile(t *testing.T) {
	_, _, err := OpenDXF(filepath.Join(t.TempDir(), "missing.dxf"))
	assert.Error(t, err)
}
