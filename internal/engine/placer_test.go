package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SheetLink/internal/model"
)

var sheetBox = model.BoundingBox{Min: model.Point{X: 0, Y: 0}, Max: model.Point{X: 1000, Y: 500}}

func TestPlaceStart(t *testing.T) {
	s := model.DefaultCutlineSettings()
	specs := Place(sheetBox, model.RoleStart, "refer - A", false, s)
	require.Len(t, specs, 1)

	c := specs[0]
	assert.Equal(t, model.RoleStart, c.Role)
	assert.Equal(t, model.Point{X: 280, Y: 125}, c.SegmentStart)
	assert.Equal(t, model.Point{X: 280, Y: 405}, c.SegmentEnd)
	assert.Equal(t, model.Point{X: 285, Y: 270}, c.AnnotationAnchor)
	assert.Equal(t, 90.0, c.AnnotationRotation)
	assert.Equal(t, "refer - A", c.AnnotationText)
	assert.False(t, c.IsLeadCutline)
}

func TestPlaceStartLeadShiftsTextBack(t *testing.T) {
	s := model.DefaultCutlineSettings()
	c := Place(sheetBox, model.RoleStart, "x", true, s)[0]
	assert.Equal(t, model.Point{X: 255, Y: 270}, c.AnnotationAnchor)
	assert.True(t, c.IsLeadCutline)
}

func TestPlaceEnd(t *testing.T) {
	s := model.DefaultCutlineSettings()
	specs := Place(sheetBox, model.RoleEnd, "refer - C", false, s)
	require.Len(t, specs, 1)

	c := specs[0]
	assert.Equal(t, model.RoleEnd, c.Role)
	assert.Equal(t, model.Point{X: 720, Y: 120}, c.SegmentStart)
	assert.Equal(t, model.Point{X: 720, Y: 400}, c.SegmentEnd)
	assert.Equal(t, model.Point{X: 725, Y: 265}, c.AnnotationAnchor)
}

func TestPlaceBothForcesEndNotLead(t *testing.T) {
	s := model.DefaultCutlineSettings()
	specs := Place(sheetBox, model.RoleBoth, "x", true, s)
	require.Len(t, specs, 2)

	assert.Equal(t, model.RoleStart, specs[0].Role)
	assert.Equal(t, model.RoleEnd, specs[1].Role)
	assert.True(t, specs[0].IsLeadCutline)
	assert.False(t, specs[1].IsLeadCutline)
	assert.InDelta(t, 5.0, specs[1].AnnotationAnchor.X-specs[1].Midpoint().X, 1e-9)
}

func TestPlaceUnknownRole(t *testing.T) {
	assert.Empty(t, Place(sheetBox, model.CutlineRole(42), "x", false, model.DefaultCutlineSettings()))
}

func TestEndCutlineXClampsNarrowLayouts(t *testing.T) {
	s := model.DefaultCutlineSettings()
	narrow := model.BoundingBox{Min: model.Point{X: 100}, Max: model.Point{X: 600}}
	assert.Equal(t, 350.0, EndCutlineX(narrow, s))

	// At exactly 2*clearance + offset the candidate is still rejected.
	edge := model.BoundingBox{Min: model.Point{X: 0}, Max: model.Point{X: 780}}
	assert.Equal(t, 250.0, EndCutlineX(edge, s))
}

func TestEndCutlineXClearanceInvariant(t *testing.T) {
	s := model.DefaultCutlineSettings()
	threshold := 2*s.MinClearance + s.Offset
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 500; trial++ {
		minX := rng.Float64()*4000 - 2000
		width := rng.Float64() * 3000
		b := model.BoundingBox{Min: model.Point{X: minX}, Max: model.Point{X: minX + width}}

		x := EndCutlineX(b, s)
		if width >= threshold {
			assert.Greater(t, x, minX+s.MinClearance-1e-9, "width %g", width)
		} else {
			assert.Equal(t, minX+s.MinClearance, x, "width %g", width)
		}
	}
}
