// Package engine computes continuation cutlines for an ordered set of
// drawing layouts and drives their creation through a drawing store.
package engine

import "github.com/piwi3910/SheetLink/internal/model"

// Place computes the cutlines for a layout with the given extents. RoleBoth
// yields a Start cutline followed by an End cutline; the End half of a Both
// placement is never a lead cutline.
func Place(box model.BoundingBox, role model.CutlineRole, text string, lead bool, s model.CutlineSettings) []model.CutlineSpec {
	switch role {
	case model.RoleStart:
		return []model.CutlineSpec{placeStart(box, text, lead, s)}
	case model.RoleEnd:
		return []model.CutlineSpec{placeEnd(box, text, lead, s)}
	case model.RoleBoth:
		return []model.CutlineSpec{
			placeStart(box, text, lead, s),
			placeEnd(box, text, false, s),
		}
	default:
		return nil
	}
}

// placeStart puts a vertical cutline Offset units in from the left edge.
func placeStart(box model.BoundingBox, text string, lead bool, s model.CutlineSettings) model.CutlineSpec {
	x := box.Min.X + s.Offset
	return verticalCutline(model.RoleStart, x, box.Center().Y+s.StartBias, text, lead, s)
}

// placeEnd puts a vertical cutline Offset units in from the right edge,
// clamped so it stays at least MinClearance right of the left edge.
func placeEnd(box model.BoundingBox, text string, lead bool, s model.CutlineSettings) model.CutlineSpec {
	return verticalCutline(model.RoleEnd, EndCutlineX(box, s), box.Center().Y+s.EndBias, text, lead, s)
}

// EndCutlineX returns the x position of an End cutline. Narrow layouts, where
// the right-hand candidate would come within MinClearance of the left-hand
// clearance line, clamp to Min.X + MinClearance.
func EndCutlineX(box model.BoundingBox, s model.CutlineSettings) float64 {
	candidate := box.Max.X - s.Offset
	floor := box.Min.X + s.MinClearance
	if candidate-s.MinClearance > floor {
		return candidate
	}
	return floor
}

func verticalCutline(role model.CutlineRole, x, centerY float64, text string, lead bool, s model.CutlineSettings) model.CutlineSpec {
	half := s.Length / 2
	start := model.Point{X: x, Y: centerY - half}
	end := model.Point{X: x, Y: centerY + half}

	dx := s.TextOffset
	if lead {
		dx = s.LeadTextOffset
	}

	return model.CutlineSpec{
		Role:               role,
		SegmentStart:       start,
		SegmentEnd:         end,
		AnnotationText:     text,
		AnnotationAnchor:   start.Midpoint(end).Translate(dx, s.TextRise),
		AnnotationRotation: s.TextRotation,
		IsLeadCutline:      lead,
	}
}
