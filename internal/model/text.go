package model

// HorizontalAlign mirrors the DXF TEXT horizontal justification codes.
type HorizontalAlign int

const (
	AlignLeft   HorizontalAlign = 0
	AlignCenter HorizontalAlign = 1
	AlignRight  HorizontalAlign = 2
)

// VerticalAlign mirrors the DXF TEXT vertical justification codes.
type VerticalAlign int

const (
	AlignBaseline VerticalAlign = 0
	AlignBottom   VerticalAlign = 1
	AlignMiddle   VerticalAlign = 2
	AlignTop      VerticalAlign = 3
)

// TextSpec describes a single-line text entity to be created by a drawing store.
type TextSpec struct {
	Position        Point           `json:"position"`
	Text            string          `json:"text"`
	Height          float64         `json:"height"`
	Rotation        float64         `json:"rotation"` // degrees
	HorizontalAlign HorizontalAlign `json:"horizontal_align"`
	VerticalAlign   VerticalAlign   `json:"vertical_align"`
	AlignmentAnchor Point           `json:"alignment_anchor"`
}

// Annotation builds the text entity for a cutline's annotation, centered
// horizontally on the annotation anchor with the bottom of the text on it.
// DXF writers only emit an alignment point when both justification codes are
// set, so center/bottom stands in for center/baseline.
func (c CutlineSpec) Annotation(height float64) TextSpec {
	return TextSpec{
		Position:        c.AnnotationAnchor,
		Text:            c.AnnotationText,
		Height:          height,
		Rotation:        c.AnnotationRotation,
		HorizontalAlign: AlignCenter,
		VerticalAlign:   AlignBottom,
		AlignmentAnchor: c.AnnotationAnchor,
	}
}
