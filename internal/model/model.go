package model

import "math"

// Point represents a 3D drawing coordinate in drawing units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2, Z: (p.Z + q.Z) / 2}
}

// Translate shifts the point by dx, dy.
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy, Z: p.Z}
}

// BoundingBox is an axis-aligned box enclosing a set of entities.
// Min is component-wise less than or equal to Max.
type BoundingBox struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// NewBoundingBox builds the box spanned by two arbitrary corners.
func NewBoundingBox(a, b Point) BoundingBox {
	return BoundingBox{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// BoxOf returns the bounding box of the given points. ok is false when pts is empty.
func BoxOf(pts ...Point) (box BoundingBox, ok bool) {
	var acc *BoundingBox
	for _, p := range pts {
		merged := MergeBox(acc, BoundingBox{Min: p, Max: p})
		acc = &merged
	}
	if acc == nil {
		return BoundingBox{}, false
	}
	return *acc, true
}

// MergeBox folds next into existing. A nil existing box yields next unchanged;
// otherwise the result is the component-wise min of the Min corners and max of
// the Max corners. The operation is commutative and associative.
func MergeBox(existing *BoundingBox, next BoundingBox) BoundingBox {
	if existing == nil {
		return next
	}
	return BoundingBox{
		Min: Point{
			X: math.Min(existing.Min.X, next.Min.X),
			Y: math.Min(existing.Min.Y, next.Min.Y),
			Z: math.Min(existing.Min.Z, next.Min.Z),
		},
		Max: Point{
			X: math.Max(existing.Max.X, next.Max.X),
			Y: math.Max(existing.Max.Y, next.Max.Y),
			Z: math.Max(existing.Max.Z, next.Max.Z),
		},
	}
}

// Center returns the center point of the box.
func (b BoundingBox) Center() Point {
	return b.Min.Midpoint(b.Max)
}

// Width returns the extent along X.
func (b BoundingBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the extent along Y.
func (b BoundingBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Entity is an opaque drawable owned by the drawing store. Only the store
// knows how to measure it.
type Entity interface{}

// Layout is one sheet of a multi-sheet drawing.
type Layout struct {
	Name         string   `json:"name"`
	IsModelSpace bool     `json:"is_model_space"`
	Entities     []Entity `json:"-"`
}

// CutlineRole identifies which edge of a layout a cutline marks.
type CutlineRole int

const (
	RoleStart CutlineRole = iota // Continuation from the previous sheet
	RoleEnd                      // Continuation onto the next sheet
	RoleBoth                     // Start followed by End
)

func (r CutlineRole) String() string {
	switch r {
	case RoleStart:
		return "Start"
	case RoleEnd:
		return "End"
	case RoleBoth:
		return "Both"
	default:
		return "Unknown"
	}
}

// CutlineSpec is one computed cutline segment and its annotation.
type CutlineSpec struct {
	Role               CutlineRole `json:"role"`
	SegmentStart       Point       `json:"segment_start"`
	SegmentEnd         Point       `json:"segment_end"`
	AnnotationText     string      `json:"annotation_text"`
	AnnotationAnchor   Point       `json:"annotation_anchor"`
	AnnotationRotation float64     `json:"annotation_rotation"` // degrees
	IsLeadCutline      bool        `json:"is_lead_cutline"`
}

// Midpoint returns the midpoint of the cutline segment.
func (c CutlineSpec) Midpoint() Point {
	return c.SegmentStart.Midpoint(c.SegmentEnd)
}

// OutcomeStatus describes what happened to a single layout.
type OutcomeStatus string

const (
	OutcomeCreated OutcomeStatus = "created"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeAborted OutcomeStatus = "aborted"
)

// SkipReason explains a skipped layout.
type SkipReason string

const (
	SkipNone        SkipReason = ""
	SkipEmptyLayout SkipReason = "empty_layout"
)

// LayoutOutcome is the per-layout result of a sequencing run.
type LayoutOutcome struct {
	Layout   string        `json:"layout"`
	Index    int           `json:"index"`
	Status   OutcomeStatus `json:"status"`
	Reason   SkipReason    `json:"reason,omitempty"`
	Box      *BoundingBox  `json:"box,omitempty"`
	Cutlines []CutlineSpec `json:"cutlines,omitempty"`
}

// RunStatus is the overall result of a generation run.
type RunStatus string

const (
	RunCompleted           RunStatus = "completed"
	RunInsufficientLayouts RunStatus = "insufficient_layouts"
	RunAborted             RunStatus = "aborted"
)

// Summary reports the result of generating cutlines across a sheet set.
type Summary struct {
	RunID            string          `json:"run_id"`
	Status           RunStatus       `json:"status"`
	LayoutsProcessed int             `json:"layouts_processed"`
	LayoutsSkipped   int             `json:"layouts_skipped"`
	CutlinesCreated  int             `json:"cutlines_created"`
	Outcomes         []LayoutOutcome `json:"outcomes"`
	Error            string          `json:"error,omitempty"`
}

// Neighbors returns the names of the layouts before and after index i in the
// processed outcome list. Missing neighbours are empty strings.
func (s Summary) Neighbors(i int) (prev, next string) {
	if i > 0 && i-1 < len(s.Outcomes) {
		prev = s.Outcomes[i-1].Layout
	}
	if i+1 < len(s.Outcomes) {
		next = s.Outcomes[i+1].Layout
	}
	return prev, next
}

// SheetRef points a named layout at the DXF file holding its geometry.
type SheetRef struct {
	Name       string `json:"name"`
	File       string `json:"file"`
	ModelSpace bool   `json:"model_space,omitempty"`
}
