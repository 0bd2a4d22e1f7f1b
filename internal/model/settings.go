package model

import "fmt"

// CutlineSettings holds the calibration values used to place cutlines and
// their annotations. The defaults are tuned for sheets drawn at 1:1 in mm.
type CutlineSettings struct {
	Offset       float64 `json:"offset" toml:"offset"`               // Inset of a cutline from the layout edge
	Length       float64 `json:"length" toml:"length"`               // Cutline segment length
	MinClearance float64 `json:"min_clearance" toml:"min_clearance"` // Minimum gap kept between start and end cutlines

	StartBias float64 `json:"start_bias" toml:"start_bias"` // Vertical shift of start cutlines above box center
	EndBias   float64 `json:"end_bias" toml:"end_bias"`     // Vertical shift of end cutlines above box center

	TextOffset     float64 `json:"text_offset" toml:"text_offset"`           // Horizontal text offset from segment midpoint
	LeadTextOffset float64 `json:"lead_text_offset" toml:"lead_text_offset"` // Horizontal text offset for the lead cutline
	TextRise       float64 `json:"text_rise" toml:"text_rise"`               // Vertical text offset from segment midpoint
	TextHeight     float64 `json:"text_height" toml:"text_height"`
	TextRotation   float64 `json:"text_rotation" toml:"text_rotation"` // degrees

	AnnotationPrefix string `json:"annotation_prefix" toml:"annotation_prefix"`
	Layer            string `json:"layer" toml:"layer"` // Layer receiving generated entities
	Color            int    `json:"color" toml:"color"` // ACI color of the cutline layer
}

// DefaultCutlineSettings returns the standard calibration.
func DefaultCutlineSettings() CutlineSettings {
	return CutlineSettings{
		Offset:           280,
		Length:           280,
		MinClearance:     250,
		StartBias:        15,
		EndBias:          10,
		TextOffset:       5,
		LeadTextOffset:   -25,
		TextRise:         5,
		TextHeight:       2.5,
		TextRotation:     90,
		AnnotationPrefix: "FOR CONTINUATION REFER - ",
		Layer:            "CUTLINE",
		Color:            1,
	}
}

// AnnotationFor returns the annotation text pointing at the named sheet.
func (s CutlineSettings) AnnotationFor(sheet string) string {
	return s.AnnotationPrefix + sheet
}

// Validate reports the first setting that cannot produce usable geometry.
func (s CutlineSettings) Validate() error {
	switch {
	case s.Length <= 0:
		return fmt.Errorf("cutline length must be positive, got %g", s.Length)
	case s.TextHeight <= 0:
		return fmt.Errorf("text height must be positive, got %g", s.TextHeight)
	case s.Offset < 0:
		return fmt.Errorf("cutline offset must not be negative, got %g", s.Offset)
	case s.MinClearance < 0:
		return fmt.Errorf("minimum clearance must not be negative, got %g", s.MinClearance)
	case s.Layer == "":
		return fmt.Errorf("cutline layer name is required")
	case s.Color < 0 || s.Color > 256:
		return fmt.Errorf("layer color must be an ACI index between 0 and 256, got %d", s.Color)
	}
	return nil
}
