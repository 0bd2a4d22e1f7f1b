// Package export renders generated cutlines to review formats: a PDF
// preview, an Excel cutline schedule, and QR-coded sheet tags.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/SheetLink/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a preview of a generation run: one page per layout showing
// its extents, cutlines and annotations, followed by a summary page.
func ExportPDF(path string, summary model.Summary, settings model.CutlineSettings) error {
	if len(summary.Outcomes) == 0 {
		return fmt.Errorf("no layouts to preview")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, outcome := range summary.Outcomes {
		pdf.AddPage()
		renderLayoutPage(pdf, outcome, settings)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, summary)

	return pdf.OutputFileAndClose(path)
}

// viewport maps drawing coordinates onto the page. Drawing Y grows upward,
// page Y grows downward.
type viewport struct {
	box              model.BoundingBox
	scale            float64
	offsetX, offsetY float64
	canvasH          float64
}

func newViewport(box model.BoundingBox) viewport {
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	w := math.Max(box.Width(), 1)
	h := math.Max(box.Height(), 1)
	scale := math.Min(drawWidth/w, drawHeight/h)

	canvasW := w * scale
	return viewport{
		box:     box,
		scale:   scale,
		offsetX: marginLeft + (drawWidth-canvasW)/2,
		offsetY: drawAreaTop,
		canvasH: h * scale,
	}
}

func (v viewport) project(p model.Point) (float64, float64) {
	x := v.offsetX + (p.X-v.box.Min.X)*v.scale
	y := v.offsetY + v.canvasH - (p.Y-v.box.Min.Y)*v.scale
	return x, y
}

// renderLayoutPage draws a single layout outcome on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, outcome model.LayoutOutcome, settings model.CutlineSettings) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s", outcome.Index+1, outcome.Layout)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)

	if outcome.Box == nil {
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5,
			fmt.Sprintf("Skipped: %s", outcome.Reason), "", 0, "L", false, 0, "")
		return
	}

	box := *outcome.Box
	stats := fmt.Sprintf("Extents: (%.1f, %.1f) - (%.1f, %.1f) | Cutlines: %d | Status: %s",
		box.Min.X, box.Min.Y, box.Max.X, box.Max.Y, len(outcome.Cutlines), outcome.Status)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	v := newViewport(box)

	// Layout extents
	x0, y0 := v.project(model.Point{X: box.Min.X, Y: box.Max.Y})
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(x0, y0, box.Width()*v.scale, box.Height()*v.scale, "FD")

	for _, c := range outcome.Cutlines {
		drawCutline(pdf, v, c, settings)
	}

	pdf.SetTextColor(0, 0, 0)
}

// drawCutline draws the segment and its rotated annotation.
func drawCutline(pdf *fpdf.Fpdf, v viewport, c model.CutlineSpec, settings model.CutlineSettings) {
	x1, y1 := v.project(c.SegmentStart)
	x2, y2 := v.project(c.SegmentEnd)

	pdf.SetDrawColor(220, 0, 0)
	pdf.SetLineWidth(0.6)
	pdf.Line(x1, y1, x2, y2)

	// Text height in drawing units, clamped so it stays legible on paper.
	fontPt := math.Max(settings.TextHeight*v.scale*72/25.4, 5)
	pdf.SetFont("Helvetica", "", fontPt)
	if c.IsLeadCutline {
		pdf.SetTextColor(0, 90, 180)
	} else {
		pdf.SetTextColor(180, 0, 0)
	}

	ax, ay := v.project(c.AnnotationAnchor)
	textW := pdf.GetStringWidth(c.AnnotationText)
	pdf.TransformBegin()
	pdf.TransformRotate(c.AnnotationRotation, ax, ay)
	pdf.Text(ax-textW/2, ay, c.AnnotationText)
	pdf.TransformEnd()
}

// renderSummaryPage draws the run statistics and a per-layout table.
func renderSummaryPage(pdf *fpdf.Fpdf, summary model.Summary) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutline Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	items := []struct {
		label string
		value string
	}{
		{"Run", summary.RunID},
		{"Status", string(summary.Status)},
		{"Layouts processed", fmt.Sprintf("%d", summary.LayoutsProcessed)},
		{"Layouts skipped", fmt.Sprintf("%d", summary.LayoutsSkipped)},
		{"Cutlines created", fmt.Sprintf("%d", summary.CutlinesCreated)},
	}
	if summary.Error != "" {
		items = append(items, struct {
			label string
			value string
		}{"Error", summary.Error})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(180, 6, item.value, "", 0, "L", false, 0, "")
		y += 6
	}

	y += 6
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	for _, h := range []struct {
		text string
		w    float64
	}{{"#", 10}, {"Layout", 70}, {"Status", 40}, {"Cutlines", 30}} {
		pdf.CellFormat(h.w, 6, h.text, "B", 0, "L", false, 0, "")
	}
	y += 7

	pdf.SetFont("Helvetica", "", 9)
	for _, o := range summary.Outcomes {
		if y > pageHeight-marginBottom {
			break
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(10, 5, fmt.Sprintf("%d", o.Index+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(70, 5, o.Layout, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, string(o.Status), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, fmt.Sprintf("%d", len(o.Cutlines)), "", 0, "L", false, 0, "")
		y += 5
	}
}
