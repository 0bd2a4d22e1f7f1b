package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/SheetLink/internal/model"
)

// SheetTag holds the data encoded into each sheet tag's QR code.
type SheetTag struct {
	Sheet    string `json:"sheet"`
	Index    int    `json:"index"`
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
	Status   string `json:"status"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectSheetTags builds one tag per processed layout, naming the sheets
// before and after it.
func CollectSheetTags(summary model.Summary) []SheetTag {
	tags := make([]SheetTag, 0, len(summary.Outcomes))
	for i, o := range summary.Outcomes {
		prev, next := summary.Neighbors(i)
		tags = append(tags, SheetTag{
			Sheet:    o.Layout,
			Index:    o.Index + 1,
			Previous: prev,
			Next:     next,
			Status:   string(o.Status),
		})
	}
	return tags
}

// ExportSheetTags generates a PDF of QR-coded tags, one per layout, laid out
// on a standard label sheet (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportSheetTags(path string, summary model.Summary) error {
	tags := CollectSheetTags(summary)
	if len(tags) == 0 {
		return fmt.Errorf("no layouts to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderTag(pdf, x, y, tag); err != nil {
			return fmt.Errorf("failed to render tag for %q: %w", tag.Sheet, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTag draws a single tag at the given position.
func renderTag(pdf *fpdf.Fpdf, x, y float64, tag SheetTag) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(tag)
	if err != nil {
		return fmt.Errorf("failed to marshal tag: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", tag.Index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, tag.Sheet, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Sheet %d", tag.Index), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	if tag.Previous != "" {
		pdf.SetXY(textX, y+labelPadding+9)
		pdf.CellFormat(textW, 3, truncate(pdf, "From: "+tag.Previous, textW), "", 1, "L", false, 0, "")
	}
	if tag.Next != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.CellFormat(textW, 3, truncate(pdf, "Next: "+tag.Next, textW), "", 1, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s by whole runes, with an ellipsis, until it fits in width w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
