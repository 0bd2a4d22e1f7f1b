package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SheetLink/internal/model"
)

const (
	scheduleSheet = "Cutlines"
	summarySheet  = "Summary"
)

var scheduleHeader = []interface{}{
	"Sheet #", "Layout", "Status", "Reason", "Role", "Lead", "Start X", "Start Y", "End X", "End Y",
	"Anchor X", "Anchor Y", "Rotation", "Annotation",
}

// ScheduleRows flattens a summary into one row per cutline, in layout order.
// Skipped layouts appear as a single row with only the sheet, status and
// reason columns filled.
func ScheduleRows(summary model.Summary) [][]interface{} {
	var rows [][]interface{}
	for _, o := range summary.Outcomes {
		if len(o.Cutlines) == 0 {
			rows = append(rows, []interface{}{o.Index + 1, o.Layout, string(o.Status), string(o.Reason)})
			continue
		}
		for _, c := range o.Cutlines {
			rows = append(rows, []interface{}{
				o.Index + 1, o.Layout, string(o.Status), string(o.Reason),
				c.Role.String(), c.IsLeadCutline,
				c.SegmentStart.X, c.SegmentStart.Y, c.SegmentEnd.X, c.SegmentEnd.Y,
				c.AnnotationAnchor.X, c.AnnotationAnchor.Y, c.AnnotationRotation,
				c.AnnotationText,
			})
		}
	}
	return rows
}

// ExportSchedule writes an Excel workbook listing every cutline of a run and
// a summary sheet with the run counters.
func ExportSchedule(path string, summary model.Summary) error {
	if len(summary.Outcomes) == 0 {
		return fmt.Errorf("no layouts to schedule")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), scheduleSheet); err != nil {
		return err
	}
	if err := writeRow(f, scheduleSheet, 1, scheduleHeader); err != nil {
		return err
	}
	for i, row := range ScheduleRows(summary) {
		if err := writeRow(f, scheduleSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	stats := [][]interface{}{
		{"Run", summary.RunID},
		{"Status", string(summary.Status)},
		{"Layouts processed", summary.LayoutsProcessed},
		{"Layouts skipped", summary.LayoutsSkipped},
		{"Cutlines created", summary.CutlinesCreated},
	}
	if summary.Error != "" {
		stats = append(stats, []interface{}{"Error", summary.Error})
	}
	for i, row := range stats {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
