package engine

import "github.com/piwi3910/SheetLink/internal/model"

// Sequence computes the cutlines for every non-model layout in order. The
// first layout gets a lead End cutline pointing at the second, the last gets
// a Start cutline pointing at the one before it, and interior layouts get
// both. Layouts without boundable entities are skipped.
//
// ErrInsufficientLayouts is returned, with no outcomes, when fewer than two
// non-model layouts remain.
func Sequence(layouts []model.Layout, bounds BoundsFunc, s model.CutlineSettings) ([]model.LayoutOutcome, error) {
	sheets := nonModelLayouts(layouts)
	n := len(sheets)
	if n < 2 {
		return nil, ErrInsufficientLayouts
	}

	outcomes := make([]model.LayoutOutcome, 0, n)
	for i, layout := range sheets {
		outcome := model.LayoutOutcome{Layout: layout.Name, Index: i}

		box, ok := ResolveExtent(layout.Entities, bounds)
		if !ok {
			outcome.Status = model.OutcomeSkipped
			outcome.Reason = model.SkipEmptyLayout
			outcomes = append(outcomes, outcome)
			continue
		}

		var specs []model.CutlineSpec
		switch i {
		case 0:
			specs = Place(box, model.RoleEnd, s.AnnotationFor(sheets[i+1].Name), true, s)
		case n - 1:
			specs = Place(box, model.RoleStart, s.AnnotationFor(sheets[i-1].Name), false, s)
		default:
			specs = append(
				Place(box, model.RoleStart, s.AnnotationFor(sheets[i-1].Name), false, s),
				Place(box, model.RoleEnd, s.AnnotationFor(sheets[i+1].Name), false, s)...,
			)
		}

		boxCopy := box
		outcome.Status = model.OutcomeCreated
		outcome.Box = &boxCopy
		outcome.Cutlines = specs
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func nonModelLayouts(layouts []model.Layout) []model.Layout {
	sheets := make([]model.Layout, 0, len(layouts))
	for _, l := range layouts {
		if !l.IsModelSpace {
			sheets = append(sheets, l)
		}
	}
	return sheets
}
