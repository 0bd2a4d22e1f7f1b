package engine

import "github.com/piwi3910/SheetLink/internal/model"

// BoundsFunc measures a single entity. ok is false for entities without a
// usable extent, which are skipped rather than treated as errors.
type BoundsFunc func(e model.Entity) (box model.BoundingBox, ok bool)

// ResolveExtent folds the bounds of every measurable entity into one box.
// ok is false when no entity contributed, i.e. the layout is empty.
func ResolveExtent(entities []model.Entity, bounds BoundsFunc) (model.BoundingBox, bool) {
	var acc *model.BoundingBox
	for _, e := range entities {
		box, ok := bounds(e)
		if !ok {
			continue
		}
		merged := model.MergeBox(acc, box)
		acc = &merged
	}
	if acc == nil {
		return model.BoundingBox{}, false
	}
	return *acc, true
}
