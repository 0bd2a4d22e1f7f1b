package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSheetSetLayoutsExcludesModelSpace(t *testing.T) {
	set := NewSheetSet("Plant", []SheetRef{
		{Name: "Model", File: "model.dxf", ModelSpace: true},
		{Name: "A", File: "a.dxf"},
		{Name: "B", File: "b.dxf"},
	})

	layouts := set.Layouts()
	assert.Len(t, layouts, 2)
	assert.Equal(t, "A", layouts[0].Name)
	assert.Equal(t, "B", layouts[1].Name)
	assert.Equal(t, SheetSetVersion, set.Version)
}

func TestSheetSetValidate(t *testing.T) {
	assert.NoError(t, NewSheetSet("ok", []SheetRef{{Name: "A", File: "a.dxf"}}).Validate())
	assert.Error(t, NewSheetSet("x", []SheetRef{{Name: "", File: "a.dxf"}}).Validate())
	assert.Error(t, NewSheetSet("x", []SheetRef{{Name: "A"}}).Validate())
	assert.Error(t, NewSheetSet("x", []SheetRef{{Name: "A", File: "a.dxf"}, {Name: "A", File: "b.dxf"}}).Validate())
}

func TestNewSheetSetNeverNil(t *testing.T) {
	assert.NotNil(t, NewSheetSet("empty", nil).Sheets)
}
