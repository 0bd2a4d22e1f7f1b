package model

import "fmt"

// SheetSetVersion is written into every saved sheet set manifest.
const SheetSetVersion = "1.0.0"

// SheetSet is an ordered list of sheets making up one multi-sheet drawing.
// The order of Sheets is the order in which layouts are linked.
type SheetSet struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Sheets  []SheetRef `json:"sheets"`
}

// NewSheetSet creates a sheet set with the current manifest version.
func NewSheetSet(name string, sheets []SheetRef) SheetSet {
	if sheets == nil {
		sheets = []SheetRef{}
	}
	return SheetSet{Version: SheetSetVersion, Name: name, Sheets: sheets}
}

// Layouts returns the sheets that are paper layouts, in order.
func (s SheetSet) Layouts() []SheetRef {
	var out []SheetRef
	for _, sh := range s.Sheets {
		if !sh.ModelSpace {
			out = append(out, sh)
		}
	}
	return out
}

// Validate checks that every sheet has a name and file and that names are unique.
func (s SheetSet) Validate() error {
	seen := make(map[string]bool, len(s.Sheets))
	for i, sh := range s.Sheets {
		if sh.Name == "" {
			return fmt.Errorf("sheet %d has no name", i+1)
		}
		if sh.File == "" {
			return fmt.Errorf("sheet %q has no drawing file", sh.Name)
		}
		if seen[sh.Name] {
			return fmt.Errorf("duplicate sheet name %q", sh.Name)
		}
		seen[sh.Name] = true
	}
	return nil
}
