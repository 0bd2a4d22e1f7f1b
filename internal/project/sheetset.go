package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/SheetLink/internal/model"
)

// SaveSheetSet writes a sheet set manifest as JSON.
// It creates any missing parent directories automatically.
func SaveSheetSet(path string, set model.SheetSet) error {
	if set.Version == "" {
		set.Version = model.SheetSetVersion
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sheet set: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSheetSet reads a sheet set manifest. Relative sheet file paths are
// resolved against the manifest's directory.
func LoadSheetSet(path string) (model.SheetSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SheetSet{}, fmt.Errorf("failed to read sheet set: %w", err)
	}
	var set model.SheetSet
	if err := json.Unmarshal(data, &set); err != nil {
		return model.SheetSet{}, fmt.Errorf("failed to parse sheet set: %w", err)
	}
	if set.Version == "" {
		return model.SheetSet{}, fmt.Errorf("invalid sheet set: missing version field")
	}
	if err := set.Validate(); err != nil {
		return model.SheetSet{}, fmt.Errorf("invalid sheet set: %w", err)
	}

	base := filepath.Dir(path)
	for i, sh := range set.Sheets {
		if !filepath.IsAbs(sh.File) {
			set.Sheets[i].File = filepath.Join(base, sh.File)
		}
	}
	return set, nil
}
