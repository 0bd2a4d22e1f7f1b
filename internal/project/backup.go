package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BackupDirName is the directory, beside the first backed-up drawing, that
// holds timestamped drawing backups.
const BackupDirName = ".sheetlink-backup"

// backupManifestName is the file recording where each backup came from.
const backupManifestName = "backup.json"

// BackupEntry maps a backup copy to the drawing it was taken from.
type BackupEntry struct {
	Original string `json:"original"`
	Copy     string `json:"copy"`
}

// BackupData describes one backup set.
type BackupData struct {
	Version   string        `json:"version"`
	CreatedAt string        `json:"created_at"`
	RunID     string        `json:"run_id"`
	Entries   []BackupEntry `json:"entries"`
}

// BackupDrawings copies each file into a new timestamped directory under
// root/.sheetlink-backup and records the mapping in a JSON manifest.
// It returns the backup directory.
func BackupDrawings(root, runID string, files []string) (string, error) {
	stamp := time.Now().UTC().Format("20060102T150405.000Z")
	dir := filepath.Join(root, BackupDirName, stamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		RunID:     runID,
	}
	for i, src := range files {
		dst := filepath.Join(dir, fmt.Sprintf("%02d-%s", i+1, filepath.Base(src)))
		if err := copyFile(src, dst); err != nil {
			return dir, fmt.Errorf("failed to back up %s: %w", src, err)
		}
		backup.Entries = append(backup.Entries, BackupEntry{Original: src, Copy: dst})
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return dir, fmt.Errorf("failed to marshal backup data: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, backupManifestName), data, 0644); err != nil {
		return dir, fmt.Errorf("failed to write backup manifest: %w", err)
	}
	return dir, nil
}

// LoadBackup reads the manifest of a backup directory.
func LoadBackup(dir string) (BackupData, error) {
	data, err := os.ReadFile(filepath.Join(dir, backupManifestName))
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup manifest: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup manifest: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup manifest: missing version field")
	}
	return backup, nil
}

// RestoreBackup copies every backed-up drawing back over its original.
// All entries are attempted; the first error is returned.
func RestoreBackup(dir string) error {
	backup, err := LoadBackup(dir)
	if err != nil {
		return err
	}
	var first error
	for _, e := range backup.Entries {
		if err := copyFile(e.Copy, e.Original); err != nil && first == nil {
			first = fmt.Errorf("failed to restore %s: %w", e.Original, err)
		}
	}
	return first
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
