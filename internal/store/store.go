// Package store implements a drawing store over a sheet set of DXF files.
// Each non-model sheet is one layout. Created entities are staged in memory
// and written back to the DXF files as a single batch on Commit.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/SheetLink/internal/importer"
	"github.com/piwi3910/SheetLink/internal/model"
	"github.com/piwi3910/SheetLink/internal/project"
)

var (
	// ErrClosed is returned by writes after the batch was committed or aborted.
	ErrClosed = errors.New("drawing store batch already committed or aborted")

	// ErrUnknownLayout is returned when a create targets a layout that was
	// never listed.
	ErrUnknownLayout = errors.New("unknown layout")
)

// tempSuffix marks drawings written but not yet moved into place.
const tempSuffix = ".sheetlink-tmp"

// rename moves a written drawing over its original.
var rename = os.Rename

// Options controls how the store writes generated entities.
type Options struct {
	Layer    string // Layer receiving created entities
	ReadOnly bool   // Stage creates but never write files
	Backup   bool   // Copy originals aside before replacing them
	Logger   *log.Logger
}

// sheet is one loaded layout drawing.
type sheet struct {
	ref      model.SheetRef
	doc      *drawing.Drawing
	created  int
	layerSet bool
}

// Store is a DXF-backed drawing store. It is not safe for concurrent use.
type Store struct {
	set     model.SheetSet
	opts    Options
	sheets  map[string]*sheet
	batchID string
	closed  bool
}

// Open prepares a store over the given sheet set. Drawings are read when the
// layouts are first listed.
func Open(set model.SheetSet, opts Options) (*Store, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if opts.Layer == "" {
		opts.Layer = model.DefaultCutlineSettings().Layer
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Store{
		set:     set,
		opts:    opts,
		sheets:  make(map[string]*sheet),
		batchID: uuid.NewString(),
	}, nil
}

// BatchID identifies this store's write batch in backups and logs.
func (s *Store) BatchID() string { return s.batchID }

// ListNonModelLayouts reads every paper layout drawing in sheet set order.
func (s *Store) ListNonModelLayouts() ([]model.Layout, error) {
	refs := s.set.Layouts()
	layouts := make([]model.Layout, 0, len(refs))
	for _, ref := range refs {
		doc, entities, err := importer.OpenDXF(ref.File)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", ref.Name, err)
		}
		s.sheets[ref.Name] = &sheet{ref: ref, doc: doc}
		s.opts.Logger.Debug("Loaded layout", "layout", ref.Name, "file", ref.File, "entities", len(entities))
		layouts = append(layouts, model.Layout{Name: ref.Name, Entities: entities})
	}
	return layouts, nil
}

// EntityBounds measures a DXF entity.
func (s *Store) EntityBounds(e model.Entity) (model.BoundingBox, bool) {
	return importer.EntityBounds(e)
}

// CreateLine stages a line on the cutline layer of the named layout.
func (s *Store) CreateLine(layout string, start, end model.Point, colorTag int) (string, error) {
	sh, err := s.target(layout, colorTag)
	if err != nil {
		return "", err
	}
	if _, err := sh.doc.Line(start.X, start.Y, start.Z, end.X, end.Y, end.Z); err != nil {
		return "", fmt.Errorf("create line on %q: %w", layout, err)
	}
	sh.created++
	return uuid.NewString(), nil
}

// CreateText stages a single-line text entity on the cutline layer of the
// named layout.
func (s *Store) CreateText(layout string, spec model.TextSpec) (string, error) {
	sh, err := s.target(layout, -1)
	if err != nil {
		return "", err
	}
	// Justified text is placed at its alignment point (group 11), which the
	// writer takes from the insertion point.
	p := spec.Position
	if spec.HorizontalAlign != model.AlignLeft || spec.VerticalAlign != model.AlignBaseline {
		p = spec.AlignmentAnchor
	}
	t, err := sh.doc.Text(spec.Text, p.X, p.Y, p.Z, spec.Height)
	if err != nil {
		return "", fmt.Errorf("create text on %q: %w", layout, err)
	}
	t.Rotation = spec.Rotation
	t.HorizontalFlag = int(spec.HorizontalAlign)
	t.VerticalFlag = int(spec.VerticalAlign)
	sh.created++
	return uuid.NewString(), nil
}

// target returns the sheet for a layout with the cutline layer made current.
// colorTag < 0 means the layer color is not known yet; the layer then gets
// the default color if it has to be created.
func (s *Store) target(layout string, colorTag int) (*sheet, error) {
	if s.closed {
		return nil, ErrClosed
	}
	sh, ok := s.sheets[layout]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, layout)
	}
	if sh.layerSet {
		return sh, nil
	}
	if err := sh.doc.ChangeLayer(s.opts.Layer); err != nil {
		if colorTag < 0 {
			colorTag = model.DefaultCutlineSettings().Color
		}
		if _, err := sh.doc.AddLayer(s.opts.Layer, color.ColorNumber(colorTag), dxf.DefaultLineType, true); err != nil {
			return nil, fmt.Errorf("create layer %q on %q: %w", s.opts.Layer, layout, err)
		}
	}
	sh.layerSet = true
	return sh, nil
}

// Staged returns the number of entities staged per layout name.
func (s *Store) Staged() map[string]int {
	out := make(map[string]int, len(s.sheets))
	for name, sh := range s.sheets {
		out[name] = sh.created
	}
	return out
}

// Commit writes every modified drawing. Drawings are first saved beside
// their originals, then the originals are backed up, then the new files are
// moved into place. If any step fails, temporary files are removed and
// already replaced drawings are restored from the backup.
func (s *Store) Commit() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	dirty := s.dirtySheets()
	if s.opts.ReadOnly {
		s.opts.Logger.Info("Dry run, no drawings written", "layouts", len(dirty))
		return nil
	}
	if len(dirty) == 0 {
		return nil
	}

	temps := make([]string, 0, len(dirty))
	for _, sh := range dirty {
		tmp := sh.ref.File + tempSuffix
		if err := sh.doc.SaveAs(tmp); err != nil {
			removeAll(append(temps, tmp))
			return fmt.Errorf("write %q: %w", sh.ref.Name, err)
		}
		temps = append(temps, tmp)
	}

	originals := make([]string, len(dirty))
	for i, sh := range dirty {
		originals[i] = sh.ref.File
	}

	var backupDir string
	if s.opts.Backup {
		dir, err := project.BackupDrawings(filepath.Dir(originals[0]), s.batchID, originals)
		if err != nil {
			removeAll(temps)
			return fmt.Errorf("back up drawings: %w", err)
		}
		backupDir = dir
		s.opts.Logger.Debug("Backed up drawings", "dir", backupDir)
	}

	for i, tmp := range temps {
		if err := rename(tmp, originals[i]); err != nil {
			removeAll(temps[i:])
			if backupDir != "" {
				if rerr := project.RestoreBackup(backupDir); rerr != nil {
					s.opts.Logger.Error("Restore failed", "dir", backupDir, "err", rerr)
				}
			}
			return fmt.Errorf("replace %q: %w", dirty[i].ref.Name, err)
		}
	}

	s.opts.Logger.Info("Drawings written", "layouts", len(dirty), "batch", s.batchID)
	return nil
}

// Abort discards all staged entities. Aborting a closed store is a no-op.
func (s *Store) Abort() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.sheets = make(map[string]*sheet)
	return nil
}

// dirtySheets returns the sheets with staged entities in sheet set order.
func (s *Store) dirtySheets() []*sheet {
	var out []*sheet
	for _, ref := range s.set.Layouts() {
		if sh, ok := s.sheets[ref.Name]; ok && sh.created > 0 {
			out = append(out, sh)
		}
	}
	return out
}

func removeAll(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}
