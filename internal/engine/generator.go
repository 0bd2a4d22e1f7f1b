package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/piwi3910/SheetLink/internal/model"
)

// Store is the drawing store the generator reads layouts from and writes
// cutlines into. Creates are staged until Commit; Abort discards them.
type Store interface {
	ListNonModelLayouts() ([]model.Layout, error)
	EntityBounds(e model.Entity) (model.BoundingBox, bool)
	CreateLine(layout string, start, end model.Point, color int) (string, error)
	CreateText(layout string, text model.TextSpec) (string, error)
	Commit() error
	Abort() error
}

// Generator links the layouts of a drawing store with cutlines.
type Generator struct {
	Store    Store
	Settings model.CutlineSettings
	Logger   *log.Logger
}

// NewGenerator returns a Generator. A nil logger discards all output.
func NewGenerator(store Store, settings model.CutlineSettings, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{Store: store, Settings: settings, Logger: logger}
}

// Generate computes cutlines for every layout in the store and persists them
// as one batch. Either all cutlines are committed or none are.
//
// Too few layouts is reported through the summary status, not as an error.
// A store failure aborts the batch and is returned as a *PersistenceError.
// Cancelling ctx before the commit aborts the batch and returns ctx.Err().
func (g *Generator) Generate(ctx context.Context) (model.Summary, error) {
	logger := g.logger()
	summary := model.Summary{RunID: uuid.NewString()}

	if err := ctx.Err(); err != nil {
		return g.cancel(summary, err), fmt.Errorf("generation cancelled: %w", err)
	}

	layouts, err := g.Store.ListNonModelLayouts()
	if err != nil {
		perr := newPersistenceError(ErrorListLayoutsFailed, "", "list layouts", err)
		return g.abort(summary, perr), perr
	}

	outcomes, err := Sequence(layouts, g.Store.EntityBounds, g.Settings)
	if errors.Is(err, ErrInsufficientLayouts) {
		logger.Warn("Nothing to link", "layouts", len(nonModelLayouts(layouts)), "reason", err)
		if aerr := g.Store.Abort(); aerr != nil {
			logger.Error("Abort failed", "err", aerr)
		}
		summary.Status = model.RunInsufficientLayouts
		summary.Error = err.Error()
		return summary, nil
	}
	summary.Outcomes = outcomes

	for _, outcome := range outcomes {
		if err := ctx.Err(); err != nil {
			return g.cancel(summary, err), fmt.Errorf("generation cancelled: %w", err)
		}
		if outcome.Status == model.OutcomeSkipped {
			logger.Warn("Skipping layout", "layout", outcome.Layout, "reason", ErrEmptyLayout)
			continue
		}
		if perr := g.persist(outcome); perr != nil {
			markAborted(summary.Outcomes)
			return g.abort(summary, perr), perr
		}
		logger.Debug("Placed cutlines", "layout", outcome.Layout, "count", len(outcome.Cutlines))
	}

	if err := ctx.Err(); err != nil {
		return g.cancel(summary, err), fmt.Errorf("generation cancelled: %w", err)
	}

	if err := g.Store.Commit(); err != nil {
		perr := newPersistenceError(ErrorCommitFailed, "", "commit batch", err)
		markAborted(summary.Outcomes)
		return g.abort(summary, perr), perr
	}

	summary.Status = model.RunCompleted
	tally(&summary)
	logger.Info("Cutlines committed",
		"run", summary.RunID,
		"created", summary.CutlinesCreated,
		"skipped", summary.LayoutsSkipped)
	return summary, nil
}

// persist creates one line and one text entity per cutline of a layout.
func (g *Generator) persist(outcome model.LayoutOutcome) *PersistenceError {
	for _, c := range outcome.Cutlines {
		if _, err := g.Store.CreateLine(outcome.Layout, c.SegmentStart, c.SegmentEnd, g.Settings.Color); err != nil {
			return newPersistenceError(ErrorCreateLineFailed, outcome.Layout, c.Role.String()+" cutline", err)
		}
		if _, err := g.Store.CreateText(outcome.Layout, c.Annotation(g.Settings.TextHeight)); err != nil {
			return newPersistenceError(ErrorCreateTextFailed, outcome.Layout, c.Role.String()+" annotation", err)
		}
	}
	return nil
}

func (g *Generator) abort(summary model.Summary, cause *PersistenceError) model.Summary {
	logger := g.logger()
	logger.Error("Cutline generation aborted", "code", cause.Code, "layout", cause.Layout, "err", cause.Cause)
	if err := g.Store.Abort(); err != nil {
		logger.Error("Abort failed", "err", err)
	}
	summary.Status = model.RunAborted
	summary.Error = cause.Error()
	tally(&summary)
	return summary
}

// cancel discards the staged batch after the caller gave up on the run.
func (g *Generator) cancel(summary model.Summary, cause error) model.Summary {
	logger := g.logger()
	logger.Warn("Cutline generation cancelled", "err", cause)
	if err := g.Store.Abort(); err != nil {
		logger.Error("Abort failed", "err", err)
	}
	markAborted(summary.Outcomes)
	summary.Status = model.RunAborted
	summary.Error = cause.Error()
	tally(&summary)
	return summary
}

func (g *Generator) logger() *log.Logger {
	if g.Logger == nil {
		g.Logger = log.New(io.Discard)
	}
	return g.Logger
}

func markAborted(outcomes []model.LayoutOutcome) {
	for i := range outcomes {
		if outcomes[i].Status == model.OutcomeCreated {
			outcomes[i].Status = model.OutcomeAborted
		}
	}
}

// tally derives the summary counters from the outcomes.
func tally(s *model.Summary) {
	s.LayoutsProcessed, s.LayoutsSkipped, s.CutlinesCreated = 0, 0, 0
	for _, o := range s.Outcomes {
		switch o.Status {
		case model.OutcomeCreated:
			s.LayoutsProcessed++
			s.CutlinesCreated += len(o.Cutlines)
		case model.OutcomeSkipped:
			s.LayoutsProcessed++
			s.LayoutsSkipped++
		}
	}
}
