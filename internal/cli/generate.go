package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetLink/internal/engine"
	"github.com/piwi3910/SheetLink/internal/export"
	"github.com/piwi3910/SheetLink/internal/model"
	"github.com/piwi3910/SheetLink/internal/project"
	"github.com/piwi3910/SheetLink/internal/store"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	dryRun   bool   // compute cutlines without writing drawings
	noBackup bool   // skip copying originals aside before replacing them
	preview  string // PDF preview output path
	schedule string // Excel schedule output path
	tags     string // QR sheet tag PDF output path
	prefix   string // annotation prefix override
	layer    string // cutline layer override
	asJSON   bool   // print the run summary as JSON
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <sheetset.json>",
		Short: "Place continuation cutlines on every sheet of a sheet set",
		Long: `Generate reads the ordered sheets of a sheet set, places a start cutline
on every sheet that continues from a previous one and an end cutline on every
sheet that continues onto the next, then writes all sheets as one batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "compute cutlines without writing drawings")
	cmd.Flags().BoolVar(&opts.noBackup, "no-backup", false, "do not back up drawings before replacing them")
	cmd.Flags().StringVar(&opts.preview, "preview", "", "write a PDF preview of the cutlines")
	cmd.Flags().StringVar(&opts.schedule, "schedule", "", "write an Excel cutline schedule")
	cmd.Flags().StringVar(&opts.tags, "tags", "", "write a PDF of QR-coded sheet tags")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "annotation prefix (default from config)")
	cmd.Flags().StringVar(&opts.layer, "layer", "", "layer receiving cutlines (default from config)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the run summary as JSON")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, path string, opts generateOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	settings := cfg.Cutline
	if opts.prefix != "" {
		settings.AnnotationPrefix = opts.prefix
	}
	if opts.layer != "" {
		settings.Layer = opts.layer
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid cutline settings: %w", err)
	}

	set, err := project.LoadSheetSet(path)
	if err != nil {
		return err
	}
	c.Logger.Debug("Loaded sheet set", "name", set.Name, "sheets", len(set.Sheets))

	ctx := cmd.Context()
	if err := ctx.Err(); err != nil {
		return err
	}

	st, err := store.Open(set, store.Options{
		Layer:    settings.Layer,
		ReadOnly: opts.dryRun,
		Backup:   cfg.BackupEnabled && !opts.noBackup,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	summary, genErr := engine.NewGenerator(st, settings, c.Logger).Generate(ctx)

	out := printer{w: cmd.OutOrStdout()}
	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	} else {
		printSummary(out, set, summary, opts.dryRun)
	}
	if genErr != nil {
		return genErr
	}
	if summary.Status != model.RunCompleted {
		return nil
	}

	if err := c.writeReports(out, summary, settings, opts); err != nil {
		return err
	}

	if !opts.dryRun {
		cfg.AddRecent(path)
		if err := project.SaveAppConfig(c.ConfigPath, cfg); err != nil {
			c.Logger.Warn("Could not update recent sheet sets", "err", err)
		}
	}
	return nil
}

// writeReports renders the optional preview, schedule and tag files.
func (c *CLI) writeReports(out printer, summary model.Summary, settings model.CutlineSettings, opts generateOpts) error {
	if opts.preview != "" {
		if err := export.ExportPDF(opts.preview, summary, settings); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		out.file(opts.preview)
	}
	if opts.schedule != "" {
		if err := export.ExportSchedule(opts.schedule, summary); err != nil {
			return fmt.Errorf("write schedule: %w", err)
		}
		out.file(opts.schedule)
	}
	if opts.tags != "" {
		if err := export.ExportSheetTags(opts.tags, summary); err != nil {
			return fmt.Errorf("write sheet tags: %w", err)
		}
		out.file(opts.tags)
	}
	return nil
}

func printSummary(out printer, set model.SheetSet, summary model.Summary, dryRun bool) {
	out.title(set.Name)
	switch summary.Status {
	case model.RunInsufficientLayouts:
		out.warning("Nothing to link: %s", summary.Error)
		return
	case model.RunAborted:
		out.failure("Generation aborted, no drawings were changed")
	default:
		if dryRun {
			out.success("Dry run: %d cutlines computed", summary.CutlinesCreated)
		} else {
			out.success("%d cutlines created", summary.CutlinesCreated)
		}
	}

	for _, o := range summary.Outcomes {
		switch o.Status {
		case model.OutcomeSkipped:
			out.detail("%d. %s: skipped (%s)", o.Index+1, o.Layout, o.Reason)
		default:
			out.detail("%d. %s: %d cutlines, %s", o.Index+1, o.Layout, len(o.Cutlines), o.Status)
		}
	}
	out.keyValue("Layouts", fmt.Sprintf("%d", summary.LayoutsProcessed))
	out.keyValue("Skipped", fmt.Sprintf("%d", summary.LayoutsSkipped))
	out.keyValue("Run", summary.RunID)
}
