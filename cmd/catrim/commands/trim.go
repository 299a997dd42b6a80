package commands

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/catrim/am"
	"github.com/teranos/catrim/assets"
	"github.com/teranos/catrim/display"
	"github.com/teranos/catrim/errors"
	"github.com/teranos/catrim/export"
	"github.com/teranos/catrim/logger"
	"github.com/teranos/catrim/progress"
	"github.com/teranos/catrim/trim"
)

// AnnotationInfoLogs marks commands that log at info level without -v.
const AnnotationInfoLogs = "catrim/info-logs"

// TrimCmd trims one language's category graph and writes the edge list
var TrimCmd = &cobra.Command{
	Use:   "trim <language>",
	Short: "Trim a language's category graph",
	Long: `Load <assets>/<language>wiki.db, trim its category graph and write the edge list.

Stages, in order:
  1. exclusion     - remove administrative categories and their direct children
  2. reachability  - remove categories more than --depth-limit hops from the root
  3. percentile    - splice out categories below the --page-percentile page count,
                     reconnecting their parents to their children

The root is "Category:Contents", or "Category:Categories" when the language
has no Contents category. The root is never removed.

Examples:
  catrim trim en
  catrim trim de --depth-limit 8 --page-percentile 60
  catrim trim en --excluded-categories "Category:Hidden categories,Category:Stubs"
  catrim trim ja --edges out/ja.yaml --progress bar`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{AnnotationInfoLogs: "true"},
	RunE:        runTrim,
}

func init() {
	addTrimFlags(TrimCmd)
}

func addTrimFlags(cmd *cobra.Command) {
	cmd.Flags().Int("depth-limit", am.DefaultDepthLimit, "Max hops from the root category to keep")
	cmd.Flags().Int("page-percentile", am.DefaultPagePercentile, "Page count percentile below which categories are spliced out (0-100)")
	cmd.Flags().StringSlice("excluded-categories", nil, "Category names to exclude (default: hidden, tracking and noindexed categories)")
	cmd.Flags().String("edges", am.DefaultEdgesFile, "File to write the edge list to (.json, .yaml, .yml)")
	cmd.Flags().String("assets", am.DefaultAssetsDir, "Directory holding <language>wiki.db")
	cmd.Flags().String("progress", progress.KindLog, "Load progress output: log, bar, none")
}

// trimResult is what one run reports
type trimResult struct {
	RunID    string        `json:"run_id"`
	Language string        `json:"language"`
	RootID   int64         `json:"root_id"`
	Edges    string        `json:"edges"`
	Stats    trim.Stats    `json:"stats"`
	Duration time.Duration `json:"duration_ns"`
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	cfg = applyTrimFlags(cmd, *cfg)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	result, err := trimLanguage(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), result)
	}
	printTrimSummary(cmd.OutOrStdout(), result)
	return nil
}

// applyTrimFlags overrides config values with explicitly set flags
func applyTrimFlags(cmd *cobra.Command, cfg am.Config) *am.Config {
	flags := cmd.Flags()
	if flags.Changed("depth-limit") {
		cfg.Trim.DepthLimit, _ = flags.GetInt("depth-limit")
	}
	if flags.Changed("page-percentile") {
		cfg.Trim.PagePercentile, _ = flags.GetInt("page-percentile")
	}
	if flags.Changed("excluded-categories") {
		cfg.Trim.ExcludedCategories, _ = flags.GetStringSlice("excluded-categories")
	}
	if flags.Changed("edges") {
		cfg.Export.Edges, _ = flags.GetString("edges")
	}
	if flags.Changed("assets") {
		cfg.Assets.Dir, _ = flags.GetString("assets")
	}
	if flags.Changed("progress") {
		cfg.Assets.Progress, _ = flags.GetString("progress")
	}
	return &cfg
}

// trimLanguage runs load, trim and export for one language
func trimLanguage(ctx context.Context, cfg *am.Config, language string) (*trimResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.ComponentLogger("catrim").With(logger.FieldsFromContext(ctx)...)

	start := time.Now()
	log.Infow("Starting "+language+"wiki", logger.FieldLanguage, language)

	store, err := assets.Open(cfg.Assets.Dir, language, logger.ComponentLogger("assets"))
	if err != nil {
		return nil, err
	}
	defer store.Close()

	tracker, err := progress.New(cfg.Assets.Progress, logger.ComponentLogger("progress"))
	if err != nil {
		return nil, err
	}
	g, err := store.Load(ctx, tracker)
	if err != nil {
		return nil, errors.Wrapf(err, "load %swiki", language)
	}
	logMemory(log)

	rootID, err := trim.ResolveRoot(ctx, store, language)
	if err != nil {
		return nil, err
	}
	log.Infow("Resolved root category", logger.FieldRootID, rootID)

	stats, err := trim.NewTrimmer(store, logger.Logger).Trim(ctx, g, trim.Params{
		Language:           language,
		RootID:             rootID,
		ExcludedCategories: cfg.Trim.ExcludedCategories,
		DepthLimit:         cfg.Trim.DepthLimit,
		PagePercentile:     cfg.Trim.PagePercentile,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "trim %swiki", language)
	}

	records, err := export.Records(g)
	if err != nil {
		return nil, err
	}
	if err := export.WriteFile(cfg.Export.Edges, records); err != nil {
		return nil, err
	}

	result := &trimResult{
		RunID:    runID,
		Language: language,
		RootID:   rootID,
		Edges:    cfg.Export.Edges,
		Stats:    stats,
		Duration: time.Since(start),
	}
	log.Infow("Finished "+language+"wiki",
		logger.FieldPath, cfg.Export.Edges,
		logger.FieldNodes, stats.NodesAfter,
		logger.FieldEdges, stats.EdgesAfter,
		logger.FieldDurationMS, result.Duration.Milliseconds())
	return result, nil
}

func logMemory(log *zap.SugaredLogger) {
	total, available, err := memoryStats()
	if err != nil {
		log.Debugw("Memory stats unavailable", logger.FieldError, err)
		return
	}
	log.Infow("Graph loaded",
		"mem_used_mb", (total-available)/(1<<20),
		"mem_total_mb", total/(1<<20))
}

func printTrimSummary(w io.Writer, r *trimResult) {
	p := pterm.DefaultBasicText.WithWriter(w)

	pterm.Success.WithWriter(w).Printfln("Trimmed %swiki in %s", r.Language, r.Duration.Round(time.Millisecond))
	p.Printfln("  Root category:     %d", r.RootID)
	p.Printfln("  Before:            %d categories, %d links", r.Stats.NodesBefore, r.Stats.EdgesBefore)
	p.Printfln("  Excluded:          %d", r.Stats.Excluded)
	p.Printfln("  Unreachable:       %d", r.Stats.Unreachable)
	p.Printfln("  Below percentile:  %d (threshold %.2f pages)", r.Stats.BelowPercentile, r.Stats.Threshold)
	p.Printfln("  After:             %d categories, %d links", r.Stats.NodesAfter, r.Stats.EdgesAfter)
	p.Printfln("  Edge list:         %s", r.Edges)
}
