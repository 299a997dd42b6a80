package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/catrim/am"
	"github.com/teranos/catrim/assets"
	"github.com/teranos/catrim/display"
	"github.com/teranos/catrim/errors"
	"github.com/teranos/catrim/logger"
	"github.com/teranos/catrim/trim"
)

// AssetsCmd groups asset database commands
var AssetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Inspect per-language asset databases",
	Long: `Inspect the SQLite asset databases catrim trims.

Each language has one database at <assets>/<language>wiki.db holding its
categories, category links and canonical title mappings.

Examples:
  catrim assets stats en
  catrim assets stats de --assets /srv/wiki/assets --json`,
}

var assetsStatsCmd = &cobra.Command{
	Use:   "stats <language>",
	Short: "Show row counts and root category of a language",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetsStats,
}

func init() {
	assetsStatsCmd.Flags().String("assets", am.DefaultAssetsDir, "Directory holding <language>wiki.db")
	AssetsCmd.AddCommand(assetsStatsCmd)
}

type assetsReport struct {
	Language string       `json:"language"`
	Path     string       `json:"path"`
	Stats    assets.Stats `json:"stats"`
	RootID   *int64       `json:"root_id,omitempty"`
}

func runAssetsStats(cmd *cobra.Command, args []string) error {
	language := args[0]

	dir := am.DefaultAssetsDir
	if cfg, err := am.Load(); err == nil {
		dir = cfg.Assets.Dir
	}
	if cmd.Flags().Changed("assets") {
		dir, _ = cmd.Flags().GetString("assets")
	}

	path := assets.Path(dir, language)
	if _, err := os.Stat(path); err != nil {
		return errors.WithHintf(errors.NewNotFoundError("asset database %s", path),
			"place %swiki.db under %s or pass --assets", language, dir)
	}

	store, err := assets.Open(dir, language, logger.ComponentLogger("assets"))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	report := assetsReport{Language: language, Path: path, Stats: stats}
	if id, err := trim.ResolveRoot(ctx, store, language); err == nil {
		report.RootID = &id
	} else {
		logger.Debugw("Root category not resolved", logger.FieldLanguage, language, logger.FieldError, err)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), report)
	}

	root := "not found"
	if report.RootID != nil {
		root = fmt.Sprint(*report.RootID)
	}
	return pterm.DefaultTable.WithWriter(cmd.OutOrStdout()).WithData(pterm.TableData{
		{"Database", path},
		{"Categories", fmt.Sprint(stats.Categories)},
		{"Links", fmt.Sprint(stats.Links)},
		{"Titles", fmt.Sprint(stats.Titles)},
		{"Root category", root},
	}).Render()
}
