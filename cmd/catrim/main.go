package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/catrim/am"
	"github.com/teranos/catrim/cmd/catrim/commands"
	"github.com/teranos/catrim/errors"
	"github.com/teranos/catrim/logger"
)

var rootCmd = &cobra.Command{
	Use:   "catrim",
	Short: "catrim - Wikipedia category graph trimmer",
	Long: `catrim - Trim a language's Wikipedia category graph to a bounded, relevant subset.

Available commands:
  trim    - Exclude, depth-limit and percentile-prune a language's categories
  assets  - Inspect the per-language asset databases
  am      - Manage catrim configuration ("I am")
  version - Show version information

Examples:
  catrim trim en                          # Trim enwiki with defaults
  catrim trim de --page-percentile 50     # Keep more categories
  catrim trim fr --edges fr.yaml -v       # YAML output, info logs
  catrim assets stats en                  # Row counts of assets/enwiki.db
  catrim am show --format json            # Show configuration`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 'am show' writes the config itself to stdout
		if cmd.Name() == "show" {
			return nil
		}
		return initLogger(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func initLogger(cmd *cobra.Command) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	// long-running commands report progress at info level by default
	if cmd.Annotations[commands.AnnotationInfoLogs] == "true" && verbosity < logger.VerbosityInfo {
		verbosity = logger.VerbosityInfo
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if cfg, err := am.Load(); err == nil {
		jsonOutput = jsonOutput || cfg.Log.JSON
		logger.SetTheme(cfg.Log.Theme)
	}

	if err := logger.Initialize(jsonOutput, logger.VerbosityToLevel(verbosity)); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit JSON logs and JSON command output")

	rootCmd.AddCommand(commands.TrimCmd)
	rootCmd.AddCommand(commands.AssetsCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
