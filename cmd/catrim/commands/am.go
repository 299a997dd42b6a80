package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/catrim/am"
	"github.com/teranos/catrim/display"
	"github.com/teranos/catrim/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage catrim configuration",
	Long: `am - Manage catrim configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (CATRIM_* prefix, e.g. CATRIM_TRIM_DEPTH_LIMIT)
3. Project config (am.toml, searched from the working directory upward)
4. User config (~/.catrim/am.toml)
5. System config (/etc/catrim/am.toml)
6. Default values

Examples:
  catrim am show                    # Show current configuration
  catrim am show --format json      # Show configuration in JSON format
  catrim am get trim.depth_limit    # Get specific config value
  catrim am validate                # Validate current configuration
  catrim am where                   # Show where each value comes from`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective catrim configuration from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., trim.depth_limit, export.edges)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate current configuration",
	Long: `Validate that the effective configuration is valid.

With a file argument, that file is also checked for keys catrim does not know.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration values come from",
	RunE:  runAmWhere,
}

func init() {
	amShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

// marshalSettings encodes the effective settings in format
func marshalSettings(format string, settings map[string]interface{}) ([]byte, error) {
	switch format {
	case "json":
		return display.MarshalJSON(settings)
	case "yaml":
		data, err := yaml.Marshal(settings)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to YAML")
		}
		return append([]byte("# catrim configuration\n"), data...), nil
	case "toml":
		data, err := toml.Marshal(settings)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to TOML")
		}
		return append([]byte("# catrim configuration\n"), data...), nil
	default:
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("unsupported format: %s", format),
			"supported: toml, json, yaml")
	}
}

func runAmShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if display.ShouldOutputJSON(cmd) {
		format = "json"
	}

	data, err := marshalSettings(format, am.GetViper().AllSettings())
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	if !am.GetViper().IsSet(key) {
		return errors.NewNotFoundError("configuration key %q", key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		unknown, err := am.CheckFile(args[0])
		if err != nil {
			return err
		}
		if len(unknown) > 0 {
			for _, key := range unknown {
				pterm.Warning.WithWriter(out).Printfln("Unknown key %s in %s", key, args[0])
			}
			return errors.Newf("%s has %d unknown keys", args[0], len(unknown))
		}
	}

	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	pterm.Success.WithWriter(out).Println("Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	settings := am.Introspect()

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), settings)
	}

	data := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range settings {
		data = append(data, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
}
