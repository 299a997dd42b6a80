// Package am loads catrim's configuration from TOML files, CATRIM_*
// environment variables and built-in defaults.
package am

// Config represents the catrim configuration
type Config struct {
	Trim   TrimConfig   `mapstructure:"trim" toml:"trim"`
	Assets AssetsConfig `mapstructure:"assets" toml:"assets"`
	Export ExportConfig `mapstructure:"export" toml:"export"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
}

// TrimConfig configures the pruning stages
type TrimConfig struct {
	DepthLimit         int      `mapstructure:"depth_limit" toml:"depth_limit"`                 // max hops from the root (default: 100)
	PagePercentile     int      `mapstructure:"page_percentile" toml:"page_percentile"`         // 0-100 (default: 75)
	ExcludedCategories []string `mapstructure:"excluded_categories" toml:"excluded_categories"` // canonical names, empty = built-in list
}

// AssetsConfig locates the per-language asset databases
type AssetsConfig struct {
	Dir      string `mapstructure:"dir" toml:"dir"`           // holds <language>wiki.db (default: ./assets)
	Progress string `mapstructure:"progress" toml:"progress"` // log, bar or none (default: log)
}

// ExportConfig configures the edge list output
type ExportConfig struct {
	Edges string `mapstructure:"edges" toml:"edges"` // .json, .yaml or .yml (default: edges.json)
}

// LogConfig configures log output
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json"`
	Theme string `mapstructure:"theme" toml:"theme"` // gruvbox, everforest
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
