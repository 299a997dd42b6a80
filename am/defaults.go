package am

import (
	"github.com/spf13/viper"

	"github.com/teranos/catrim/progress"
	"github.com/teranos/catrim/trim"
)

// Built-in defaults
const (
	DefaultDepthLimit     = 100
	DefaultPagePercentile = 75
	DefaultAssetsDir      = "./assets"
	DefaultEdgesFile      = "edges.json"
	DefaultLogTheme       = "everforest"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("trim.depth_limit", DefaultDepthLimit)
	v.SetDefault("trim.page_percentile", DefaultPagePercentile)
	v.SetDefault("trim.excluded_categories", trim.DefaultExcludedCategories)

	v.SetDefault("assets.dir", DefaultAssetsDir)
	v.SetDefault("assets.progress", progress.KindLog)

	v.SetDefault("export.edges", DefaultEdgesFile)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", DefaultLogTheme)
}

// BindEnvVars explicitly binds the documented environment variables
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("assets.dir", "CATRIM_ASSETS_DIR")
	v.BindEnv("log.theme", "CATRIM_LOG_THEME")
}
