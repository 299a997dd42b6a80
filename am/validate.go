package am

import (
	"github.com/BurntSushi/toml"

	"github.com/teranos/catrim/errors"
	"github.com/teranos/catrim/logger"
	"github.com/teranos/catrim/progress"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// depth 0 keeps only the root
	if c.Trim.DepthLimit < 0 {
		return errors.Newf("trim.depth_limit must be >= 0, got %d", c.Trim.DepthLimit)
	}
	if c.Trim.PagePercentile < 0 || c.Trim.PagePercentile > 100 {
		return errors.Newf("trim.page_percentile must be within [0, 100], got %d", c.Trim.PagePercentile)
	}
	for _, name := range c.Trim.ExcludedCategories {
		if name == "" {
			return errors.New("trim.excluded_categories cannot contain an empty name")
		}
	}

	if c.Assets.Dir == "" {
		return errors.New("assets.dir cannot be empty")
	}
	switch c.Assets.Progress {
	case "", progress.KindLog, progress.KindBar, progress.KindNone:
	default:
		return errors.Newf("assets.progress must be one of %s, %s, %s, got %q",
			progress.KindLog, progress.KindBar, progress.KindNone, c.Assets.Progress)
	}

	if c.Export.Edges == "" {
		return errors.New("export.edges cannot be empty")
	}

	if c.Log.Theme != "" && !logger.IsTheme(c.Log.Theme) {
		return errors.Newf("log.theme %q is not a known theme", c.Log.Theme)
	}

	return nil
}

// CheckFile parses a TOML config file strictly and returns the keys that
// Config does not define.
func CheckFile(path string) ([]string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}
