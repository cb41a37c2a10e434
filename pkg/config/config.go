// Package config loads the collection options file (assetpack.toml).
// Options follow the same precedence everywhere: built-in defaults, then
// the config file, then command-line flags applied by the caller.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/scenekit/assetpack/pkg/errors"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/types"
)

// FileName is the config file looked up in the working directory and the
// XDG config directory.
const FileName = "assetpack.toml"

// Include holds the per-category scan toggles.
type Include struct {
	Images     bool `toml:"images"`
	Sounds     bool `toml:"sounds"`
	Fonts      bool `toml:"fonts"`
	MovieClips bool `toml:"movieclips"`
	Caches     bool `toml:"caches"`
	Volumes    bool `toml:"volumes"`
	Libraries  bool `toml:"libraries"`
}

// Options holds the collection behavior toggles.
type Options struct {
	ExcludeUnused  bool `toml:"exclude_unused"`
	FlattenFolders bool `toml:"flatten_folders"`
	RenameToMatch  bool `toml:"rename_to_match"`
	CopyDocument   bool `toml:"copy_document"`
	Relink         bool `toml:"relink"`
	Workers        int  `toml:"workers"`
}

// Config is the full assetpack configuration.
type Config struct {
	Include Include `toml:"include"`
	Options Options `toml:"options"`
}

// Default returns the built-in configuration: every category included, no
// layout rewriting, document copy and relink enabled.
func Default() Config {
	return Config{
		Include: Include{
			Images:     true,
			Sounds:     true,
			Fonts:      true,
			MovieClips: true,
			Caches:     true,
			Volumes:    true,
			Libraries:  true,
		},
		Options: Options{
			CopyDocument: true,
			Relink:       true,
			Workers:      4,
		},
	}
}

// Load reads the config file at path. An empty path searches the working
// directory and then the XDG config directory; a missing file is not an
// error and yields the defaults.
func Load(path string) (Config, error) {
	logger := logging.GetLogger("config")
	cfg := Default()

	if path == "" {
		path = findConfigFile()
		if path == "" {
			logger.Debug().Msg("No config file found, using defaults")
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigParse, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	logger.Debug().Str("path", path).Msg("Config loaded")
	return cfg, nil
}

func (c Config) validate() error {
	if c.Options.Workers < 0 {
		return errors.Newf(errors.ErrConfigValid, "workers must not be negative, got %d", c.Options.Workers)
	}
	return nil
}

// IncludedCategories returns the categories enabled by the include table,
// or nil when all seven are enabled (which scanners treat as "everything").
func (c Config) IncludedCategories() []types.Category {
	toggles := map[types.Category]bool{
		types.CategoryImage:     c.Include.Images,
		types.CategorySound:     c.Include.Sounds,
		types.CategoryFont:      c.Include.Fonts,
		types.CategoryMovieClip: c.Include.MovieClips,
		types.CategoryCacheFile: c.Include.Caches,
		types.CategoryVolume:    c.Include.Volumes,
		types.CategoryLibrary:   c.Include.Libraries,
	}

	var included []types.Category
	for _, spec := range types.Categories {
		if toggles[spec.Category] {
			included = append(included, spec.Category)
		}
	}
	if len(included) == len(types.Categories) {
		return nil
	}
	return included
}

func findConfigFile() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	xdgPath := filepath.Join(xdg.ConfigHome, "assetpack", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
