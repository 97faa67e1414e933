package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultQuota mirrors the few megabytes a browser grants local storage.
const DefaultQuota = 5 << 20

type Config interface {
	// BasePath is the diskv root directory.
	BasePath() string
	// Quota is the byte budget of the store. Zero or less disables it.
	Quota() int64
	// Override is a path or http(s) URL of a cross-device override file.
	Override() string
	// OverrideDir is where exports are written back for other devices.
	OverrideDir() string
	// Media is the media library manifest path.
	Media() string
}

func LoadConfig() (Config, error) {
	// Walk the file tree from here backwards looking for a .cardboard file.
	viper.SetDefault("path", "~/.cardboard")
	viper.SetDefault("quota", DefaultQuota)
	viper.SetConfigName(".cardboard") // .yaml is implicit
	viper.SetEnvPrefix("CARDBOARD")
	viper.AutomaticEnv()

	if override := os.Getenv("CARDBOARD_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	cfg := &FileConfig{
		Path:        viper.GetString("path"),
		Bytes:       viper.GetInt64("quota"),
		OverrideSrc: viper.GetString("override"),
		OverrideOut: viper.GetString("overrideDir"),
		Manifest:    viper.GetString("media"),
	}
	for _, p := range []*string{&cfg.Path, &cfg.OverrideOut, &cfg.Manifest} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, fmt.Errorf("store: expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return cfg, nil
}

// FileConfig is the Config read from .cardboard and the environment. Tests
// build it directly.
type FileConfig struct {
	Path        string `json:"path"`
	Bytes       int64  `json:"quota"`
	OverrideSrc string `json:"override,omitempty"`
	OverrideOut string `json:"overrideDir,omitempty"`
	Manifest    string `json:"media,omitempty"`
}

func (f *FileConfig) BasePath() string    { return f.Path }
func (f *FileConfig) Quota() int64        { return f.Bytes }
func (f *FileConfig) Override() string    { return f.OverrideSrc }
func (f *FileConfig) OverrideDir() string { return f.OverrideOut }
func (f *FileConfig) Media() string       { return f.Manifest }
