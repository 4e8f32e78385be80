// Package cli contains the in-process libretro frontends used by the enes
// command: a windowed Runner and a Headless batch runner.
package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides, e.g. ENES_WINDOW_SCALE=4.
const EnvPrefix = "ENES"

// ConfigFile is the default configuration file name.
const ConfigFile = "enes.yaml"

// Config holds settings for both frontends.
type Config struct {
	Window struct {
		Scale int    `fig:"scale" default:"3"`
		Title string `fig:"title" default:"eNES"`
	} `fig:"window"`
	Log struct {
		Level   string `fig:"level" default:"info"`
		NoColor bool   `fig:"nocolor"`
	} `fig:"log"`
	Keys     KeyConfig `fig:"keys"`
	Headless struct {
		Enabled    bool     `fig:"enabled"`
		Frames     int      `fig:"frames" default:"60"`
		Screenshot string   `fig:"screenshot"`
		Hold       []string `fig:"hold"`
	} `fig:"headless"`
}

// KeyConfig names the keyboard key for each player 1 button.
type KeyConfig struct {
	Up     string `fig:"up" default:"ArrowUp"`
	Down   string `fig:"down" default:"ArrowDown"`
	Left   string `fig:"left" default:"ArrowLeft"`
	Right  string `fig:"right" default:"ArrowRight"`
	A      string `fig:"a" default:"X"`
	B      string `fig:"b" default:"Z"`
	Select string `fig:"select" default:"Backspace"`
	Start  string `fig:"start" default:"Enter"`
}

// LoadConfig reads path, or enes.yaml from the working directory and the
// user config directory when path is empty. A missing default file is not
// an error. Environment variables prefixed with ENES_ override the file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		err := fig.Load(&cfg,
			fig.File(filepath.Base(path)),
			fig.Dirs(filepath.Dir(path)),
			fig.UseEnv(EnvPrefix))
		return cfg, err
	}

	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "enes"))
	}
	err := fig.Load(&cfg, fig.File(ConfigFile), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		cfg = Config{}
		err = loadEnvOnly(&cfg)
	}
	return cfg, err
}

// loadEnvOnly applies defaults and environment overrides. fig always reads
// a file, so it is pointed at an empty one in a scratch directory.
func loadEnvOnly(cfg *Config) error {
	dir, err := os.MkdirTemp("", "enes-config")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("{}\n"), 0o600); err != nil {
		return err
	}
	return fig.Load(cfg, fig.File(ConfigFile), fig.Dirs(dir), fig.UseEnv(EnvPrefix))
}

// AddFlags registers command-line overrides for c on fs.
func (c *Config) AddFlags(fs *pflag.FlagSet) *Config {
	fs.IntVarP(&c.Window.Scale, "scale", "s", c.Window.Scale, "Window scale factor")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "Log level (debug, info, warn, error)")
	fs.BoolVar(&c.Log.NoColor, "no-color", c.Log.NoColor, "Disable colored log output")

	fs.BoolVar(&c.Headless.Enabled, "headless", c.Headless.Enabled, "Run without a window")
	fs.IntVarP(&c.Headless.Frames, "frames", "n", c.Headless.Frames, "Frames to run in headless mode")
	fs.StringVarP(&c.Headless.Screenshot, "screenshot", "o", c.Headless.Screenshot, "Save the last headless frame (.png or .bmp)")
	fs.StringSliceVar(&c.Headless.Hold, "hold", c.Headless.Hold, "Buttons held for the whole headless run (e.g. start,a)")

	return c
}
