//go:build !libretro && !ios

// Command enes runs the NES core through its libretro entry points, in a
// window or headless for a fixed number of frames.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/user-none/enes/cli"
	"github.com/user-none/enes/libretro"
	"github.com/user-none/enes/romloader"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "enes:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// --config has to be known before the file can provide flag defaults.
	pre := pflag.NewFlagSet("enes", pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	configPath := pre.StringP("config", "c", "", "Configuration file (default ./enes.yaml)")
	_ = pre.Parse(args)

	cfg, err := cli.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	fs := pflag.NewFlagSet("enes", pflag.ContinueOnError)
	fs.StringP("config", "c", *configPath, "Configuration file (default ./enes.yaml)")
	cfg.AddFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: enes [flags] <rom>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one ROM path, got %d", fs.NArg())
	}
	romPath := fs.Arg(0)

	log := cli.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.NoColor)

	rom, name, err := romloader.LoadROM(romPath)
	if err != nil {
		return err
	}
	log.Info().Str("rom", name).Int("size", len(rom)).Msg("loaded image")

	if cfg.Headless.Enabled {
		return runHeadless(cfg, log, name, rom)
	}
	return runWindow(cfg, log, name, rom)
}

func runHeadless(cfg cli.Config, log zerolog.Logger, name string, rom []byte) error {
	held, err := cli.ParseButtons(cfg.Headless.Hold)
	if err != nil {
		return err
	}

	h := cli.NewHeadless(log)
	defer h.Close()
	if err := h.Load(name, rom); err != nil {
		return err
	}
	h.Hold(0, held...)
	h.Run(cfg.Headless.Frames)

	log.Info().
		Int("frames", h.Frames()).
		Str("crc32", fmt.Sprintf("%08X", h.CRC32())).
		Msg("headless run complete")

	if cfg.Headless.Screenshot != "" {
		if err := h.SaveScreenshot(cfg.Headless.Screenshot); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Headless.Screenshot).Msg("saved screenshot")
	}
	return nil
}

func runWindow(cfg cli.Config, log zerolog.Logger, name string, rom []byte) error {
	keys, err := cli.NewKeymap(cfg.Keys)
	if err != nil {
		return err
	}

	r := cli.NewRunner(keys, log)
	defer r.Close()
	if err := r.Load(name, rom); err != nil {
		return err
	}

	scale := max(cfg.Window.Scale, 1)
	ebiten.SetWindowSize(libretro.FrameWidth*scale, libretro.FrameHeight*scale)
	ebiten.SetWindowTitle(cfg.Window.Title + " - " + name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(libretro.FPS))

	return ebiten.RunGame(r)
}
