//go:build !libretro && !ios

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/user-none/eblitui/standalone"

	"github.com/user-none/enes/adapter"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	romPath := pflag.StringP("rom", "r", "", "path to ROM file (opens UI if not provided)")
	regionFlag := pflag.String("region", "auto", "region: auto, ntsc, or pal")
	pflag.Parse()

	factory := &adapter.Factory{}

	if *romPath != "" {
		if err := standalone.RunDirect(factory, *romPath, *regionFlag, map[string]string{}); err != nil {
			log.Fatal().Err(err).Str("rom", *romPath).Msg("emulator exited")
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal().Err(err).Msg("UI exited")
	}
}
