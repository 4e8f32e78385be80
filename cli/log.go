package cli

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/user-none/enes/libretro"
)

// NewLogger returns a console logger writing to w at the named level.
// Unknown level names fall back to info.
func NewLogger(w io.Writer, level string, noColor bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: "15:04:05.000",
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// coreLog forwards lines from the core's log interface to log, tagged
// as coming from the core.
func coreLog(log zerolog.Logger) libretro.LogFunc {
	log = log.With().Str("src", "core").Logger()
	return func(level libretro.LogLevel, msg string) {
		msg = strings.TrimRight(msg, "\n")
		switch level {
		case libretro.LogDebug:
			log.Debug().Msg(msg)
		case libretro.LogInfo:
			log.Info().Msg(msg)
		case libretro.LogWarn:
			log.Warn().Msg(msg)
		default:
			log.Error().Msg(msg)
		}
	}
}
