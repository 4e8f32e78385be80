package libretro

import (
	"bytes"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// frontendWriter renders zerolog events as console lines and hands
// them to the frontend's log callback at the matching level.
type frontendWriter struct {
	log     LogFunc
	buf     bytes.Buffer
	console zerolog.ConsoleWriter
}

func newFrontendWriter(log LogFunc) *frontendWriter {
	w := &frontendWriter{log: log}
	w.console = zerolog.ConsoleWriter{
		Out:        &w.buf,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
	}
	return w
}

func (w *frontendWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (w *frontendWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	w.buf.Reset()
	if _, err := w.console.Write(p); err != nil {
		return 0, err
	}
	w.log(logLevelFor(level), w.buf.String())
	return len(p), nil
}

func logLevelFor(level zerolog.Level) LogLevel {
	switch {
	case level <= zerolog.DebugLevel:
		return LogDebug
	case level == zerolog.InfoLevel, level == zerolog.NoLevel:
		return LogInfo
	case level == zerolog.WarnLevel:
		return LogWarn
	default:
		return LogError
	}
}

// newFrontendLogger logs through the frontend's callback.
func newFrontendLogger(log LogFunc) zerolog.Logger {
	return zerolog.New(newFrontendWriter(log)).Level(zerolog.DebugLevel)
}

// newFallbackLogger writes to w (stderr when the frontend offers no log interface).
func newFallbackLogger(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	return zerolog.New(out).Level(zerolog.InfoLevel)
}

var stderr io.Writer = os.Stderr
