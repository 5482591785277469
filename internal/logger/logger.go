package logger

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// InitLogging configures the global logger. When filePath is non-empty the log
// is appended to that file, otherwise it goes to stderr.
func InitLogging(filePath string) {
	if filePath == "" {
		return
	}
	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Error().Err(err).Str("path", filePath).Msg("failed to open log file, keeping stderr")
		return
	}
	log = zerolog.New(f).With().Timestamp().Logger()
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	log.Debug().Msg(sprintf(format, args...))
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	log.Info().Msg(sprintf(format, args...))
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	log.Warn().Msg(sprintf(format, args...))
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	log.Error().Msg(sprintf(format, args...))
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
