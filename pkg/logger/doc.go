// Package logger builds configured log/slog loggers.
//
// The factory supports JSON output for aggregation and text output for
// development, static attributes attached to every record, and level
// control via functional options or the LOG_LEVEL / LOG_FORMAT environment
// variables.
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttr(slog.String("service", "badgectl")),
//	)
package logger
