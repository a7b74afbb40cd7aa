// Package logger builds structured loggers on top of log/slog and provides
// attribute helpers shared by the framework packages.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("ssrkit"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// # Environment Configurations
//
//	// Development: text format, debug level, stdout
//	devLogger := logger.New(logger.WithDevelopment("ssrkit"))
//
//	// Production: JSON format, info level, stdout
//	prodLogger := logger.New(logger.WithProduction("ssrkit"))
//
// # Context Extraction
//
// Extractors pull request-scoped values out of the context passed to the
// *Context logging methods and add them to every record:
//
//	log := logger.New(
//		logger.WithProduction("ssrkit"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			id, ok := ctx.Value(requestIDKey{}).(string)
//			return logger.RequestID(id), ok
//		}),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input so they can be
// passed unconditionally:
//
//	log.Error("render failed", logger.Error(err), logger.ErrorStack(err))
package logger
