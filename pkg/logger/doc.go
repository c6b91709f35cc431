// Package logger builds slog loggers with consistent formatting and
// context-aware attribute injection.
//
// Loggers are created through New with functional options. Request-scoped
// values such as the current tenant are injected into every record through
// context extractors, so call sites never have to repeat them:
//
//	log := logger.New(
//		logger.WithProduction("api"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "stats computed") // carries tenant_id automatically
package logger
