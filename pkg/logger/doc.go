// Package logger builds the service's slog loggers and keeps attribute names
// consistent across packages.
//
// New takes functional options. WithEnvironment picks the format and level
// for development, test, staging or production; WithConfig applies the
// LOG_LEVEL and LOG_FORMAT overrides; WithContextExtractors injects
// request-scoped values such as the request id and client address into every
// record logged with a request context.
//
//	cfgOpt, err := logger.WithConfig(logCfg)
//	if err != nil {
//		return err
//	}
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "geoapi"),
//		cfgOpt,
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "lookup served",
//		logger.Entity("country"),
//		logger.Operation("country_by_iso"),
//	)
//
// Error, RequestID and ClientIP return the empty attribute for zero input,
// which slog drops, so they can be passed unconditionally.
//
// AccessLog writes one record per request with the method, path, matched chi
// route, status, size and duration. 5xx responses are logged at error level
// and 4xx at warn level.
package logger
