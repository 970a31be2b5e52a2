// Package httpserver runs an http.Handler with graceful shutdown and exposes
// liveness and readiness handlers.
//
// Server is built with New or NewFromConfig and functional options such as
// WithAddr, WithReadHeaderTimeout and WithLogger. Run blocks until its
// context is cancelled, SIGINT or SIGTERM arrives, or Shutdown is called,
// then drains in-flight requests within the shutdown timeout.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler answer with the same JSON envelope as
// the API. Readiness runs each Check, for example mongo.Healthcheck, and
// reports 503 when any of them fails.
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown errors
// with ErrShutdown.
package httpserver
