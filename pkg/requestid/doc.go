// Package requestid tags every request with a correlation id.
//
// The id is taken from the X-Request-ID header when the client sent a
// well-formed one, or generated as a UUIDv7. It is stored in the request
// context, echoed in the response header and, through LoggerExtractor,
// attached to every log record of the request.
//
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
