// Package clientip resolves the address of the client behind a request.
//
// The address keys the rate limiter and appears in logs as "client_ip", so
// it must not be spoofable. A Resolver only honours forwarding headers
// (X-Forwarded-For and X-Real-IP by default) when the TCP peer belongs to a
// trusted proxy range; otherwise the peer address is used as is.
//
//	res, err := clientip.NewResolver(cfg)
//	if err != nil {
//		return err
//	}
//	r.Use(res.Middleware)
//
// Handlers read the stored address with FromContext, and LoggerExtractor
// adds it to log records.
package clientip
