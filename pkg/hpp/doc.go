// Package hpp guards against HTTP parameter pollution.
//
// A query parameter that appears more than once is collapsed to its last
// value before the request reaches the handlers, so every downstream consumer
// sees a single value. The dropped values stay available through Polluted:
//
//	r.Use(hpp.Middleware(hpp.WithLogger(log)))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		if extra := hpp.Polluted(r.Context()); len(extra) > 0 {
//			// ...
//		}
//	}
//
// Repeated sensitive parameters (user, auth and token by default) are logged
// as warnings. Whitelisted parameters keep all their values.
package hpp
