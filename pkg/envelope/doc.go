// Package envelope defines the uniform response body returned by every API route.
//
// Each response carries the same five fields regardless of outcome:
//
//	{ "success": bool, "statusCode": int, "message": string, "data": any, "route": string }
//
// A successful envelope always carries data; a failed one never does. Services build
// envelopes with Success and Failure and the transport layer attaches the originating
// route with WithRoute before rendering.
//
// # Usage
//
//	env := envelope.Success(countries, "Successfully retrieved countries matching criteria.", http.StatusOK)
//	env = env.WithRoute(r.URL.RequestURI())
//	_ = env.Render(w, r)
//
// Envelopes implement handler.Response, so typed handlers can return them directly.
package envelope
