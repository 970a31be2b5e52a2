package envelope

import "net/http"

// Messages of the fixed envelopes.
const (
	MessageMethodNotSupported = "Method not supported."
	MessageRouteNotFound      = "Route not found."
	MessageTooManyRequests    = "Too many requests, please try again later."
	MessageProcessingError    = "Error processing request, please try again later."
	MessageInternalError      = "Internal server error."
	MessageBadRequest         = "Invalid request parameters."
)

// MethodNotSupported is returned for any verb other than GET on a defined route.
func MethodNotSupported() Envelope {
	return Failure(MessageMethodNotSupported, http.StatusMethodNotAllowed)
}

func RouteNotFound() Envelope {
	return Failure(MessageRouteNotFound, http.StatusNotFound)
}

func TooManyRequests() Envelope {
	return Failure(MessageTooManyRequests, http.StatusTooManyRequests)
}

// ProcessingError is returned when inbound request data could not be sanitized.
func ProcessingError() Envelope {
	return Failure(MessageProcessingError, http.StatusInternalServerError)
}

// InternalError hides internal failure detail from the client.
func InternalError() Envelope {
	return Failure(MessageInternalError, http.StatusInternalServerError)
}

func BadRequest() Envelope {
	return Failure(MessageBadRequest, http.StatusBadRequest)
}
