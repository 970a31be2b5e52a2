package envelope

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Envelope is the response body shared by all routes.
type Envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Route      string `json:"route"`
}

// Success wraps a non-empty result set. Callers are responsible for passing non-nil data;
// empty results are reported with Failure and a not-found status.
func Success(data any, message string, statusCode int) Envelope {
	return Envelope{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// Failure builds an envelope without data.
func Failure(message string, statusCode int) Envelope {
	return Envelope{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
	}
}

// WithRoute returns a copy with the originating route attached.
func (e Envelope) WithRoute(route string) Envelope {
	e.Route = route
	return e
}

// OK reports whether the envelope satisfies the success invariant:
// a 2xx status together with non-nil data.
func (e Envelope) OK() bool {
	return e.Success && isSuccessStatus(e.StatusCode) && e.Data != nil
}

// Render writes the envelope as JSON using its status code.
// A zero status code is rendered as 500 so a half-built envelope never reports success.
func (e Envelope) Render(w http.ResponseWriter, _ *http.Request) error {
	status := e.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
		e.StatusCode = status
		e.Success = false
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(e); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// Decode parses a JSON-encoded envelope. Data is kept as raw JSON so that it can be
// rendered again byte-for-byte without knowing the concrete entity type.
func Decode(b []byte) (Envelope, error) {
	var raw struct {
		Success    bool            `json:"success"`
		StatusCode int             `json:"statusCode"`
		Message    string          `json:"message"`
		Data       json.RawMessage `json:"data"`
		Route      string          `json:"route"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Envelope{}, err
	}

	env := Envelope{
		Success:    raw.Success,
		StatusCode: raw.StatusCode,
		Message:    raw.Message,
		Route:      raw.Route,
	}
	if len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null")) {
		env.Data = raw.Data
	}
	return env, nil
}

func isSuccessStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
