package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"slices"
	"strconv"
	"time"
)

// ErrInvalidAPIVersion is returned when API_VERSION is outside v1..v5.
var ErrInvalidAPIVersion = errors.New("invalid api version")

// ErrInvalidCORSMethod is returned when CORS_METHODS names an unknown HTTP method.
var ErrInvalidCORSMethod = errors.New("invalid cors method")

var supportedVersions = []string{"v1", "v2", "v3", "v4", "v5"}

var corsMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

type appConfig struct {
	Env              string        `env:"APP_ENV" envDefault:"development"`                            // Env is one of development, staging, production or test.
	Name             string        `env:"APP_NAME" envDefault:"geoapi"`                                // Name is attached to every log record as the service name.
	APIVersion       string        `env:"API_VERSION" envDefault:"v1"`                                 // APIVersion is the path prefix segment, /api/{APIVersion}.
	JSONPayloadLimit int64         `env:"JSON_PAYLOAD_LIMIT" envDefault:"1000000"`                     // JSONPayloadLimit is the largest JSON body accepted, in bytes.
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`                            // RequestTimeout bounds each API request.
	MetricsNamespace string        `env:"METRICS_NAMESPACE" envDefault:"geoapi"`                       // MetricsNamespace prefixes every Prometheus metric.
	CORSMethods      []string      `env:"CORS_METHODS" envSeparator:"," envDefault:"GET,HEAD,OPTIONS"` // CORSMethods are the methods allowed for cross-origin requests.
}

func (c appConfig) validate() error {
	if !slices.Contains(supportedVersions, c.APIVersion) {
		return fmt.Errorf("%w: %q, want one of %v", ErrInvalidAPIVersion, c.APIVersion, supportedVersions)
	}
	if len(c.CORSMethods) == 0 {
		return fmt.Errorf("%w: CORS_METHODS is empty", ErrInvalidCORSMethod)
	}
	for _, m := range c.CORSMethods {
		if !slices.Contains(corsMethods, m) {
			return fmt.Errorf("%w: %q, want any of %v", ErrInvalidCORSMethod, m, corsMethods)
		}
	}
	return nil
}

func (c appConfig) apiPrefix() string {
	return "/api/" + c.APIVersion
}

// origin splits a listen address into the host and port reported in alert
// emails. An empty host is replaced with the machine hostname.
func origin(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 0
	}
	if host == "" {
		host, _ = os.Hostname()
	}
	port, _ := strconv.Atoi(portStr)
	return host, port
}
