package logger

import (
	"log/slog"
	"maps"
	"slices"
	"time"
)

// Attribute keys shared by every package that logs.
const (
	KeyError     = "error"
	KeyRequestID = "request_id"
	KeyClientIP  = "client_ip"
	KeyDuration  = "duration"
	KeyComponent = "component"
	KeyEntity    = "entity"
	KeyOperation = "operation"
	KeyFilter    = "filter"
	KeyCacheKey  = "cache_key"
	KeyRoute     = "route"
	KeyStatus    = "status"
)

// Error records err. A nil error yields the empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}

// RequestID records the request correlation id; "" yields the empty Attr.
func RequestID(id string) slog.Attr {
	return optionalString(KeyRequestID, id)
}

// ClientIP records the resolved client address; "" yields the empty Attr.
func ClientIP(ip string) slog.Attr {
	return optionalString(KeyClientIP, ip)
}

// Duration records d.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Component names the subsystem writing the record, e.g. "cache" or "alert".
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Entity records the location entity kind: country, state or city.
func Entity(kind string) slog.Attr {
	return slog.String(KeyEntity, kind)
}

// Operation records the lookup service operation.
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Filter groups the query filter fields in name order.
func Filter(fields map[string]string) slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		attrs = append(attrs, slog.String(name, fields[name]))
	}
	return slog.Attr{Key: KeyFilter, Value: slog.GroupValue(attrs...)}
}

func CacheKey(key string) slog.Attr { return slog.String(KeyCacheKey, key) }

func Route(pattern string) slog.Attr { return slog.String(KeyRoute, pattern) }

func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }

func optionalString(key, v string) slog.Attr {
	if v == "" {
		return slog.Attr{}
	}
	return slog.String(key, v)
}
