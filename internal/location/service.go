package location

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/geoapi/handler"
	"github.com/dmitrymomot/geoapi/pkg/alert"
	"github.com/dmitrymomot/geoapi/pkg/breaker"
	"github.com/dmitrymomot/geoapi/pkg/envelope"
	"github.com/dmitrymomot/geoapi/pkg/filter"
	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// Operation names used in logs and metrics.
const (
	OpCountries       = "countries"
	OpCountryByISO    = "country_by_iso"
	OpStates          = "states"
	OpStatesByCountry = "states_by_country"
	OpStateByISO      = "state_by_iso"
	OpCities          = "cities"
	OpCitiesByCountry = "cities_by_country"
	OpCitiesByState   = "cities_by_state"
)

// Client-facing messages.
const (
	MsgCountriesFound    = "Successfully retrieved countries matching criteria."
	MsgCountriesNotFound = "No countries found matching the provided criteria."
	MsgCountriesFailed   = "Failed to retrieve countries."
	MsgCountryFound      = "Successfully retrieved the country."
	MsgCountryNotFound   = "No country found in the database."
	MsgCountryFailed     = "Failed to retrieve the country."

	MsgStatesFound           = "Successfully retrieved states matching criteria."
	MsgStatesNotFound        = "No states found matching the provided criteria."
	MsgStatesFailed          = "Failed to retrieve states."
	MsgCountryStatesFound    = "Successfully retrieved the states."
	MsgCountryStatesNotFound = "No states found for the country."
	MsgCountryStatesFailed   = "Failed to retrieve the states."
	MsgStateFound            = "Successfully retrieved the state."
	MsgStateNotFound         = "No state found in the database."
	MsgStateFailed           = "Failed to retrieve the state."

	MsgCitiesFound        = "Successfully retrieved cities matching criteria."
	MsgCitiesNotFound     = "No cities found matching the provided criteria."
	MsgCitiesFailed       = "Failed to retrieve cities."
	MsgRegionCitiesFound  = "Successfully retrieved the cities."
	MsgRegionCitiesNone   = "No cities found."
	MsgRegionCitiesFailed = "Failed to retrieve the cities."
)

// Alerter dispatches critical incidents. *alert.Notifier implements it.
type Alerter interface {
	Notify(ctx context.Context, inc alert.Incident) bool
}

// LookupRecorder counts lookup outcomes. *metrics.Metrics implements it.
type LookupRecorder interface {
	ObserveLookup(operation, outcome string)
}

// Lookup outcomes passed to LookupRecorder.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

type nopAlerter struct{}

func (nopAlerter) Notify(context.Context, alert.Incident) bool { return false }

type nopLookupRecorder struct{}

func (nopLookupRecorder) ObserveLookup(string, string) {}

// Service answers location lookups with envelopes. It never returns an
// error: every outcome, including store failures, is an envelope.
type Service struct {
	store    Store
	logger   *slog.Logger
	alerts   Alerter
	recorder LookupRecorder
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAlerter dispatches an incident for every store failure.
func WithAlerter(a Alerter) ServiceOption {
	return func(s *Service) {
		if a != nil {
			s.alerts = a
		}
	}
}

func WithLookupRecorder(r LookupRecorder) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewService creates a Service over store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:    store,
		logger:   slog.Default(),
		alerts:   nopAlerter{},
		recorder: nopLookupRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Countries returns the countries matching the whitelisted query params.
func (s *Service) Countries(ctx context.Context, query url.Values) envelope.Envelope {
	spec := filter.FromValues(CountryFields, query)
	countries, err := s.store.FindCountries(ctx, spec)
	if err != nil {
		return s.fail(ctx, OpCountries, spec, err, MsgCountriesFailed)
	}
	return s.many(OpCountries, countries, MsgCountriesFound, MsgCountriesNotFound)
}

// CountryByISO returns the country with iso2 == ciso.
func (s *Service) CountryByISO(ctx context.Context, ciso string) envelope.Envelope {
	spec := filter.Spec{"iso2": ciso}
	country, err := s.store.FindCountry(ctx, spec)
	if env, done := s.one(ctx, OpCountryByISO, spec, err, MsgCountryNotFound, MsgCountryFailed); done {
		return env
	}
	return s.ok(OpCountryByISO, country, MsgCountryFound)
}

// States returns the states matching the whitelisted query params.
func (s *Service) States(ctx context.Context, query url.Values) envelope.Envelope {
	spec := filter.FromValues(StateFields, query)
	states, err := s.store.FindStates(ctx, spec)
	if err != nil {
		return s.fail(ctx, OpStates, spec, err, MsgStatesFailed)
	}
	return s.many(OpStates, states, MsgStatesFound, MsgStatesNotFound)
}

// StatesByCountry returns the states of the country ciso. The country must
// exist before states are queried.
func (s *Service) StatesByCountry(ctx context.Context, ciso string) envelope.Envelope {
	if env, ok := s.requireCountry(ctx, OpStatesByCountry, ciso, MsgCountryStatesFailed); !ok {
		return env
	}

	spec := filter.Spec{"country_code": ciso}
	states, err := s.store.FindStates(ctx, spec)
	if err != nil {
		return s.fail(ctx, OpStatesByCountry, spec, err, MsgCountryStatesFailed)
	}
	return s.many(OpStatesByCountry, states, MsgCountryStatesFound, MsgCountryStatesNotFound)
}

// StateByISO returns state siso of country ciso.
func (s *Service) StateByISO(ctx context.Context, ciso, siso string) envelope.Envelope {
	if env, ok := s.requireCountry(ctx, OpStateByISO, ciso, MsgStateFailed); !ok {
		return env
	}

	spec := filter.Spec{"country_code": ciso, "state_code": siso}
	state, err := s.store.FindState(ctx, spec)
	if env, done := s.one(ctx, OpStateByISO, spec, err, MsgStateNotFound, MsgStateFailed); done {
		return env
	}
	return s.ok(OpStateByISO, state, MsgStateFound)
}

// Cities returns the cities matching the whitelisted query params.
func (s *Service) Cities(ctx context.Context, query url.Values) envelope.Envelope {
	spec := filter.FromValues(CityFields, query)
	cities, err := s.store.FindCities(ctx, spec)
	if err != nil {
		return s.fail(ctx, OpCities, spec, err, MsgCitiesFailed)
	}
	return s.many(OpCities, cities, MsgCitiesFound, MsgCitiesNotFound)
}

// CitiesByCountry returns the cities of country ciso.
func (s *Service) CitiesByCountry(ctx context.Context, ciso string) envelope.Envelope {
	if env, ok := s.requireCountry(ctx, OpCitiesByCountry, ciso, MsgRegionCitiesFailed); !ok {
		return env
	}

	spec := filter.Spec{"country_code": ciso}
	cities, err := s.store.FindCities(ctx, spec)
	if err != nil {
		return s.fail(ctx, OpCitiesByCountry, spec, err, MsgRegionCitiesFailed)
	}
	return s.many(OpCitiesByCountry, cities, MsgRegionCitiesFound, MsgRegionCitiesNone)
}

// CitiesByState returns the cities of state siso in country ciso. Country
// and state are resolved first, in that order.
func (s *Service) CitiesByState(ctx context.Context, ciso, siso string) envelope.Envelope {
	if env, ok := s.requireCountry(ctx, OpCitiesByState, ciso, MsgRegionCitiesFailed); !ok {
		return env
	}

	spec := filter.Spec{"country_code": ciso, "state_code": siso}
	_, err := s.store.FindState(ctx, spec)
	if env, done := s.one(ctx, OpCitiesByState, spec, err, MsgStateNotFound, MsgRegionCitiesFailed); done {
		return env
	}

	cities, err := s.store.FindCities(ctx, spec)
	if err != nil {
		return s.fail(ctx, OpCitiesByState, spec, err, MsgRegionCitiesFailed)
	}
	return s.many(OpCitiesByState, cities, MsgRegionCitiesFound, MsgRegionCitiesNone)
}

// requireCountry resolves the parent country. When it returns false the
// envelope is the final answer.
func (s *Service) requireCountry(ctx context.Context, op, ciso, failMsg string) (envelope.Envelope, bool) {
	spec := filter.Spec{"iso2": ciso}
	_, err := s.store.FindCountry(ctx, spec)
	if env, done := s.one(ctx, op, spec, err, MsgCountryNotFound, failMsg); done {
		return env, false
	}
	return envelope.Envelope{}, true
}

// one maps the error of a single-document lookup. done is false only when
// err is nil.
func (s *Service) one(ctx context.Context, op string, spec filter.Spec, err error, notFoundMsg, failMsg string) (envelope.Envelope, bool) {
	switch {
	case err == nil:
		return envelope.Envelope{}, false
	case errors.Is(err, ErrNotFound):
		s.recorder.ObserveLookup(op, OutcomeNotFound)
		return envelope.Failure(notFoundMsg, http.StatusNotFound), true
	default:
		return s.fail(ctx, op, spec, err, failMsg), true
	}
}

func (s *Service) ok(op string, data any, msg string) envelope.Envelope {
	s.recorder.ObserveLookup(op, OutcomeSuccess)
	return envelope.Success(data, msg, http.StatusOK)
}

func (s *Service) many(op string, data any, foundMsg, notFoundMsg string) envelope.Envelope {
	if isEmpty(data) {
		s.recorder.ObserveLookup(op, OutcomeNotFound)
		return envelope.Failure(notFoundMsg, http.StatusNotFound)
	}
	return s.ok(op, data, foundMsg)
}

func isEmpty(data any) bool {
	switch v := data.(type) {
	case []Country:
		return len(v) == 0
	case []State:
		return len(v) == 0
	case []City:
		return len(v) == 0
	default:
		return data == nil
	}
}

// fail logs a store failure once, raises an alert unless the client went
// away, and hides the cause behind failMsg. A deadline answers 504.
func (s *Service) fail(ctx context.Context, op string, spec filter.Spec, err error, failMsg string) envelope.Envelope {
	s.recorder.ObserveLookup(op, OutcomeError)

	if errors.Is(err, context.Canceled) {
		s.logger.InfoContext(ctx, "lookup canceled",
			logger.Operation(op),
			logger.Filter(spec),
		)
		return envelope.Failure(failMsg, http.StatusInternalServerError)
	}

	s.logger.ErrorContext(ctx, "lookup failed",
		logger.Component("location"),
		logger.Operation(op),
		logger.Filter(spec),
		logger.Error(err),
	)

	reason, code := "Database Query Failure", "DB_QUERY_FAILURE"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, breaker.ErrOpen):
		reason, code = "Database Circuit Open", "DB_CIRCUIT_OPEN"
	case errors.Is(err, context.DeadlineExceeded):
		reason, code = "Database Timeout", "DB_TIMEOUT"
		status = http.StatusGatewayTimeout
	}
	s.alerts.Notify(ctx, alert.Incident{
		Reason:    reason,
		ErrorCode: code,
		Component: "mongodb",
		Path:      handler.RouteFromContext(ctx),
	})

	return envelope.Failure(failMsg, status)
}
