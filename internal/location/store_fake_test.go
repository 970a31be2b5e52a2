package location_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrymomot/geoapi/internal/location"
	"github.com/dmitrymomot/geoapi/pkg/filter"
)

// fakeStore is an in-memory location.Store that records every call.
type fakeStore struct {
	countries []location.Country
	states    []location.State
	cities    []location.City

	mu    sync.Mutex
	calls []string
	errs  map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		countries: []location.Country{
			{ID: 233, Name: "United States", ISO2: "US", ISO3: "USA", Capital: "Washington", Region: "Americas",
				Translations: map[string]string{"de": "Vereinigte Staaten"}},
			{ID: 75, Name: "France", ISO2: "FR", ISO3: "FRA", Capital: "Paris", Region: "Europe",
				Translations: map[string]string{"de": "Frankreich"}},
		},
		states: []location.State{
			{ID: 1416, Name: "California", CountryID: 233, CountryCode: "US", StateCode: "CA"},
			{ID: 1452, Name: "New York", CountryID: 233, CountryCode: "US", StateCode: "NY"},
			{ID: 4796, Name: "Wyoming", CountryID: 233, CountryCode: "US", StateCode: "WY"},
		},
		cities: []location.City{
			{ID: 110992, Name: "Los Angeles", StateID: 1416, StateCode: "CA", CountryID: 233, CountryCode: "US"},
			{ID: 111341, Name: "San Francisco", StateID: 1416, StateCode: "CA", CountryID: 233, CountryCode: "US"},
			{ID: 123214, Name: "Buffalo", StateID: 1452, StateCode: "NY", CountryID: 233, CountryCode: "US"},
		},
		errs: map[string]error{},
	}
}

func (f *fakeStore) failOn(method string, err error) *fakeStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method] = err
	return f
}

func (f *fakeStore) record(method string, spec filter.Spec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := make([]string, 0, len(spec))
	for _, k := range spec.Keys() {
		parts = append(parts, k+"="+spec[k])
	}
	f.calls = append(f.calls, method+"("+strings.Join(parts, ",")+")")
	return f.errs[method]
}

func (f *fakeStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStore) FindCountries(_ context.Context, spec filter.Spec) ([]location.Country, error) {
	if err := f.record("FindCountries", spec); err != nil {
		return nil, err
	}
	return matchAll(f.countries, spec), nil
}

func (f *fakeStore) FindCountry(_ context.Context, spec filter.Spec) (location.Country, error) {
	if err := f.record("FindCountry", spec); err != nil {
		return location.Country{}, err
	}
	if found := matchAll(f.countries, spec); len(found) > 0 {
		return found[0], nil
	}
	return location.Country{}, location.ErrNotFound
}

func (f *fakeStore) FindStates(_ context.Context, spec filter.Spec) ([]location.State, error) {
	if err := f.record("FindStates", spec); err != nil {
		return nil, err
	}
	return matchAll(f.states, spec), nil
}

func (f *fakeStore) FindState(_ context.Context, spec filter.Spec) (location.State, error) {
	if err := f.record("FindState", spec); err != nil {
		return location.State{}, err
	}
	if found := matchAll(f.states, spec); len(found) > 0 {
		return found[0], nil
	}
	return location.State{}, location.ErrNotFound
}

func (f *fakeStore) FindCities(_ context.Context, spec filter.Spec) ([]location.City, error) {
	if err := f.record("FindCities", spec); err != nil {
		return nil, err
	}
	return matchAll(f.cities, spec), nil
}

// matchAll compares spec values with the JSON form of each document,
// following dotted keys into nested objects.
func matchAll[T any](docs []T, spec filter.Spec) []T {
	out := []T{}
	for _, doc := range docs {
		raw, _ := json.Marshal(doc)
		var m map[string]any
		_ = json.Unmarshal(raw, &m)

		ok := true
		for key, want := range spec {
			if lookup(m, key) != want {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, doc)
		}
	}
	return out
}

func lookup(m map[string]any, key string) string {
	var cur any = m
	for _, part := range strings.Split(key, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return "\x00"
		}
		if cur, ok = obj[part]; !ok {
			return "\x00"
		}
	}
	return fmt.Sprint(cur)
}
