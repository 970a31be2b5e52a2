package location

import (
	"context"

	"github.com/dmitrymomot/geoapi/pkg/filter"
)

// Store reads location documents. Collection lookups report no match as an
// empty slice; single lookups report it as ErrNotFound. Any other failure
// wraps ErrStore.
type Store interface {
	FindCountries(ctx context.Context, spec filter.Spec) ([]Country, error)
	FindCountry(ctx context.Context, spec filter.Spec) (Country, error)
	FindStates(ctx context.Context, spec filter.Spec) ([]State, error)
	FindState(ctx context.Context, spec filter.Spec) (State, error)
	FindCities(ctx context.Context, spec filter.Spec) ([]City, error)
}
