package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingCollections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    []string
		have    []string
		missing string
	}{
		{name: "all present", want: []string{"countries", "states"}, have: []string{"states", "countries", "cities"}},
		{name: "nothing required", have: []string{"countries"}},
		{name: "one missing", want: []string{"countries", "cities"}, have: []string{"countries"}, missing: "[cities]"},
		{name: "empty database", want: []string{"countries", "states"}, missing: "[countries states]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := missingCollections(tt.want, tt.have)
			if tt.missing == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrMissingCollection)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}
