package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/geoapi/pkg/sanitizer"
)

func TestChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chain sanitizer.Chain
		in    string
		want  string
	}{
		{"empty chain", nil, " as is ", " as is "},
		{"order matters", sanitizer.Chain{sanitizer.RemoveNullBytes, sanitizer.StripTags, strings.TrimSpace}, "  <b>Hi</b>\x00 ", "Hi"},
		{"comments then tags", sanitizer.Chain{sanitizer.StripComments, sanitizer.StripTags, strings.ToUpper}, "<i>lis</i><!-- x -->bon", "LISBON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.chain.Clean(tt.in))
		})
	}
}
