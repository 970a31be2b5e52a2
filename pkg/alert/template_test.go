package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/pkg/alert"
	"github.com/dmitrymomot/geoapi/pkg/email"
)

func TestIncidentEmail(t *testing.T) {
	t.Parallel()

	t.Run("escapes incident fields", func(t *testing.T) {
		t.Parallel()

		html, err := email.Render(context.Background(), alert.IncidentEmail(alert.Incident{
			Reason:       "<script>alert(1)</script>",
			Path:         "/api/v1/countries?name=<b>",
			TimeDetected: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}))
		require.NoError(t, err)

		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
		assert.Contains(t, html, "Time Detected: Fri, 02 Jan 2026 03:04:05 UTC")
	})

	t.Run("omits dashboard button without link", func(t *testing.T) {
		t.Parallel()

		html, err := email.Render(context.Background(), alert.IncidentEmail(alert.Incident{}))
		require.NoError(t, err)
		assert.NotContains(t, html, "Go to Dashboard")
	})

	t.Run("drops unsafe dashboard links", func(t *testing.T) {
		t.Parallel()

		html, err := email.Render(context.Background(), alert.IncidentEmail(alert.Incident{
			DashboardLink: "javascript:alert(1)",
		}))
		require.NoError(t, err)
		assert.NotContains(t, html, "javascript:")
	})
	t.Run("renders dashboard button and port", func(t *testing.T) {
		t.Parallel()

		html, err := email.Render(context.Background(), alert.IncidentEmail(alert.Incident{
			Port:          8080,
			DashboardLink: "https://grafana.example.com/d/geoapi?from=now-1h&to=now",
		}))
		require.NoError(t, err)
		assert.Contains(t, html, "Go to Dashboard")
		assert.Contains(t, html, `href="https://grafana.example.com/d/geoapi?from=now-1h&amp;to=now"`)
		assert.Contains(t, html, "<li>Port: 8080</li>")
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := email.Render(ctx, alert.IncidentEmail(alert.Incident{}))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
