package alert_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/pkg/alert"
	"github.com/dmitrymomot/geoapi/pkg/email"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, params email.Message) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

type recorder struct {
	mu      sync.Mutex
	results []string
}

func (r *recorder) AlertResult(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.results...)
}

func TestNotifier_Notify(t *testing.T) {
	t.Parallel()

	t.Run("sends rendered incident to admin", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		var got email.Message
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(email.Message) }).
			Return(nil).Once()

		rec := &recorder{}
		detected := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		n := alert.New(sender, alert.Config{
			AdminEmail:   "admin@example.com",
			DashboardURL: "https://dash.example.com",
			Cooldown:     time.Minute,
		}, alert.WithRecorder(rec), alert.WithOrigin("10.0.0.1", 8080))

		ok := n.Notify(context.Background(), alert.Incident{
			Reason:       "Database Connection Failure",
			ErrorCode:    "DB_CONN_FAILURE",
			Component:    "mongodb",
			Path:         "/api/v1/countries",
			TimeDetected: detected,
		})
		n.Wait()

		assert.True(t, ok)
		sender.AssertExpectations(t)
		assert.Equal(t, "admin@example.com", got.To)
		assert.Equal(t, alert.Subject, got.Subject)
		assert.Contains(t, got.HTML, "Reason: Database Connection Failure")
		assert.Contains(t, got.HTML, "Error Code: DB_CONN_FAILURE")
		assert.Contains(t, got.HTML, "Address: 10.0.0.1")
		assert.Contains(t, got.HTML, "Port: 8080")
		assert.Contains(t, got.HTML, "https://dash.example.com")
		assert.Equal(t, []string{alert.ResultSent}, rec.all())
	})

	t.Run("throttles per component", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("Send", mock.Anything, mock.Anything).Return(nil)

		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		var mu sync.Mutex
		clock := func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return now
		}
		advance := func(d time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			now = now.Add(d)
		}

		rec := &recorder{}
		n := alert.New(sender, alert.Config{AdminEmail: "admin@example.com", Cooldown: 5 * time.Minute},
			alert.WithRecorder(rec), alert.WithClock(clock))
		ctx := context.Background()

		assert.True(t, n.Notify(ctx, alert.Incident{Component: "mongodb"}))
		assert.False(t, n.Notify(ctx, alert.Incident{Component: "mongodb"}))
		assert.True(t, n.Notify(ctx, alert.Incident{Component: "redis"}))

		advance(5 * time.Minute)
		assert.True(t, n.Notify(ctx, alert.Incident{Component: "mongodb"}))
		n.Wait()

		sender.AssertNumberOfCalls(t, "Send", 3)
		assert.ElementsMatch(t, []string{
			alert.ResultSent, alert.ResultThrottled, alert.ResultSent, alert.ResultSent,
		}, rec.all())
	})

	t.Run("records delivery failure", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		rec := &recorder{}
		n := alert.New(sender, alert.Config{AdminEmail: "admin@example.com"}, alert.WithRecorder(rec))

		assert.True(t, n.Notify(context.Background(), alert.Incident{Component: "mongodb"}))
		n.Wait()

		assert.Equal(t, []string{alert.ResultFailed}, rec.all())
	})

	t.Run("outlives canceled request context", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("Send", mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Err() == nil
		}), mock.Anything).Return(nil).Once()

		n := alert.New(sender, alert.Config{AdminEmail: "admin@example.com"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.True(t, n.Notify(ctx, alert.Incident{Component: "mongodb"}))
		n.Wait()
		sender.AssertExpectations(t)
	})

	t.Run("disabled without admin email", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		n := alert.New(sender, alert.Config{})

		assert.False(t, n.Enabled())
		assert.False(t, n.Notify(context.Background(), alert.Incident{Component: "mongodb"}))
		n.Wait()
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("nil notifier is a no-op", func(t *testing.T) {
		t.Parallel()

		var n *alert.Notifier
		require.False(t, n.Notify(context.Background(), alert.Incident{}))
		n.Wait()
	})
}
