package sanitizer_test

import (
	"encoding/json"
	"net/url"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/pkg/sanitizer"
)

func samePointer(t *testing.T, a, b any) bool {
	t.Helper()
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func TestDeepSanitize(t *testing.T) {
	t.Parallel()

	d := sanitizer.NewDeep()

	t.Run("cleans strings in a json payload", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{"name": "<script>alert(1)</script>Paris"}
		out := d.Sanitize(in).(map[string]any)
		assert.Equal(t, "Paris", out["name"])
	})

	t.Run("preserves scalars and shape", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{
			"id":      json.Number("42"),
			"active":  true,
			"ratio":   0.5,
			"missing": nil,
			"tags":    []any{"<i>a</i>", 7, []any{"<b>b</b>"}},
			"nested":  map[string]any{"city": "<p>Rome</p>"},
		}

		out := d.Sanitize(in)
		assert.Equal(t, map[string]any{
			"id":      json.Number("42"),
			"active":  true,
			"ratio":   0.5,
			"missing": nil,
			"tags":    []any{"a", 7, []any{"b"}},
			"nested":  map[string]any{"city": "Rome"},
		}, out)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		t.Parallel()

		inner := []any{"<b>x</b>"}
		in := map[string]any{"list": inner, "name": "<b>y</b>"}
		_ = d.Sanitize(in)

		assert.Equal(t, "<b>y</b>", in["name"])
		assert.Equal(t, "<b>x</b>", inner[0])
	})

	t.Run("cleans map keys", func(t *testing.T) {
		t.Parallel()

		out := d.Sanitize(map[string]any{"<b>name</b>": "Oslo"}).(map[string]any)
		assert.Equal(t, map[string]any{"name": "Oslo"}, out)
	})

	t.Run("keeps query value types", func(t *testing.T) {
		t.Parallel()

		in := url.Values{"name": {"<b>Kyiv</b>", "Lviv"}}
		out, ok := d.Sanitize(in).(url.Values)
		require.True(t, ok)
		assert.Equal(t, url.Values{"name": {"Kyiv", "Lviv"}}, out)

		plain := d.Sanitize(map[string]string{"q": "<i>x</i>"})
		assert.Equal(t, map[string]string{"q": "x"}, plain)

		segments := d.Sanitize([]string{"", "countries", "<svg onload=alert(1)>US"})
		assert.Equal(t, []string{"", "countries", "US"}, segments)
	})

	t.Run("empty containers become empty clones", func(t *testing.T) {
		t.Parallel()

		m := d.Sanitize(map[string]any{}).(map[string]any)
		assert.NotNil(t, m)
		assert.Empty(t, m)

		s := d.Sanitize([]any{}).([]any)
		assert.NotNil(t, s)
		assert.Empty(t, s)
	})

	t.Run("non-container values pass through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 3, d.Sanitize(3))
		assert.Nil(t, d.Sanitize(nil))
		assert.Equal(t, "x", d.Sanitize("<b>x</b>"))
	})
}

func TestDeepSanitizeCycles(t *testing.T) {
	t.Parallel()

	d := sanitizer.NewDeep()

	t.Run("self referencing map", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{"name": "<b>Rome</b>"}
		in["self"] = in

		out := d.Sanitize(in).(map[string]any)
		assert.Equal(t, "Rome", out["name"])
		assert.True(t, samePointer(t, out, out["self"]), "cycle must point at the clone")
		assert.False(t, samePointer(t, in, out), "clone must be a new map")
	})

	t.Run("self referencing slice", func(t *testing.T) {
		t.Parallel()

		in := make([]any, 2)
		in[0] = "<i>Lima</i>"
		in[1] = in

		out := d.Sanitize(in).([]any)
		assert.Equal(t, "Lima", out[0])
		assert.True(t, samePointer(t, out, out[1]))
	})

	t.Run("indirect cycle", func(t *testing.T) {
		t.Parallel()

		a := map[string]any{"name": "a"}
		b := map[string]any{"name": "b", "a": a}
		a["b"] = []any{b}

		out := d.Sanitize(a).(map[string]any)
		back := out["b"].([]any)[0].(map[string]any)["a"]
		assert.True(t, samePointer(t, out, back))
	})
}

func TestDeepSanitizeVisitsSharedNodesOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	d := sanitizer.NewDeep(sanitizer.WithStringCleaner(func(s string) string {
		calls++
		return s
	}))

	shared := map[string]any{"k": "v"}
	out := d.Sanitize(map[string]any{"a": shared, "b": shared}).(map[string]any)

	// keys a and b, then k and v of the shared map once
	assert.Equal(t, 4, calls)
	assert.True(t, samePointer(t, out["a"], out["b"]))
}

func TestDeepSanitizeDeepNesting(t *testing.T) {
	t.Parallel()

	const depth = 10000

	var in any = "<b>leaf</b>"
	for i := range depth {
		if i%2 == 0 {
			in = []any{in}
		} else {
			in = map[string]any{"n": in}
		}
	}

	out := sanitizer.NewDeep().Sanitize(in)

	cur := out
	for range depth {
		switch v := cur.(type) {
		case []any:
			cur = v[0]
		case map[string]any:
			cur = v["n"]
		default:
			t.Fatalf("unexpected node %T", cur)
		}
	}
	assert.Equal(t, "leaf", cur)
}

func TestDeepClean(t *testing.T) {
	t.Parallel()

	t.Run("returns cleaned value", func(t *testing.T) {
		t.Parallel()

		out, err := sanitizer.NewDeep().Clean([]any{"<b>x</b>"})
		require.NoError(t, err)
		assert.Equal(t, []any{"x"}, out)
	})

	t.Run("recovers from cleaner panic", func(t *testing.T) {
		t.Parallel()

		d := sanitizer.NewDeep(sanitizer.WithStringCleaner(func(string) string {
			panic("boom")
		}))

		out, err := d.Clean(map[string]any{"name": "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, sanitizer.ErrSanitizationFailed)
		assert.Nil(t, out)
	})
}
