package email

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// Render renders a templ component into an HTML body.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
