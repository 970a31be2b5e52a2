package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileSender writes each message to Dir as <name>.html with a <name>.json
// sidecar holding the headers. It is the transport for local runs.
type FileSender struct {
	dir string
	now func() time.Time
}

// NewFileSender returns a sender writing into dir, created on first send.
func NewFileSender(dir string) *FileSender {
	return &FileSender{dir: dir, now: time.Now}
}

type fileHeaders struct {
	Message
	SentAt time.Time `json:"sent_at"`
}

func (s *FileSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	now := s.now().UTC()
	label := msg.Tag
	if label == "" {
		label = msg.Subject
	}
	base := filepath.Join(s.dir, fmt.Sprintf("%s_%s_%s",
		now.Format("20060102T150405"), slugify(label), uuid.NewString()[:8]))

	if err := os.WriteFile(base+".html", []byte(msg.HTML), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	headers, err := json.MarshalIndent(fileHeaders{Message: msg, SentAt: now}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if err := os.WriteFile(base+".json", headers, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// slugify keeps ASCII letters and digits, turns runs of anything else into a
// single dash and caps the result at 48 bytes.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= 48 {
			break
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "email"
	}
	return out
}

var _ Sender = (*FileSender)(nil)
