package email

import "time"

// Config selects and configures the transport used by NewSender.
//
// A Postmark server token wins over SMTP; with neither set, messages are
// written to DevDir so local runs need no mail credentials.
type Config struct {
	From    string `env:"EMAIL_FROM" envDefault:"no-reply@example.com"`
	ReplyTo string `env:"EMAIL_REPLY_TO"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SMTPHost     string        `env:"SMTP_HOST"`
	SMTPPort     int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string        `env:"SMTP_USERNAME"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	SMTPTimeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"15s"`

	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// Transport names reported by Kind.
const (
	TransportPostmark = "postmark"
	TransportSMTP     = "smtp"
	TransportFile     = "file"
)

// Kind returns the transport NewSender will build for c.
func (c Config) Kind() string {
	switch {
	case c.PostmarkServerToken != "":
		return TransportPostmark
	case c.SMTPHost != "":
		return TransportSMTP
	default:
		return TransportFile
	}
}
