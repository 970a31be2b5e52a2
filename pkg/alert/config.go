package alert

import "time"

// Config controls who receives alerts and how often.
type Config struct {
	AdminEmail   string        `env:"ADMIN_EMAIL"`
	DashboardURL string        `env:"ALERT_DASHBOARD_URL"`
	Cooldown     time.Duration `env:"ALERT_COOLDOWN" envDefault:"5m"`
	SendTimeout  time.Duration `env:"ALERT_SEND_TIMEOUT" envDefault:"10s"`
}
