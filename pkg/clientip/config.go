package clientip

// Config selects which forwarding headers are honoured and which peers are
// allowed to set them.
type Config struct {
	Headers        []string `env:"CLIENT_IP_HEADERS" envSeparator:"," envDefault:"X-Forwarded-For,X-Real-IP"`                                        // Headers are checked in order.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," envDefault:"127.0.0.0/8,::1/128,10.0.0.0/8,172.16.0.0/12,192.168.0.0/16"` // TrustedProxies are CIDR ranges or single addresses.
}
