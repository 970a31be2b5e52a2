package environment

import (
	"errors"
	"fmt"
	"strings"
)

// Environment is the deployment stage named by APP_ENV.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Staging     Environment = "staging"
	Test        Environment = "test"
)

var ErrUnknownEnvironment = errors.New("unknown environment")

// Parse maps APP_ENV values, including the short aliases, to an Environment.
func Parse(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return Development, nil
	case "production", "prod":
		return Production, nil
	case "staging", "stage":
		return Staging, nil
	case "test", "testing":
		return Test, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, s)
	}
}

func (e Environment) String() string { return string(e) }

// IsProduction reports whether e serves real traffic.
func (e Environment) IsProduction() bool { return e == Production }

// IsLocal reports whether e runs on a developer machine or in CI.
func (e Environment) IsLocal() bool { return e == Development || e == Test }

// DatabaseName returns the database to use in e. Test runs get a "-test"
// suffix so they never touch development data.
func (e Environment) DatabaseName(base string) string {
	if e == Test && !strings.HasSuffix(base, "-test") {
		return base + "-test"
	}
	return base
}
