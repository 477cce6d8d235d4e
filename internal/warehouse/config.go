package warehouse

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config is the warehouse connection configuration. Every field is
// mandatory; there are no defaults to fall back to.
type Config struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

var envVars = []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD"}

// ConfigFromEnv reads the DB_* variables. A missing or empty variable is
// a startup error; the caller is expected to treat it as fatal.
func ConfigFromEnv() (Config, error) {
	var missing []string
	get := func(name string) string {
		v := os.Getenv(name)
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
		return v
	}
	cfg := Config{
		Host:     get("DB_HOST"),
		Port:     get("DB_PORT"),
		Database: get("DB_NAME"),
		User:     get("DB_USER"),
		Password: get("DB_PASSWORD"),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("warehouse config: missing mandatory env: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// DSN builds the postgres connection string. The password is
// percent-encoded so credentials with reserved characters survive
// embedding in the URL.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.Database)
}
