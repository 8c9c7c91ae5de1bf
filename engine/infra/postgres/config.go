package postgres

import (
	"fmt"
	"strings"
	"time"
)

// Config holds PostgreSQL connection settings for the request source.
// Prefer providing a DSN via ConnString. When empty, a DSN will be
// synthesized from the individual fields.
type Config struct {
	ConnString     string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxOpenConns   int
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

// IsZero reports whether no connection setting was provided at all.
func (c *Config) IsZero() bool {
	return c == nil || (c.ConnString == "" && c.Host == "" && c.DBName == "")
}

func dsn(cfg *Config) string {
	if cfg.ConnString != "" {
		return cfg.ConnString
	}
	parts := make([]string, 0, 6)
	add := func(key, value string) {
		if value == "" {
			return
		}
		parts = append(parts, fmt.Sprintf("%s=%s", key, quoteDSNValue(value)))
	}
	add("host", cfg.Host)
	add("port", cfg.Port)
	add("user", cfg.User)
	add("password", cfg.Password)
	add("dbname", cfg.DBName)
	add("sslmode", cfg.SSLMode)
	return strings.Join(parts, " ")
}

// quoteDSNValue quotes values for the libpq keyword/value format.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
