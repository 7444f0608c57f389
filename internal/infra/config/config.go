package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is built once at startup and never mutated afterwards. Components
// receive it by reference; nothing reads the environment mid-request.
type Config struct {
	Port         int
	NATSServers  []string
	JWTSecret    string
	TokenTTL     time.Duration
	DatabaseURL  string
	DatabaseName string
}

const (
	defaultTokenTTL     = 2 * time.Hour
	defaultDatabaseName = "authdb"
)

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	for _, key := range []string{
		"PORT",
		"NATS_SERVERS",
		"JWT_SECRET",
		"DATABASE_URL",
		"DATABASE_NAME",
		"TOKEN_TTL",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	port, err := strconv.Atoi(v.GetString("PORT"))
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("config: PORT must be a positive number, got %q", v.GetString("PORT"))
	}

	servers := splitNonEmpty(v.GetString("NATS_SERVERS"), ",")
	if len(servers) == 0 {
		return nil, fmt.Errorf("config: NATS_SERVERS must list at least one server")
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}

	dbURL := v.GetString("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}

	dbName := v.GetString("DATABASE_NAME")
	if dbName == "" {
		dbName = defaultDatabaseName
	}

	ttl := defaultTokenTTL
	if raw := v.GetString("TOKEN_TTL"); raw != "" {
		ttl, err = time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("config: TOKEN_TTL must be a positive duration, got %q", raw)
		}
	}

	return &Config{
		Port:         port,
		NATSServers:  servers,
		JWTSecret:    secret,
		TokenTTL:     ttl,
		DatabaseURL:  dbURL,
		DatabaseName: dbName,
	}, nil
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
