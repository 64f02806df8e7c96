package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// API_URL is the GraphQL endpoint used when nothing else is configured
const API_URL = "http://localhost:4000/graphql"

const (
	appDirName     = ".nomad-coffee"
	configFileName = "nomad"
	envPrefix      = "NOMAD"
)

type APIConfig struct {
	URL     string
	Timeout time.Duration
}

type SessionConfig struct {
	DBPath string
}

type LogConfig struct {
	Level  string
	Format string
}

type DevServerConfig struct {
	Addr     string
	Secret   string
	TokenTTL time.Duration
}

// Config is the resolved application configuration
type Config struct {
	API       APIConfig
	Session   SessionConfig
	Log       LogConfig
	DevServer DevServerConfig
}

// AppDir returns the per-user directory holding the session database and the optional config file.
func AppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, appDirName), nil
}

// Load reads configuration from defaults, an optional config file and NOMAD_* environment
// variables, in increasing order of precedence. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(".")
		if dir, err := AppDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		API: APIConfig{
			URL:     v.GetString("api.url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Session: SessionConfig{
			DBPath: v.GetString("session.db_path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		DevServer: DevServerConfig{
			Addr:     v.GetString("devserver.addr"),
			Secret:   v.GetString("devserver.secret"),
			TokenTTL: v.GetDuration("devserver.token_ttl"),
		},
	}

	if cfg.Session.DBPath == "" {
		dir, err := AppDir()
		if err != nil {
			return nil, err
		}
		cfg.Session.DBPath = filepath.Join(dir, "session.db")
	}
	if cfg.API.URL == "" {
		return nil, errors.New("api.url must not be empty")
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", API_URL)
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("session.db_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("devserver.addr", ":4000")
	v.SetDefault("devserver.secret", "dev-secret")
	v.SetDefault("devserver.token_ttl", 24*time.Hour)
}
