package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AuthModeAPIKey = "API_KEY"
	AuthModeIAM    = "AWS_IAM"
)

type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	StaticDir  string `mapstructure:"static_dir"`

	RootURL string `mapstructure:"root_url"`

	CacheHTML string `mapstructure:"cache_html"`

	GraphQLEndpoint string `mapstructure:"graphql_endpoint"`
	GraphQLAuthMode string `mapstructure:"graphql_auth_mode"`
	GraphQLAPIKey   string `mapstructure:"graphql_api_key"`
	AWSRegion       string `mapstructure:"aws_region"`

	AuthCookie string `mapstructure:"auth_cookie"`

	PathsRefreshInterval time.Duration `mapstructure:"paths_refresh_interval"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := strings.TrimSpace(v.GetString("config")); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config file %q not found", file)
			}
			return Config{}, fmt.Errorf("read config %q: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return normalize(cfg), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("static_dir", "internal/web/static")
	v.SetDefault("root_url", "")
	v.SetDefault("cache_html", "public, max-age=3600, s-maxage=3600")
	v.SetDefault("graphql_endpoint", "http://localhost:20002/graphql")
	v.SetDefault("graphql_auth_mode", AuthModeAPIKey)
	v.SetDefault("graphql_api_key", "")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("auth_cookie", "blog_id_token")
	v.SetDefault("paths_refresh_interval", 5*time.Minute)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

func normalize(cfg Config) Config {
	cfg.RootURL = strings.TrimRight(strings.TrimSpace(cfg.RootURL), "/")
	cfg.CacheHTML = strings.TrimSpace(cfg.CacheHTML)

	switch strings.ToUpper(strings.TrimSpace(cfg.GraphQLAuthMode)) {
	case AuthModeIAM:
		cfg.GraphQLAuthMode = AuthModeIAM
	default:
		cfg.GraphQLAuthMode = AuthModeAPIKey
	}

	if strings.TrimSpace(cfg.AuthCookie) == "" {
		cfg.AuthCookie = "blog_id_token"
	}
	if cfg.PathsRefreshInterval < 0 {
		cfg.PathsRefreshInterval = 0
	}

	return cfg
}
