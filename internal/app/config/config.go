package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App               AppConfig          `mapstructure:"app"`
	Server            ServerConfig       `mapstructure:"server"`
	Inference         InferenceConfig    `mapstructure:"inference"`
	Redis             RedisConfig        `mapstructure:"redis"`
	DefaultAssessment string             `mapstructure:"default_assessment"`
	Assessments       []AssessmentConfig `mapstructure:"assessments"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Secret          string        `mapstructure:"secret"`
	SecureCookies   bool          `mapstructure:"secure_cookies"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type InferenceConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// RedisConfig enables prediction events when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AssessmentConfig describes one disease model and its form rules.
// Lists are used instead of maps so feature names keep their case.
type AssessmentConfig struct {
	Name             string              `mapstructure:"name"`
	Title            string              `mapstructure:"title"`
	AssetsDir        string              `mapstructure:"assets_dir"`
	Weight           float64             `mapstructure:"weight"`
	CriticalOverride bool                `mapstructure:"critical_override"`
	Categorical      []CategoricalConfig `mapstructure:"categorical"`
	Constraints      []ConstraintConfig  `mapstructure:"constraints"`
}

type CategoricalConfig struct {
	Field    string `mapstructure:"field"`
	Positive string `mapstructure:"positive"`
}

type ConstraintConfig struct {
	Field string  `mapstructure:"field"`
	Min   float64 `mapstructure:"min"`
	Max   float64 `mapstructure:"max"`
}

const (
	DefaultPort   = "3000"
	DefaultSecret = "your-default-secret"
	envPrefix     = "RISKAPI"
)

// DefaultHeartAssessment mirrors the built-in heart disease form.
func DefaultHeartAssessment() AssessmentConfig {
	return AssessmentConfig{
		Name:             "heart",
		Title:            "Heart Disease",
		AssetsDir:        "assets/heart",
		Weight:           0.5,
		CriticalOverride: true,
		Categorical:      []CategoricalConfig{{Field: "sex", Positive: "male"}},
		Constraints: []ConstraintConfig{
			{Field: "age", Min: 0, Max: 120},
			{Field: "trestbps", Min: 50, Max: 250},
			{Field: "chol", Min: 100, Max: 600},
			{Field: "thalach", Min: 60, Max: 220},
			{Field: "oldpeak", Min: 0, Max: 10},
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "riskapi")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.secret", DefaultSecret)
	v.SetDefault("server.session_ttl", time.Hour)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("inference.timeout", 2*time.Second)
}

// Load reads configPath (skipped when empty), then applies environment overrides:
// PORT and SECRET_KEY, plus RISKAPI_<SECTION>_<KEY> for any scalar key.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "PORT", envPrefix+"_SERVER_PORT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.secret", "SECRET_KEY", envPrefix+"_SERVER_SECRET"); err != nil {
		return nil, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	if len(cfg.Assessments) == 0 {
		cfg.Assessments = []AssessmentConfig{DefaultHeartAssessment()}
	}
	if cfg.DefaultAssessment == "" {
		cfg.DefaultAssessment = cfg.Assessments[0].Name
	}
	for i := range cfg.Assessments {
		a := &cfg.Assessments[i]
		if a.Title == "" {
			a.Title = a.Name
		}
		if a.Weight == 0 {
			a.Weight = 1
		}
	}

	return &cfg, nil
}

// Validate checks the configuration before any asset is touched.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Inference.Timeout <= 0 {
		return fmt.Errorf("inference.timeout must be positive")
	}

	seen := make(map[string]struct{}, len(c.Assessments))
	for _, a := range c.Assessments {
		if a.Name == "" {
			return fmt.Errorf("assessment name is required")
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("assessment %s is defined twice", a.Name)
		}
		seen[a.Name] = struct{}{}

		if a.AssetsDir == "" {
			return fmt.Errorf("assessment %s: assets_dir is required", a.Name)
		}
		if a.Weight < 0 {
			return fmt.Errorf("assessment %s: weight cannot be negative", a.Name)
		}
		for _, b := range a.Constraints {
			if b.Field == "" || b.Min > b.Max {
				return fmt.Errorf("assessment %s: invalid constraint %q [%g, %g]", a.Name, b.Field, b.Min, b.Max)
			}
		}
		for _, cat := range a.Categorical {
			if cat.Field == "" || cat.Positive == "" {
				return fmt.Errorf("assessment %s: categorical field and positive value are required", a.Name)
			}
		}
	}

	if _, ok := seen[c.DefaultAssessment]; !ok {
		return fmt.Errorf("default_assessment %q is not configured", c.DefaultAssessment)
	}
	return nil
}

// UsesDefaultSecret reports whether SECRET_KEY was left at its placeholder.
func (c *Config) UsesDefaultSecret() bool {
	return c.Server.Secret == DefaultSecret
}
