/*
Package config loads settings from a YAML file, a .env file and the environment.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/shanehull/corpactions/internal/exchange"
	"github.com/shanehull/corpactions/internal/types"
)

const (
	EnvSMTPServer   = "CORPACTIONS_SMTP_SERVER"
	EnvSMTPPort     = "CORPACTIONS_SMTP_PORT"
	EnvSMTPUser     = "CORPACTIONS_SMTP_USER"
	EnvSMTPPass     = "CORPACTIONS_SMTP_PASS"
	EnvFromEmail    = "CORPACTIONS_FROM_EMAIL"
	EnvToEmail      = "CORPACTIONS_TO_EMAIL"
	EnvLogLevel     = "CORPACTIONS_LOG_LEVEL"
	EnvGeminiAPIKey = "GEMINI_API_KEY"

	defaultGeminiModel = "gemini-2.5-flash"
)

type Fetch struct {
	UserAgent     string        `yaml:"user_agent"`
	Timeout       time.Duration `yaml:"timeout"`
	RatePerSecond float64       `yaml:"rate_per_second"`
}

type Cache struct {
	TTL      time.Duration `yaml:"ttl"`
	Timezone string        `yaml:"timezone"`
}

// Companies selects the company universe. File and RemoteURL are mutually
// exclusive; with neither, Static (or the built-in mapping) is used.
type Companies struct {
	Static     map[string]string `yaml:"static"`
	File       string            `yaml:"file"`
	RemoteURL  string            `yaml:"remote_url"`
	NameColumn string            `yaml:"name_column"`
	CodeColumn string            `yaml:"code_column"`
}

type Export struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type SMTP struct {
	Server string `yaml:"server"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Pass   string `yaml:"-"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
}

// Enabled reports whether enough is set to send mail.
func (s SMTP) Enabled() bool {
	return s.Server != "" && s.User != "" && s.Pass != "" && s.To != ""
}

type Gemini struct {
	APIKey string `yaml:"-"`
	Model  string `yaml:"model"`
}

type Config struct {
	Source    exchange.Source `yaml:"source"`
	Fetch     Fetch           `yaml:"fetch"`
	Cache     Cache           `yaml:"cache"`
	Companies Companies       `yaml:"companies"`
	Export    Export          `yaml:"export"`
	Log       Log             `yaml:"log"`
	SMTP      SMTP            `yaml:"smtp"`
	Gemini    Gemini          `yaml:"gemini"`
}

func Default() Config {
	return Config{
		Source: exchange.DefaultSource(),
		Fetch: Fetch{
			UserAgent: exchange.DefaultUserAgent,
			Timeout:   exchange.DefaultTimeout,
		},
		Cache:  Cache{Timezone: "Asia/Kolkata"},
		Export: Export{Dir: ".", Format: "csv"},
		Log:    Log{Level: "info"},
		SMTP:   SMTP{Server: "smtp.gmail.com", Port: 587},
		Gemini: Gemini{Model: defaultGeminiModel},
	}
}

// Load applies, in order: defaults, the YAML file at path (if path is not
// empty), a .env file in the working directory, and environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		var peek struct {
			Source struct {
				Shape types.Shape `yaml:"shape"`
			} `yaml:"source"`
		}
		if err := yaml.Unmarshal(data, &peek); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		// A different shape starts from an empty source; BSE defaults only
		// apply to the BSE JSON API.
		if peek.Source.Shape != "" && peek.Source.Shape != cfg.Source.Shape {
			cfg.Source = exchange.Source{}
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString(&c.SMTP.Server, EnvSMTPServer)
	setString(&c.SMTP.User, EnvSMTPUser)
	setString(&c.SMTP.Pass, EnvSMTPPass)
	setString(&c.SMTP.From, EnvFromEmail)
	setString(&c.SMTP.To, EnvToEmail)
	setString(&c.Log.Level, EnvLogLevel)
	setString(&c.Gemini.APIKey, EnvGeminiAPIKey)

	if v := os.Getenv(EnvSMTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSMTPPort, v, err)
		}
		c.SMTP.Port = port
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := exchange.DefaultSource()
	if c.Source.Shape == "" {
		c.Source.Shape = def.Shape
	}
	if c.Source.URLTemplate == "" && c.Source.Shape == def.Shape {
		c.Source.URLTemplate = def.URLTemplate
	}
	if c.Source.Name == "" {
		c.Source.Name = string(c.Source.Shape)
	}
	if c.Source.Shape == types.ShapeJSON && c.Source.TableKey == "" {
		c.Source.TableKey = def.TableKey
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = exchange.DefaultUserAgent
	}
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.User
	}
}

func (c Config) Validate() error {
	var errs []error
	if !c.Source.Shape.Valid() {
		errs = append(errs, fmt.Errorf("source.shape must be json or html, got %q", c.Source.Shape))
	}
	if !strings.Contains(c.Source.URLTemplate, "%s") {
		errs = append(errs, errors.New("source.url must contain %s for the security code"))
	}
	if c.Source.Shape == types.ShapeHTML && c.Source.TableID == "" {
		errs = append(errs, errors.New("source.table_id is required for html sources"))
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be positive"))
	}
	if c.Fetch.RatePerSecond < 0 {
		errs = append(errs, errors.New("fetch.rate_per_second must not be negative"))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, errors.New("cache.ttl must not be negative"))
	}
	if c.Companies.File != "" && c.Companies.RemoteURL != "" {
		errs = append(errs, errors.New("companies.file and companies.remote_url are mutually exclusive"))
	}
	return errors.Join(errs...)
}
