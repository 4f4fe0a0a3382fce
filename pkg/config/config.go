// Package config loads the mindmap configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/mindmap/config.toml
// (~/.config/mindmap/config.toml when XDG_CONFIG_HOME is unset). Every key is
// optional. Values are resolved in this order, later wins:
//
//  1. built-in defaults ([Default])
//  2. the config file
//  3. MINDMAP_* environment variables (see [EnvVars])
//  4. command line flags, applied by the caller
//
// Load merges the first three layers with koanf.
//
// Example:
//
//	source = "http"
//	api_url = "https://mental-models-backend.onrender.com/api"
//	max_models_per_section = 6
//
//	[layout]
//	section_radius = 350
//	model_radius = 180
//	model_spread_degrees = 90
//
//	[cache]
//	ttl = "1h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	cors_origins = ["http://localhost:3000"]
package config

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gregorypanta/mental-models-app/pkg/cache"
	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	"github.com/gregorypanta/mental-models-app/pkg/errors"
	"github.com/gregorypanta/mental-models-app/pkg/integrations/contentapi"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "mindmap"

// Config is the parsed configuration file.
type Config struct {
	Source              string `toml:"source"`
	APIURL              string `toml:"api_url"`
	SnapshotPath        string `toml:"snapshot_path,omitempty"`
	RootLabel           string `toml:"root_label"`
	MaxModelsPerSection int    `toml:"max_models_per_section"`
	ModelLimit          int    `toml:"model_limit"`
	Renderer            string `toml:"renderer"`

	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds the radial geometry. The spread is in degrees here and
// converted to radians for the layout engine.
type LayoutConfig struct {
	SectionRadius      float64 `toml:"section_radius"`
	ModelRadius        float64 `toml:"model_radius"`
	ModelSpreadDegrees float64 `toml:"model_spread_degrees"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Disabled      bool          `toml:"disabled"`
	Dir           string        `toml:"dir,omitempty"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr,omitempty"`
	RedisPassword string        `toml:"redis_password,omitempty"`
	RedisDB       int           `toml:"redis_db"`
	RedisPrefix   string        `toml:"redis_prefix,omitempty"`
}

// MongoConfig locates the catalog database for the mongo source.
type MongoConfig struct {
	URI      string `toml:"uri,omitempty"`
	Database string `toml:"database"`
}

// ServerConfig configures `mindmap serve`.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`
	NavBaseURL  string   `toml:"nav_base_url,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source:              pipeline.DefaultSource,
		APIURL:              contentapi.DefaultBaseURL,
		RootLabel:           mindmap.DefaultRootLabel,
		MaxModelsPerSection: mindmap.DefaultMaxModelsPerSection,
		ModelLimit:          catalog.DefaultLimit,
		Renderer:            pipeline.DefaultRenderer,
		Layout: LayoutConfig{
			SectionRadius:      mindmap.DefaultSectionRadius,
			ModelRadius:        mindmap.DefaultModelRadius,
			ModelSpreadDegrees: 90,
		},
		Cache: CacheConfig{
			TTL:         cache.TTLHTTP,
			RedisPrefix: cache.DefaultRedisPrefix,
		},
		Mongo: MongoConfig{
			Database: pipeline.DefaultMongoDatabase,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Load layers the defaults, the file at path and the MINDMAP_* environment
// overrides, then validates the result. An empty path means [DefaultPath];
// a missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	k := koanf.New(".")

	defaults, err := Default().toMap()
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), tomlParser{}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("access config %s: %w", path, err)
	}

	if err := k.Load(envProvider(), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "toml"}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Save writes c to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if err := pipeline.ValidateSource(c.Source); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "source")
	}
	if err := pipeline.ValidateRenderer(c.Renderer); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "renderer")
	}
	if err := errors.ValidateURL(c.APIURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "api_url")
	}
	if c.Source == pipeline.SourceMongo {
		if err := errors.ValidateMongoURI(c.Mongo.URI); err != nil {
			return err
		}
	}
	if c.MaxModelsPerSection < 1 {
		return invalid("max_models_per_section must be at least 1, got %d", c.MaxModelsPerSection)
	}
	if c.ModelLimit < 1 || c.ModelLimit > catalog.MaxLimit {
		return invalid("model_limit must be within 1..%d, got %d", catalog.MaxLimit, c.ModelLimit)
	}
	if c.Layout.SectionRadius <= 0 || c.Layout.ModelRadius <= 0 {
		return invalid("layout radii must be positive")
	}
	if c.Layout.ModelSpreadDegrees <= 0 || c.Layout.ModelSpreadDegrees > 360 {
		return invalid("model_spread_degrees must be within (0, 360], got %g", c.Layout.ModelSpreadDegrees)
	}
	if c.Cache.TTL < 0 {
		return invalid("cache ttl must not be negative")
	}
	if c.Server.NavBaseURL != "" {
		if err := errors.ValidateURL(c.Server.NavBaseURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "nav_base_url")
		}
	}
	return nil
}

// Geometry converts the layout section for the layout engine.
func (c *Config) Geometry() mindmap.Config {
	return mindmap.Config{
		SectionRadius: c.Layout.SectionRadius,
		ModelRadius:   c.Layout.ModelRadius,
		ModelSpread:   c.Layout.ModelSpreadDegrees * math.Pi / 180,
	}
}

// PipelineOptions seeds pipeline options from the configuration.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Source:              c.Source,
		APIURL:              c.APIURL,
		MongoURI:            c.Mongo.URI,
		MongoDatabase:       c.Mongo.Database,
		SnapshotPath:        c.SnapshotPath,
		Limit:               c.ModelLimit,
		CacheTTL:            c.Cache.TTL,
		RootLabel:           c.RootLabel,
		MaxModelsPerSection: c.MaxModelsPerSection,
		Geometry:            c.Geometry(),
		Renderer:            c.Renderer,
		NavBaseURL:          c.Server.NavBaseURL,
	}
}

// CacheOptions returns the options for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	dir := c.Cache.Dir
	if dir == "" {
		dir, _ = cache.DefaultDir(AppName)
	}
	return cache.Options{
		Disabled: c.Cache.Disabled,
		Dir:      dir,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			Prefix:   c.Cache.RedisPrefix,
		},
	}
}

// Redacted returns a copy safe to print: secrets are masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.Server.CORSOrigins = append([]string(nil), c.Server.CORSOrigins...)
	if out.Cache.RedisPassword != "" {
		out.Cache.RedisPassword = "****"
	}
	if out.Mongo.URI != "" {
		out.Mongo.URI = redactURI(out.Mongo.URI)
	}
	return &out
}

// redactURI masks the password in a mongodb:// connection string.
func redactURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return uri
	}
	user, _, hasPass := strings.Cut(userinfo, ":")
	if !hasPass {
		return uri
	}
	return scheme + "://" + user + ":****@" + host
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
