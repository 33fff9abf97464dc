// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/nataliastanko/recipes-api/pkg/defaults"
	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
	"github.com/nataliastanko/recipes-api/pkg/logging"
	"github.com/nataliastanko/recipes-api/pkg/server"
)

// Environment variable names.
const (
	EnvEnvironment     = "RECIPES_ENV"
	EnvStorageDir      = "RECIPES_STORAGE_DIR"
	EnvStoragePath     = "RECIPES_STORAGE_PATH"
	EnvStorageFileMode = "RECIPES_STORAGE_FILE_MODE"
	EnvPort            = "PORT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
	EnvCORSAllowOrigin = "RECIPES_CORS_ALLOW_ORIGIN"
	EnvRateLimit       = "RECIPES_RATE_LIMIT"
	EnvRateLimitBurst  = "RECIPES_RATE_LIMIT_BURST"
)

// DefaultEnvFile is the dotenv file read when present in the working directory.
const DefaultEnvFile = ".env"

// Deployment environments.
const (
	EnvDev  = "dev"
	EnvTest = "test"
	EnvProd = "prod"
)

// Environments returns the supported deployment environments.
func Environments() []string {
	return []string{EnvDev, EnvTest, EnvProd}
}

// Config is the full service configuration.
type Config struct {
	Env         string `yaml:"env"`
	StorageDir  string `yaml:"storageDir"`
	StoragePath string `yaml:"storagePath,omitempty"`
	// StorageFileMode is the octal permission of the backing file, e.g. "0600".
	StorageFileMode string `yaml:"storageFileMode,omitempty"`
	LogLevel        string `yaml:"logLevel,omitempty"`
	Server          Server `yaml:"server"`
	CORS            CORS   `yaml:"cors"`
}

// Server holds HTTP listener settings.
type Server struct {
	Address         string        `yaml:"address"`
	Port            int           `yaml:"port"`
	RateLimit       float64       `yaml:"rateLimit"`
	RateLimitBurst  int           `yaml:"rateLimitBurst"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// CORS holds cross-origin settings.
type CORS struct {
	AllowOrigin string `yaml:"allowOrigin"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Env:        defaults.Environment,
		StorageDir: defaults.StorageDir,
		Server: Server{
			Port:            server.DefaultPort,
			RateLimit:       server.DefaultRateLimit,
			RateLimitBurst:  server.DefaultRateLimitBurst,
			ReadTimeout:     defaults.ServerReadTimeout,
			WriteTimeout:    defaults.ServerWriteTimeout,
			IdleTimeout:     defaults.ServerIdleTimeout,
			ShutdownTimeout: defaults.ServerShutdownTimeout,
		},
		CORS: CORS{
			AllowOrigin: server.DefaultCORSAllowOrigin,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// empty), the dotenv file at envFile (skipped when empty or missing) and the
// process environment. The result is validated.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if envFile != "" {
		if err := loadDotEnv(envFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"failed to read config file", err, map[string]any{"path": path})
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"failed to parse config file", err, map[string]any{"path": path})
	}
	return nil
}

// loadDotEnv sets variables from a dotenv file without overriding any that
// are already present. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"failed to load env file", err, map[string]any{"path": path})
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(EnvEnvironment, &c.Env)
	str(EnvStorageDir, &c.StorageDir)
	str(EnvStoragePath, &c.StoragePath)
	str(EnvStorageFileMode, &c.StorageFileMode)
	str(logging.EnvLogLevel, &c.LogLevel)
	str(EnvCORSAllowOrigin, &c.CORS.AllowOrigin)

	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvPort, v, err)
		}
		c.Server.Port = port
	}

	if v, ok := lookup(EnvShutdownTimeout); ok && v != "" {
		seconds, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || seconds <= 0 {
			return envError(EnvShutdownTimeout, v, err)
		}
		c.Server.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		limit, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return envError(EnvRateLimit, v, err)
		}
		c.Server.RateLimit = limit
	}

	if v, ok := lookup(EnvRateLimitBurst); ok && v != "" {
		burst, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvRateLimitBurst, v, err)
		}
		c.Server.RateLimitBurst = burst
	}

	return nil
}

func envError(name, value string, err error) error {
	if err == nil {
		err = fmt.Errorf("must be positive")
	}
	return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
		"invalid environment variable", err, map[string]any{
			"name":  name,
			"value": value,
		})
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var problems []string

	if !slices.Contains(Environments(), c.Env) {
		problems = append(problems, fmt.Sprintf("env must be one of %s, got %q",
			strings.Join(Environments(), ", "), c.Env))
	}
	if c.StoragePath == "" && c.StorageDir == "" {
		problems = append(problems, "storage directory or path is required")
	}
	if c.StorageFileMode != "" {
		if _, err := parseFileMode(c.StorageFileMode); err != nil {
			problems = append(problems, fmt.Sprintf("storage file mode %q: %v", c.StorageFileMode, err))
		}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.RateLimit <= 0 {
		problems = append(problems, "rate limit must be positive")
	}
	if c.Server.RateLimitBurst <= 0 {
		problems = append(problems, "rate limit burst must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "shutdown timeout must be positive")
	}
	if c.LogLevel != "" && !validLogLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid configuration", map[string]any{"problems": problems})
	}
	return nil
}

func validLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// StorageFile returns the CSV file path: the explicit storage path if set,
// otherwise data_<env>.csv inside the storage directory.
func (c *Config) StorageFile() string {
	if c.StoragePath != "" {
		return c.StoragePath
	}
	return filepath.Join(c.StorageDir, "data_"+c.Env+".csv")
}

// StorageFilePerm returns the permission of the backing file. An unset or
// invalid mode yields the package default.
func (c *Config) StorageFilePerm() os.FileMode {
	if c.StorageFileMode == "" {
		return defaults.StorageFilePerm
	}
	mode, err := parseFileMode(c.StorageFileMode)
	if err != nil {
		return defaults.StorageFilePerm
	}
	return mode
}

// parseFileMode parses an octal permission. The owner must be able to read
// and write the file, since every mutation rewrites it.
func parseFileMode(s string) (os.FileMode, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "0o"), 8, 32)
	if err != nil {
		return 0, fmt.Errorf("not an octal mode")
	}
	mode := os.FileMode(n)
	if mode&^os.ModePerm != 0 {
		return 0, fmt.Errorf("only permission bits are allowed")
	}
	if mode&0o600 != 0o600 {
		return 0, fmt.Errorf("owner needs read and write access")
	}
	return mode, nil
}

// EffectiveLogLevel returns the configured log level, or the default level
// of the environment.
func (c *Config) EffectiveLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return logging.LevelForEnv(c.Env)
}

// ServerConfig converts the listener settings into a server configuration.
func (c *Config) ServerConfig(name, version string) *server.Config {
	sc := server.NewConfig()
	sc.Name = name
	sc.Version = version
	sc.Address = c.Server.Address
	sc.Port = c.Server.Port
	sc.RateLimit = rate.Limit(c.Server.RateLimit)
	sc.RateLimitBurst = c.Server.RateLimitBurst
	sc.CORSAllowOrigin = c.CORS.AllowOrigin
	sc.ReadTimeout = c.Server.ReadTimeout
	sc.WriteTimeout = c.Server.WriteTimeout
	sc.IdleTimeout = c.Server.IdleTimeout
	sc.ShutdownTimeout = c.Server.ShutdownTimeout
	return sc
}
