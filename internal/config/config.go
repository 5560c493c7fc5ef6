// Package config loads pyraseq settings.
//
// Sources, highest precedence first: command-line flags (applied by the
// caller), environment variables, a YAML file, built-in defaults. Without an
// explicit path the file is looked up as .pyraseq.yaml or .pyraseq.yml in the
// working directory, then ~/.pyraseq/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	perrors "github.com/UriNeri/pyraseq/internal/errors"
	"github.com/UriNeri/pyraseq/internal/logging"
)

// Load merges defaults, the config file and the environment. A missing
// explicit file is an error; missing discovered files are not.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadFile(configPath, cfg); err != nil {
			return nil, err
		}
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := loadFile(path, cfg); err != nil {
				return nil, err
			}
			break
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultPaths() []string {
	paths := []string{".pyraseq.yaml", ".pyraseq.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".pyraseq", "config.yaml"))
	}
	return paths
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read config %s: %w", perrors.ErrConfig, path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse config %s: %w", perrors.ErrConfig, path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PYRASEQ_THREADS"); v != "" {
		n, err := parseInt("PYRASEQ_THREADS", v)
		if err != nil {
			return err
		}
		cfg.Run.Threads = n
	}
	if v := os.Getenv("PYRASEQ_BATCH_SIZE"); v != "" {
		n, err := parseInt("PYRASEQ_BATCH_SIZE", v)
		if err != nil {
			return err
		}
		cfg.Run.BatchSize = n
	}
	if v := os.Getenv("PYRASEQ_PROGRESS_EVERY"); v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: PYRASEQ_PROGRESS_EVERY=%q: %w", perrors.ErrConfig, v, err)
		}
		cfg.Run.ProgressEvery = n
	}
	if v := os.Getenv("PYRASEQ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PYRASEQ_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("PYRASEQ_S3_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("PYRASEQ_S3_REGION"); v != "" {
		cfg.Storage.Region = v
	}
	if v := os.Getenv("PYRASEQ_S3_INSECURE"); v != "" {
		cfg.Storage.Insecure = parseBool(v)
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv("AWS_SESSION_TOKEN"); v != "" {
		cfg.Storage.SessionToken = v
	}
	return nil
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", perrors.ErrConfig, name, s, err)
	}
	return n, nil
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Validate checks value ranges. It is called after flags are applied.
func (c *Config) Validate() error {
	if c.Run.Threads < 0 {
		return fmt.Errorf("%w: threads must be >= 0, got %d", perrors.ErrConfig, c.Run.Threads)
	}
	if c.Run.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", perrors.ErrConfig, c.Run.BatchSize)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrConfig, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrConfig, err)
	}
	if (c.Storage.AccessKey == "") != (c.Storage.SecretKey == "") {
		return fmt.Errorf("%w: object store credentials need both access and secret key", perrors.ErrConfig)
	}
	return nil
}
