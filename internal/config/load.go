package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	berrors "git.home.luguber.info/inful/booknav/internal/errors"
	"git.home.luguber.info/inful/booknav/internal/logfields"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "booknav.yaml"

// envFiles are loaded, when present, before the config is expanded.
var envFiles = []string{".env", ".env.local"}

// Load reads, expands, normalizes, defaults and validates the configuration
// at path. Normalization warnings are logged, not returned.
func Load(path string) (*Config, error) {
	loadEnvFiles(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, berrors.ConfigNotFound(path)
		}
		return nil, berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal, "failed to read config").
			WithContext("path", path)
	}

	cfg, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, berrors.ConfigInvalid(path, err)
	}

	res := cfg.Normalize()
	for _, w := range res.Warnings {
		slog.Warn("config normalized", logfields.ConfigPath(path), slog.String("detail", w))
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, berrors.ConfigInvalid(path, err)
	}
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		cfg.Root = abs
	}
	return cfg, nil
}

// Format identifies the config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

func formatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse expands ${VAR} references in data and decodes it. Unknown keys are
// rejected so typos surface instead of being silently ignored.
func Parse(data []byte, format Format) (*Config, error) {
	expanded := os.ExpandEnv(string(data))
	var cfg Config

	switch format {
	case FormatTOML:
		md, err := toml.Decode(expanded, &cfg)
		if err != nil {
			return nil, fmt.Errorf("toml: %w", err)
		}
		if keys := undecodedKeys(md); len(keys) > 0 {
			return nil, fmt.Errorf("toml: unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	}
	return &cfg, nil
}

func undecodedKeys(md toml.MetaData) []string {
	var out []string
	for _, k := range md.Undecoded() {
		// Keys below social are consumed by SocialLinks.UnmarshalTOML.
		if len(k) > 0 && k[0] == "social" {
			continue
		}
		out = append(out, k.String())
	}
	return out
}

// loadEnvFiles loads .env files next to the config and in the working
// directory. Variables already set in the process environment win.
func loadEnvFiles(dir string) {
	seen := make(map[string]bool)
	for _, base := range []string{dir, "."} {
		for _, name := range envFiles {
			p := filepath.Clean(filepath.Join(base, name))
			if seen[p] {
				continue
			}
			seen[p] = true
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := godotenv.Load(p); err != nil {
				slog.Warn("failed to load env file", logfields.Path(p), logfields.Error(err))
				continue
			}
			slog.Debug("loaded env file", logfields.Path(p))
		}
	}
}
