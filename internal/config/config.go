package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/five82/kpcc/pkg/kpcc"
)

// Config holds everything the browser needs to reach the API and log.
type Config struct {
	BaseURL         string
	Debug           kpcc.DebugLevel
	UserAgent       string
	RequestTimeout  time.Duration
	LogFile         string
	LogLevel        slog.Level
	ArticleTypes    []string
	ArticleLimit    int
	ListContext     string
	SettingsContext string
	MemberToken     string // optional pledge token
}

const (
	defaultConfigPath      = "~/.config/kpcc/config.toml"
	defaultLogFile         = "~/.local/state/kpcc/kpcc.log"
	defaultUserAgent       = "kpcc-tui/0.1"
	defaultRequestTimeout  = 10 * time.Second
	defaultArticleLimit    = 20
	defaultListContext     = "homepage"
	defaultSettingsContext = "app"

	// EnvPrefix is prepended to every environment override, e.g.
	// KPCC_BASE_URL.
	EnvPrefix = "KPCC"
)

var defaultArticleTypes = []string{kpcc.TypeNews, kpcc.TypeBlogs}

// fileConfig mirrors config.toml.
type fileConfig struct {
	BaseURL               string   `toml:"base_url"`
	Debug                 string   `toml:"debug"`
	UserAgent             string   `toml:"user_agent"`
	RequestTimeoutSeconds int      `toml:"request_timeout_seconds"`
	LogFile               string   `toml:"log_file"`
	LogLevel              string   `toml:"log_level"`
	ArticleTypes          []string `toml:"article_types"`
	ArticleLimit          int      `toml:"article_limit"`
	ListContext           string   `toml:"list_context"`
	SettingsContext       string   `toml:"settings_context"`
	MemberToken           string   `toml:"member_token"`
}

// envConfig lists the KPCC_* variables that override the file. Empty values
// leave the file setting alone.
type envConfig struct {
	BaseURL               string   `env:"BASE_URL"`
	Debug                 string   `env:"DEBUG"`
	UserAgent             string   `env:"USER_AGENT"`
	RequestTimeoutSeconds int      `env:"REQUEST_TIMEOUT_SECONDS"`
	LogFile               string   `env:"LOG_FILE"`
	LogLevel              string   `env:"LOG_LEVEL"`
	ArticleTypes          []string `env:"ARTICLE_TYPES"`
	ArticleLimit          int      `env:"ARTICLE_LIMIT"`
	ListContext           string   `env:"LIST_CONTEXT"`
	SettingsContext       string   `env:"SETTINGS_CONTEXT"`
	MemberToken           string   `env:"MEMBER_TOKEN"`
}

// Load reads the config file, falling back to defaults when it is missing,
// then applies KPCC_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	env, err := loadEnv()
	if err != nil {
		return Config{}, err
	}
	raw.overlay(env)

	return raw.resolve()
}

func readFile(path string) (fileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

func loadEnv() (envConfig, error) {
	var env envConfig
	loader := aconfig.LoaderFor(&env, aconfig.Config{
		SkipDefaults:     true,
		SkipFiles:        true,
		SkipFlags:        true,
		EnvPrefix:        EnvPrefix,
		AllowUnknownEnvs: true,
	})
	if err := loader.Load(); err != nil {
		return envConfig{}, fmt.Errorf("load environment: %w", err)
	}
	return env, nil
}

func (f *fileConfig) overlay(env envConfig) {
	overrideString(&f.BaseURL, env.BaseURL)
	overrideString(&f.Debug, env.Debug)
	overrideString(&f.UserAgent, env.UserAgent)
	overrideString(&f.LogFile, env.LogFile)
	overrideString(&f.LogLevel, env.LogLevel)
	overrideString(&f.ListContext, env.ListContext)
	overrideString(&f.SettingsContext, env.SettingsContext)
	overrideString(&f.MemberToken, env.MemberToken)
	if env.RequestTimeoutSeconds > 0 {
		f.RequestTimeoutSeconds = env.RequestTimeoutSeconds
	}
	if env.ArticleLimit > 0 {
		f.ArticleLimit = env.ArticleLimit
	}
	if len(env.ArticleTypes) > 0 {
		f.ArticleTypes = env.ArticleTypes
	}
}

func overrideString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func (f fileConfig) resolve() (Config, error) {
	cfg := Config{
		BaseURL:         strings.TrimSpace(f.BaseURL),
		UserAgent:       strings.TrimSpace(f.UserAgent),
		RequestTimeout:  time.Duration(f.RequestTimeoutSeconds) * time.Second,
		LogFile:         strings.TrimSpace(f.LogFile),
		ArticleLimit:    f.ArticleLimit,
		ListContext:     strings.TrimSpace(f.ListContext),
		SettingsContext: strings.TrimSpace(f.SettingsContext),
		MemberToken:     strings.TrimSpace(f.MemberToken),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = kpcc.DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)
	if cfg.ArticleLimit <= 0 {
		cfg.ArticleLimit = defaultArticleLimit
	}
	if cfg.ListContext == "" {
		cfg.ListContext = defaultListContext
	}
	if cfg.SettingsContext == "" {
		cfg.SettingsContext = defaultSettingsContext
	}

	cfg.ArticleTypes = cleanList(f.ArticleTypes)
	if len(cfg.ArticleTypes) == 0 {
		cfg.ArticleTypes = append([]string(nil), defaultArticleTypes...)
	}

	debug, err := kpcc.ParseDebugLevel(f.Debug)
	if err != nil {
		return Config{}, fmt.Errorf("parse debug: %w", err)
	}
	cfg.Debug = debug

	cfg.LogLevel = slog.LevelInfo
	if level := strings.TrimSpace(f.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
	}
	return cfg, nil
}

// LogDir is the directory holding LogFile.
func (c Config) LogDir() string {
	return filepath.Dir(c.LogFile)
}

func cleanList(values []string) []string {
	return lo.Compact(lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	}))
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
