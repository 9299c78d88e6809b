package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/five82/kpcc/pkg/kpcc"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != kpcc.DefaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, kpcc.DefaultBaseURL)
	}
	if cfg.Debug != kpcc.DebugDisabled || cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("Debug/LogLevel = %v/%v", cfg.Debug, cfg.LogLevel)
	}
	if cfg.RequestTimeout != defaultRequestTimeout || cfg.ArticleLimit != defaultArticleLimit {
		t.Fatalf("RequestTimeout/ArticleLimit = %v/%d", cfg.RequestTimeout, cfg.ArticleLimit)
	}
	if !slices.Equal(cfg.ArticleTypes, []string{"news", "blogs"}) {
		t.Fatalf("ArticleTypes = %v", cfg.ArticleTypes)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.LogDir() != filepath.Dir(wantLog) {
		t.Fatalf("LogDir = %q", cfg.LogDir())
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "  http://localhost:9000/api/v3/  "
debug = "verbose"
user_agent = "tester/2"
request_timeout_seconds = 3
log_file = "  ~/.kpcc/client.log  "
log_level = "debug"
article_types = [" news ", "", "segments"]
article_limit = 5
list_context = "mobile"
settings_context = "ios"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9000/api/v3/" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Debug != kpcc.DebugVerbose || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("Debug/LogLevel = %v/%v", cfg.Debug, cfg.LogLevel)
	}
	if cfg.UserAgent != "tester/2" || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("UserAgent/RequestTimeout = %q/%v", cfg.UserAgent, cfg.RequestTimeout)
	}
	if !strings.HasPrefix(cfg.LogFile, home) || filepath.Base(cfg.LogFile) != "client.log" {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if !slices.Equal(cfg.ArticleTypes, []string{"news", "segments"}) || cfg.ArticleLimit != 5 {
		t.Fatalf("ArticleTypes/ArticleLimit = %v/%d", cfg.ArticleTypes, cfg.ArticleLimit)
	}
	if cfg.ListContext != "mobile" || cfg.SettingsContext != "ios" {
		t.Fatalf("ListContext/SettingsContext = %q/%q", cfg.ListContext, cfg.SettingsContext)
	}
}

func TestCleanList(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{" news ", "", "  ", "segments"}, []string{"news", "segments"}},
		{[]string{"", " "}, []string{}},
		{nil, []string{}},
	}
	for _, tc := range cases {
		if got := cleanList(tc.in); !slices.Equal(got, tc.want) {
			t.Fatalf("cleanList(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "http://file.example/api/v3/"
article_limit = 5
list_context = "mobile"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("KPCC_BASE_URL", "http://env.example/api/v3/")
	t.Setenv("KPCC_DEBUG", "basic")
	t.Setenv("KPCC_ARTICLE_LIMIT", "40")
	t.Setenv("KPCC_MEMBER_TOKEN", "pledge-token-1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://env.example/api/v3/" {
		t.Fatalf("BaseURL = %q, want env override", cfg.BaseURL)
	}
	if cfg.Debug != kpcc.DebugBasic || cfg.ArticleLimit != 40 {
		t.Fatalf("Debug/ArticleLimit = %v/%d", cfg.Debug, cfg.ArticleLimit)
	}
	if cfg.ListContext != "mobile" {
		t.Fatalf("ListContext = %q, want file value kept", cfg.ListContext)
	}
	if cfg.MemberToken != "pledge-token-1" {
		t.Fatalf("MemberToken = %q", cfg.MemberToken)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	for name, body := range map[string]string{
		"debug":     `debug = "loud"`,
		"log level": `log_level = "chatty"`,
		"toml":      `base_url = `,
	} {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: Load returned nil error", name)
		}
	}
}

func TestExpandPath_Tilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/logs")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "logs") {
		t.Fatalf("expandPath = %q", got)
	}
	if _, err := expandPath("  "); err == nil {
		t.Fatalf("expandPath(blank) returned nil error")
	}
}
