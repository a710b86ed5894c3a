package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wonderfulspam/format-smith/pkg/catalog"
)

// isolate runs the test in an empty working directory with the override
// variables unset.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{EnvExecutable, EnvTimeout, EnvStylesDir} {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if config.ClangFormat.Executable != catalog.DefaultExecutable {
		t.Errorf("Executable = %q, want %q", config.ClangFormat.Executable, catalog.DefaultExecutable)
	}
	if config.ClangFormat.Timeout != catalog.DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", config.ClangFormat.Timeout, catalog.DefaultTimeout)
	}
	if config.Catalog.Backend != catalog.BackendClangFormat {
		t.Errorf("Backend = %q, want %q", config.Catalog.Backend, catalog.BackendClangFormat)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	content := `version: "1.0"
clang_format:
  executable: /usr/lib/llvm-18/bin/clang-format
  timeout: 5s
catalog:
  concurrency: 2
`
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if config.ClangFormat.Executable != "/usr/lib/llvm-18/bin/clang-format" {
		t.Errorf("Executable = %q", config.ClangFormat.Executable)
	}
	if config.ClangFormat.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", config.ClangFormat.Timeout)
	}
	if config.Catalog.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", config.Catalog.Concurrency)
	}
	if config.Catalog.Backend != catalog.BackendClangFormat {
		t.Errorf("Backend should keep its default, got %q", config.Catalog.Backend)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("clang_format: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("clang_format:\n  executable: from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvExecutable, "from-env")
	t.Setenv(EnvTimeout, "250ms")
	t.Setenv(EnvStylesDir, "/srv/styles")

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if config.ClangFormat.Executable != "from-env" {
		t.Errorf("Executable = %q, want from-env", config.ClangFormat.Executable)
	}
	if config.ClangFormat.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout = %s, want 250ms", config.ClangFormat.Timeout)
	}
	if config.Catalog.Backend != catalog.BackendDirectory || config.Catalog.Directory != "/srv/styles" {
		t.Errorf("styles dir env should select the directory backend, got %q %q", config.Catalog.Backend, config.Catalog.Directory)
	}
}

func TestInvalidTimeoutEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTimeout, "soon")

	if _, err := Load(""); err == nil {
		t.Error("expected error for unparseable timeout")
	}
}

func TestDotEnvFile(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvExecutable+"=clang-format-17\n"), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if config.ClangFormat.Executable != "clang-format-17" {
		t.Errorf("Executable = %q, want clang-format-17 from .env", config.ClangFormat.Executable)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "saved.yml")

	original := Default()
	original.ClangFormat.Timeout = 45 * time.Second
	original.Catalog.Concurrency = 8
	if err := Save(original, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *loaded != *original {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, original)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"empty executable", func(c *Config) { c.ClangFormat.Executable = "" }, "executable must not be empty"},
		{"directory without path", func(c *Config) { c.Catalog.Backend = catalog.BackendDirectory }, "catalog.directory is required"},
		{"directory with path", func(c *Config) {
			c.Catalog.Backend = catalog.BackendDirectory
			c.Catalog.Directory = "styles"
		}, ""},
		{"unknown backend", func(c *Config) { c.Catalog.Backend = "http" }, "invalid catalog backend"},
		{"negative timeout", func(c *Config) { c.ClangFormat.Timeout = -time.Second }, "timeout must not be negative"},
		{"negative concurrency", func(c *Config) { c.Catalog.Concurrency = -1 }, "concurrency must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
