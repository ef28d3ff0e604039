package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openparl/tally/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "1m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "tally"
user = "tally"
password = "tally"
ssl_mode = "disable"

[storage]
container_name = "snapshots"
connection_string = "DefaultEndpointsProtocol=http;AccountName=tallystore;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/tallystore;"

[api]
base_path = "/api"

[ingest]
commons_url = "https://www.ourcommons.ca"
legis_url = "https://www.parl.ca"
delay = "500ms"
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"

[ingest]
delay = "5s"
`

// minimalConfig provides the minimum fields required for validation to
// pass (db name, db user, storage connection string).
const minimalConfig = `
[database]
name = "tally"
user = "tally"

[storage]
connection_string = "conn"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "tally" {
		t.Errorf("database name: got %q, want tally", cfg.Database.Name)
	}
	if cfg.Ingest.DelayDuration().Milliseconds() != 500 {
		t.Errorf("ingest delay: got %v, want 500ms", cfg.Ingest.DelayDuration())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TALLY_DB_NAME", "tally")
	t.Setenv("TALLY_DB_USER", "tally")
	t.Setenv("TALLY_STORAGE_CONNECTION_STRING", "conn")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("shutdown_timeout: got %q, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.Ingest.CommonsURL != "https://www.ourcommons.ca" {
		t.Errorf("commons_url: got %q, want default", cfg.Ingest.CommonsURL)
	}
	if cfg.Ingest.MaxRetries != 3 {
		t.Errorf("max_retries: got %d, want 3", cfg.Ingest.MaxRetries)
	}
}

func TestLoadEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv("TALLY_ENV", "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("database host: got %q, want overlay prodhost", cfg.Database.Host)
	}
	if cfg.Ingest.Delay != "5s" {
		t.Errorf("ingest delay: got %q, want overlay 5s", cfg.Ingest.Delay)
	}
	if cfg.Database.Name != "tally" {
		t.Errorf("database name: got %q, want base value preserved", cfg.Database.Name)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)
	t.Setenv("TALLY_SHUTDOWN_TIMEOUT", "45s")
	t.Setenv("TALLY_INGEST_USER_AGENT", "test-agent/1.0")
	t.Setenv("TALLY_INGEST_SNAPSHOTS", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeout != "45s" {
		t.Errorf("shutdown_timeout: got %q, want 45s", cfg.ShutdownTimeout)
	}
	if cfg.Ingest.UserAgent != "test-agent/1.0" {
		t.Errorf("user_agent: got %q, want test-agent/1.0", cfg.Ingest.UserAgent)
	}
	if !cfg.Ingest.Snapshots {
		t.Error("snapshots: got false, want true")
	}
}

func TestLoadInvalidIngestURL(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig+`
[ingest]
commons_url = "not a url"
`)
	chdir(t, dir)

	_, err := config.Load()
	if err == nil {
		t.Fatal("load succeeded, want invalid commons_url error")
	}
	if !strings.Contains(err.Error(), "commons_url") {
		t.Errorf("error = %v, want mention of commons_url", err)
	}
}

func TestClassifyConfigValidation(t *testing.T) {
	cfg := config.ClassifyConfig{
		Blocs: map[string]string{"Rhinoceros Party": "ANARCHIST"},
	}
	if err := cfg.Finalize(); err == nil {
		t.Fatal("finalize succeeded, want unknown bloc error")
	}

	cfg = config.ClassifyConfig{
		Blocs: map[string]string{
			"Conservative": "CONSERVATIVE",
			"Liberal":      "LIBERAL",
			"Green Party":  "OTHER",
		},
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
}

func TestClassifyConfigBuild(t *testing.T) {
	cfg := config.ClassifyConfig{}
	classifier, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if classifier == nil {
		t.Fatal("classifier is nil")
	}
	if len(classifier.Catalog().Areas()) == 0 {
		t.Error("catalog has no areas")
	}
}
