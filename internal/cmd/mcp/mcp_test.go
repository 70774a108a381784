package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.StorePath != "basilisk.db" {
		t.Errorf("store path = %q, want basilisk.db", cfg.StorePath)
	}
	if cfg.Transport != "stdio" {
		t.Errorf("transport = %q, want stdio", cfg.Transport)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("BASILISK_STORE_PATH", "/env/basilisk.db")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, []string{"-store", "/flag/basilisk.db", "-tuning", "overrides.yaml"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.StorePath != "/flag/basilisk.db" {
		t.Errorf("store path = %q, flag should win", cfg.StorePath)
	}
	if cfg.TuningPath != "overrides.yaml" {
		t.Errorf("tuning path = %q", cfg.TuningPath)
	}
}

func TestParseConfigEnvOnly(t *testing.T) {
	t.Setenv("BASILISK_MCP_TRANSPORT", "stdio")
	t.Setenv("BASILISK_STORE_PATH", "/env/basilisk.db")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.StorePath != "/env/basilisk.db" {
		t.Errorf("store path = %q, want env value", cfg.StorePath)
	}
}
