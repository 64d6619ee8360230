package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig without .env should succeed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Generator.AttemptMultiplier != 20 || cfg.Generator.TimeBudget != 2*time.Second {
		t.Errorf("unexpected generator defaults %+v", cfg.Generator)
	}
	if cfg.Safety.TTL != 5*time.Minute {
		t.Errorf("safety ttl = %v", cfg.Safety.TTL)
	}
	if cfg.App.Name != "meal-generator" {
		t.Errorf("app name = %q", cfg.App.Name)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_GENERATOR_ATTEMPT_MULTIPLIER", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Generator.AttemptMultiplier != 7 {
		t.Errorf("attempt multiplier = %d, want 7", cfg.Generator.AttemptMultiplier)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestValidateConfig(t *testing.T) {
	chdirTemp(t)
	base, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero multiplier", func(c *Config) { c.Generator.AttemptMultiplier = 0 }},
		{"no time budget", func(c *Config) { c.Generator.TimeBudget = 0 }},
		{"bad probability", func(c *Config) { c.Generator.OptionalSlotProbability = 1.5 }},
		{"openrouter without key", func(c *Config) { c.OpenRouter.Enabled = true; c.OpenRouter.APIKey = "" }},
		{"zero safety ttl", func(c *Config) { c.Safety.TTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			tt.mutate(&c)
			if err := validateConfig(&c); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
