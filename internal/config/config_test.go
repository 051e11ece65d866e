package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("unexpected default model %q", cfg.OpenAI.Model)
	}
	if cfg.Agent.MaxSteps != 5 || cfg.Agent.TurnTimeout != 2*time.Minute || cfg.Agent.ToolTimeout != 10*time.Second {
		t.Errorf("unexpected agent defaults: %+v", cfg.Agent)
	}
	if !cfg.Transcript.Enabled || cfg.Transcript.QueueSize != 256 {
		t.Errorf("unexpected transcript defaults: %+v", cfg.Transcript)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AGENT_MAX_STEPS", "8")
	t.Setenv("AGENT_TOOL_TIMEOUT", "30s")
	t.Setenv("TRANSCRIPT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.Agent.MaxSteps != 8 {
		t.Errorf("expected 8 steps, got %d", cfg.Agent.MaxSteps)
	}
	if cfg.Agent.ToolTimeout != 30*time.Second {
		t.Errorf("expected 30s tool timeout, got %v", cfg.Agent.ToolTimeout)
	}
	if cfg.Transcript.Enabled {
		t.Error("expected transcripts disabled")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("AGENT_MAX_STEPS", "not-a-number")
	t.Setenv("AGENT_TURN_TIMEOUT", "garbage")

	// Unparseable values fall back to defaults rather than failing startup.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Agent.MaxSteps != 5 {
		t.Errorf("expected fallback to 5 steps, got %d", cfg.Agent.MaxSteps)
	}
	if cfg.Agent.TurnTimeout != 2*time.Minute {
		t.Errorf("expected fallback turn timeout, got %v", cfg.Agent.TurnTimeout)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &Config{Port: "8080", DBPath: "db", OpenAI: OpenAIConfig{Model: "m"},
		Agent: AgentConfig{MaxSteps: 5}, Transcript: TranscriptConfig{Dir: "d", QueueSize: 1}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	bad := *cfg
	bad.DBPath = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for empty DB path")
	}

	bad = *cfg
	bad.Agent.MaxSteps = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero max steps")
	}
}

func TestIsDevelopment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		frontend string
		want     bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:3000", true},
		{"https://records.example.com", false},
	}
	for _, tc := range cases {
		cfg := &Config{FrontendURL: tc.frontend}
		if got := cfg.IsDevelopment(); got != tc.want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", tc.frontend, got, tc.want)
		}
	}
}
