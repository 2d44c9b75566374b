package logger

import (
	"testing"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("Level = %s, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %s, want console", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("Output = %s, want stdout", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("Timestamp should default to true")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid json", Config{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "info", Format: "console", Output: "stderr"}, false},
		{"bad level", Config{Level: "verbose", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := &Config{Level: "nonsense", Format: "json", Output: "stdout"}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("New returned nil")
	}
	if got := l.GetLogger().GetLevel().String(); got != "info" {
		t.Errorf("level = %s, want info", got)
	}
}

func TestWithComponent(t *testing.T) {
	l := Nop().WithComponent("synthesizer")
	if l.component != "synthesizer" {
		t.Errorf("component = %s, want synthesizer", l.component)
	}
}

func TestFields(t *testing.T) {
	m := Fields("plan_id", "abc", "entries", 3)
	if m["plan_id"] != "abc" {
		t.Errorf("plan_id = %v, want abc", m["plan_id"])
	}
	if m["entries"] != 3 {
		t.Errorf("entries = %v, want 3", m["entries"])
	}
}

func TestFields_OddArgsIgnored(t *testing.T) {
	m := Fields("key", 1, "dangling")
	if len(m) != 1 {
		t.Errorf("len = %d, want 1", len(m))
	}
}

func TestGetGlobalLogger_LazyDefault(t *testing.T) {
	globalLogger = nil
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("global logger should be created lazily")
	}
}
