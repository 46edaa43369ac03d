package internal

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"ERROR", LevelError},
		{"error", LevelError},
		{" Debug ", LevelDebug},
		{"TRACE", LevelTrace},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestNewDefaultLoggerReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "trace")
	if l := NewDefaultLogger(); l.Level() != LevelTrace {
		t.Errorf("level = %d, want trace", l.Level())
	}
}
