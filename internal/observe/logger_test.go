package observe

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tc := range cases {
		logger := NewLogger("test", tc.level)
		if got := logger.GetLevel(); got != tc.want {
			t.Errorf("NewLogger level %q = %v, want %v", tc.level, got, tc.want)
		}
	}
}
