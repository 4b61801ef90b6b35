package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"error", slog.LevelError, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" info ", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"trace", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := GetLevel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLogLevel) {
					t.Errorf("GetLevel(%q) error = %v, want ErrUnknownLogLevel", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetLevel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("GetLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetFormat(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"text", "JSON", "logfmt"} {
		if _, err := GetFormat(valid); err != nil {
			t.Errorf("GetFormat(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := GetFormat("xml"); !errors.Is(err, ErrUnknownLogFormat) {
		t.Errorf("GetFormat(xml) error = %v, want ErrUnknownLogFormat", err)
	}
}

func TestNewHandler_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo, FormatJSON))
	logger.Debug("hidden")
	logger.Info("merged", Path("a/B.html"), Class("a.B"), Error(errors.New("boom")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	for _, want := range []string{`"path":"a/B.html"`, `"class":"a.B"`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestConfig_NewLogger(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := (&Config{}).NewLogger(&buf)
		if err != nil {
			t.Fatalf("NewLogger() error: %v", err)
		}
		logger.Info("hidden")
		logger.Warn("shown")
		if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
			t.Errorf("default level output = %q, want only warn records", out)
		}
	})

	t.Run("from flags", func(t *testing.T) {
		t.Parallel()

		var cfg Config
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		cfg.RegisterFlags(flags)
		if err := flags.Parse([]string{"--log-level", "debug", "--log-format", "json"}); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		logger, err := cfg.NewLogger(&buf)
		if err != nil {
			t.Fatalf("NewLogger() error: %v", err)
		}
		logger.Debug("detail")
		if !strings.Contains(buf.String(), `"msg":"detail"`) {
			t.Errorf("output = %q, want JSON debug record", buf.String())
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()

		if _, err := (&Config{Level: "loud"}).NewLogger(&bytes.Buffer{}); !errors.Is(err, ErrUnknownLogLevel) {
			t.Errorf("NewLogger() error = %v, want ErrUnknownLogLevel", err)
		}
	})
}

func TestError_Nil(t *testing.T) {
	t.Parallel()

	if got := Error(nil); got.Value.String() != "" {
		t.Errorf("Error(nil) = %q, want empty", got.Value.String())
	}
}
