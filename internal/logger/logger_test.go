package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config with file",
			config: Config{
				Level:        "info",
				File:         filepath.Join(os.TempDir(), "herald-test.log"),
				MaxSize:      1,
				MaxBackups:   1,
				MaxAge:       1,
				Compress:     false,
				EnableStdout: false,
			},
			wantErr: false,
		},
		{
			name: "valid config with stdout only",
			config: Config{
				Level:        "debug",
				EnableStdout: true,
			},
			wantErr: false,
		},
		{
			name: "valid config with both file and stdout",
			config: Config{
				Level:        "warn",
				File:         filepath.Join(os.TempDir(), "herald-test.log"),
				EnableStdout: true,
			},
			wantErr: false,
		},
		{
			name: "invalid log level defaults to info",
			config: Config{
				Level:        "invalid",
				EnableStdout: true,
			},
			wantErr: false,
		},
		{
			name: "empty config",
			config: Config{
				Level:        "info",
				EnableStdout: false,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.config)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, GetLogger())
			}

			if tt.config.File != "" {
				os.Remove(tt.config.File)
			}
		})
	}
}

func TestInit_CreatesLogDirectory(t *testing.T) {
	tmpDir := filepath.Join(os.TempDir(), "herald-test-logs")
	logFile := filepath.Join(tmpDir, "test.log")

	err := Init(Config{
		Level: "info",
		File:  logFile,
	})
	require.NoError(t, err)

	info, err := os.Stat(tmpDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	os.RemoveAll(tmpDir)
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger()
	assert.NotNil(t, logger)
}

func TestGetLogger_ReturnsSameInstance(t *testing.T) {
	logger1 := GetLogger()
	logger2 := GetLogger()
	assert.Same(t, logger1, logger2)
}

func TestLogFunctions(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := Init(Config{
		Level:        "info",
		EnableStdout: true,
	})
	require.NoError(t, err)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	// Debug message should not appear with info level
	assert.NotContains(t, output, "debug message")
}

func TestLogFormattedFunctions(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := Init(Config{
		Level:        "info",
		EnableStdout: true,
	})
	require.NoError(t, err)

	Debugf("debug %s", "message")
	Infof("info %s", "message")
	Warnf("warn %s", "message")
	Errorf("error %s", "message")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.NotContains(t, output, "debug message")
}

func TestWithFields(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := Init(Config{
		Level:        "info",
		EnableStdout: true,
	})
	require.NoError(t, err)

	WithFields(logrus.Fields{
		"channel": "123456",
		"chunks":  3,
	}).Info("feedback-sent-to-channel")

	WithField("command", "ping").Info("command-dispatched")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)

	output := buf.String()
	assert.Contains(t, output, "123456")
	assert.Contains(t, output, "feedback-sent-to-channel")
	assert.Contains(t, output, "ping")
}

func TestLogLevelSetting(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected logrus.Level
	}{
		{"debug level", "debug", logrus.DebugLevel},
		{"info level", "info", logrus.InfoLevel},
		{"warn level", "warn", logrus.WarnLevel},
		{"error level", "error", logrus.ErrorLevel},
		{"invalid level defaults to info", "invalid", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(Config{Level: tt.level})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, GetLogger().GetLevel())
		})
	}
}

func TestFormatterSetting(t *testing.T) {
	// Debug mode uses the text formatter
	err := Init(Config{Level: "debug"})
	require.NoError(t, err)
	assert.IsType(t, &logrus.TextFormatter{}, GetLogger().Formatter)

	// Production mode uses the JSON formatter
	err = Init(Config{Level: "info"})
	require.NoError(t, err)
	assert.IsType(t, &logrus.JSONFormatter{}, GetLogger().Formatter)
}

func TestInit_AppliesRotationDefaults(t *testing.T) {
	tmpFile := filepath.Join(os.TempDir(), "herald-defaults-test.log")

	// Zero rotation values should not be an error; defaults are applied
	err := Init(Config{
		Level: "info",
		File:  tmpFile,
	})
	assert.NoError(t, err)

	os.Remove(tmpFile)
}
