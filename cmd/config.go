package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codearena/arena/internal/store"
)

// settings is the resolved configuration of one command run. Values come
// from flags, ARENA_* environment variables and an optional arena.yaml,
// in that order of precedence.
type settings struct {
	DBPath           string
	LogLevel         string
	LogFormat        string
	LLMProvider      string
	LLMModel         string
	ProvisionTimeout time.Duration
	LoadTimeout      time.Duration
	JudgeTimeout     time.Duration
	BatchSize        int
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("arena")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/arena")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	}
	return v
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	v := viperForCmd(cmd)
	s := settings{
		DBPath:           v.GetString("db"),
		LogLevel:         v.GetString("log-level"),
		LogFormat:        v.GetString("log-format"),
		LLMProvider:      v.GetString("llm-provider"),
		LLMModel:         v.GetString("llm-model"),
		ProvisionTimeout: v.GetDuration("provision-timeout"),
		LoadTimeout:      v.GetDuration("load-timeout"),
		JudgeTimeout:     v.GetDuration("judge-timeout"),
		BatchSize:        v.GetInt("batch-size"),
	}

	if s.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return s, fmt.Errorf("resolve database path: %w", err)
		}
		s.DBPath = p
	} else if err := store.EnsureDir(s.DBPath); err != nil {
		return s, fmt.Errorf("resolve database path: %w", err)
	}
	return s, nil
}

// openStore opens the database named by s.
func openStore(s settings) (*store.Store, error) {
	st, err := store.Open(s.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newLogger builds the process logger writing to w.
func newLogger(s settings, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(s.LogFormat) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// setupLogging installs the default logger on stderr.
func setupLogging(s settings) *slog.Logger {
	logger := newLogger(s, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

// setupFileLogging sends logs to arena.log next to the database, so they
// do not draw over the TUI. The returned func closes the file.
func setupFileLogging(s settings) (*slog.Logger, func(), error) {
	path := filepath.Join(filepath.Dir(s.DBPath), "arena.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := newLogger(s, f)
	slog.SetDefault(logger)
	return logger, func() { f.Close() }, nil
}
