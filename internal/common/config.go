package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Extract ExtractConfig
	Parse   ParseConfig
	Output  OutputConfig
	Batch   BatchConfig
	Ledger  LedgerConfig
	Server  ServerConfig
	Log     LogConfig
}

// ExtractConfig holds text acquisition configuration
type ExtractConfig struct {
	Pdftotext       string
	Layout          bool   // pass -layout to pdftotext
	Backend         string // "pdftotext" | "native"
	Timeout         time.Duration
	RowSnapEMU      int64
	SignatureWindow int
}

// ParseConfig holds the section parser heuristics.
type ParseConfig struct {
	TitleMaxLen    int
	MinItemLen     int
	MinBlockLen    int
	PairGap        int
	StatLookahead  int
	FootnoteMaxLen int
	CategoryMaxLen int
	ValidateSchema bool
}

// OutputConfig holds where reports are written
type OutputConfig struct {
	Dir string
}

// BatchConfig holds directory driver configuration
type BatchConfig struct {
	InputDir      string
	Workers       int
	Recursive     bool
	SkipUnchanged bool
	QueueSize     int
	Debounce      time.Duration
}

// LedgerConfig holds the run ledger database configuration. Empty DSN disables it.
type LedgerConfig struct {
	DSN             string
	MaxConns        int32
	MaxConnLifetime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
	HTTPAddr string
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	BackendPdftotext = "pdftotext"
	BackendNative    = "native"
)

var defaults = map[string]any{
	"AUTOSTRAT_DIR":        "data/autostrat",
	"PDF_DIR":              "data/autostrat/pdfs",
	"PDFTOTEXT":            "pdftotext",
	"PDFTOTEXT_LAYOUT":     false,
	"PDF_BACKEND":          BackendPdftotext,
	"EXTRACT_TIMEOUT":      30 * time.Second,
	"SLIDE_ROW_SNAP_EMU":   190500,
	"SIGNATURE_WINDOW":     500,
	"TITLE_MAX_LEN":        80,
	"MIN_ITEM_LEN":         5,
	"MIN_BLOCK_LEN":        10,
	"PAIR_GAP":             40,
	"STAT_LOOKAHEAD":       3,
	"FOOTNOTE_MAX_LEN":     60,
	"CATEGORY_MAX_LEN":     60,
	"VALIDATE_SCHEMA":      true,
	"WORKERS":              1,
	"RECURSIVE":            false,
	"SKIP_UNCHANGED":       false,
	"QUEUE_SIZE":           64,
	"WATCH_DEBOUNCE":       2 * time.Second,
	"LEDGER_DSN":           "",
	"LEDGER_MAX_CONNS":     4,
	"LEDGER_CONN_LIFETIME": 30 * time.Minute,
	"LEDGER_DIAL_TIMEOUT":  3 * time.Second,
	"GRPC_ADDR":            ":8080",
	"HTTP_ADDR":            ":8081",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
}

// LoadConfig reads defaults, then the optional config file, then the
// environment. Later sources win.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, NewAppError("CONFIG_ERROR", fmt.Sprintf("read config file %s", path), err)
		}
	}

	cfg := &Config{
		Extract: ExtractConfig{
			Pdftotext:       v.GetString("PDFTOTEXT"),
			Layout:          v.GetBool("PDFTOTEXT_LAYOUT"),
			Backend:         strings.ToLower(v.GetString("PDF_BACKEND")),
			Timeout:         v.GetDuration("EXTRACT_TIMEOUT"),
			RowSnapEMU:      v.GetInt64("SLIDE_ROW_SNAP_EMU"),
			SignatureWindow: v.GetInt("SIGNATURE_WINDOW"),
		},
		Parse: ParseConfig{
			TitleMaxLen:    v.GetInt("TITLE_MAX_LEN"),
			MinItemLen:     v.GetInt("MIN_ITEM_LEN"),
			MinBlockLen:    v.GetInt("MIN_BLOCK_LEN"),
			PairGap:        v.GetInt("PAIR_GAP"),
			StatLookahead:  v.GetInt("STAT_LOOKAHEAD"),
			FootnoteMaxLen: v.GetInt("FOOTNOTE_MAX_LEN"),
			CategoryMaxLen: v.GetInt("CATEGORY_MAX_LEN"),
			ValidateSchema: v.GetBool("VALIDATE_SCHEMA"),
		},
		Output: OutputConfig{
			Dir: v.GetString("AUTOSTRAT_DIR"),
		},
		Batch: BatchConfig{
			InputDir:      v.GetString("PDF_DIR"),
			Workers:       v.GetInt("WORKERS"),
			Recursive:     v.GetBool("RECURSIVE"),
			SkipUnchanged: v.GetBool("SKIP_UNCHANGED"),
			QueueSize:     v.GetInt("QUEUE_SIZE"),
			Debounce:      v.GetDuration("WATCH_DEBOUNCE"),
		},
		Ledger: LedgerConfig{
			DSN:             v.GetString("LEDGER_DSN"),
			MaxConns:        v.GetInt32("LEDGER_MAX_CONNS"),
			MaxConnLifetime: v.GetDuration("LEDGER_CONN_LIFETIME"),
			DialTimeout:     v.GetDuration("LEDGER_DIAL_TIMEOUT"),
		},
		Server: ServerConfig{
			GRPCAddr: v.GetString("GRPC_ADDR"),
			HTTPAddr: v.GetString("HTTP_ADDR"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}
	return cfg, nil
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	val := NewValidator().
		Field("AUTOSTRAT_DIR", c.Output.Dir, Required).
		Field("PDF_BACKEND", c.Extract.Backend, OneOf(BackendPdftotext, BackendNative)).
		Field("EXTRACT_TIMEOUT", int64(c.Extract.Timeout), Positive).
		Field("SLIDE_ROW_SNAP_EMU", c.Extract.RowSnapEMU, Positive).
		Field("SIGNATURE_WINDOW", c.Extract.SignatureWindow, Positive).
		Field("TITLE_MAX_LEN", c.Parse.TitleMaxLen, Positive).
		Field("STAT_LOOKAHEAD", c.Parse.StatLookahead, Positive).
		Field("WORKERS", c.Batch.Workers, Positive).
		Field("LOG_LEVEL", c.Log.Level, OneOf("debug", "info", "warn", "error")).
		Field("LOG_FORMAT", c.Log.Format, OneOf("json", "text"))
	if c.Extract.Backend == BackendPdftotext {
		val.Field("PDFTOTEXT", c.Extract.Pdftotext, Required)
	}
	if err := val.Error(); err != nil {
		return NewAppError("CONFIG_ERROR", "invalid configuration", errors.Join(ErrInvalidInput, err))
	}
	return nil
}
