package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported ledger backends
const (
	LedgerSQLite   = "sqlite"
	LedgerPostgres = "postgres"
)

const DefaultLedgerURL = "file::memory:"

type Config struct {
	LedgerURL   string
	LedgerType  string
	ReceiptSalt string
	Seed        uint64
	LogLevel    slog.Level
	EnvFile     string
}

// ParseFlags reads flags, then fills the gaps from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var seed, logLevel string

	fs := flag.NewFlagSet("building-election", flag.ContinueOnError)

	fs.StringVar(&cfg.LedgerURL, "d", "", "Ledger database URL")
	fs.StringVar(&cfg.LedgerType, "t", "", "Ledger database type (sqlite or postgres)")
	fs.StringVar(&cfg.ReceiptSalt, "receipt-salt", "", "Receipt signing salt (prefer env)")
	fs.StringVar(&seed, "seed", "", "Seed for ballot number draws (0 = random)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.EnvFile, "env", ".env", "Environment file to load")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Values already in the environment win over the file
	if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
	}

	if cfg.LedgerURL == "" {
		cfg.LedgerURL = os.Getenv("LEDGER_URL")
	}
	if cfg.LedgerURL == "" {
		cfg.LedgerURL = DefaultLedgerURL
	}

	if cfg.LedgerType == "" {
		cfg.LedgerType = os.Getenv("LEDGER_TYPE")
		if cfg.LedgerType == "" {
			cfg.LedgerType = LedgerSQLite
		}
	}
	if cfg.LedgerType != LedgerSQLite && cfg.LedgerType != LedgerPostgres {
		return Config{}, fmt.Errorf("invalid ledger type %q (use sqlite or postgres)", cfg.LedgerType)
	}

	if cfg.ReceiptSalt == "" {
		cfg.ReceiptSalt = os.Getenv("RECEIPT_SALT")
	}

	if seed == "" {
		seed = os.Getenv("BALLOT_SEED")
	}
	if seed != "" {
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return Config{}, errors.New("invalid seed: must be a non-negative integer")
		}
		cfg.Seed = n
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel == "" {
		logLevel = "info"
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", logLevel)
	}

	return cfg, nil
}

// DriverName maps the ledger type to its database/sql driver
func (c Config) DriverName() string {
	if c.LedgerType == LedgerPostgres {
		return "postgres"
	}
	return "sqlite"
}
