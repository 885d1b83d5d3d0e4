package main

import (
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/building-election/cliparse"
	"github.com/danielhkuo/building-election/db"
	"github.com/danielhkuo/building-election/election"
	"github.com/danielhkuo/building-election/ledger"
	"github.com/danielhkuo/building-election/receipt"
	"github.com/danielhkuo/building-election/shell"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Logs go to stderr so they don't mix with the prompts
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if cfg.ReceiptSalt == "" {
		cfg.ReceiptSalt, err = receipt.GenerateSalt()
		if err != nil {
			slog.Error("receipt salt generation failed", "error", err)
			os.Exit(1)
		}
		slog.Warn("no RECEIPT_SALT configured, receipts can only be verified during this session")
	}

	// Connect to the ledger
	dbConn, err := sql.Open(cfg.DriverName(), cfg.LedgerURL)
	if err != nil {
		slog.Error("ledger connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.LedgerType == cliparse.LedgerSQLite {
		// A memory database lives and dies with its connection
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("ledger ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Ledger schema ready", "type", cfg.LedgerType)

	var box *election.BallotBox
	if cfg.Seed != 0 {
		box = election.NewBallotBoxWithSeed(cfg.Seed)
	} else {
		box = election.NewBallotBox()
	}

	session := shell.NewSession(election.NewRegistry(), box, ledger.NewLedger(dbConn, cfg), os.Stdin, os.Stdout)
	session.SetInteractive(shell.IsTerminal(os.Stdin) && shell.IsTerminal(os.Stdout))

	slog.Info("Session started", "round_id", box.ID())
	if err := session.Run(); err != nil {
		slog.Error("Session ended", "error", err)
		os.Exit(1)
	}
	slog.Info("Session ended")
}
