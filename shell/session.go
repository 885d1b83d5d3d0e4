// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/building-election/election"
	"github.com/danielhkuo/building-election/models"
)

// Recorder is the audit trail the session writes to
type Recorder interface {
	OpenRound(roundID string, electorateSize int) error
	RecordCandidate(entry models.CandidateEntry) error
	RecordVote(roundID string, apartment, ballotNumber int) (models.VoteReceipt, error)
	CloseRound(roundID string, results []models.CandidateResult) error
	VerifyReceipt(shortCode string, apartment, ballotNumber int) error
}

var (
	// errInputClosed ends the session when the input runs out
	errInputClosed = errors.New("input closed")
	errExit        = errors.New("exit")
)

const menu = `Select an option:
    a) Register resident
    b) Register candidate
    c) List apartments
    d) List residents
    e) Import residents and candidates
    f) Vote
    g) Batch voting
    r) Show results
    v) Verify receipt
    h) Exit
`

// Pauses after a message, interactive terminals only
const (
	shortPause = 2 * time.Second
	longPause  = 5 * time.Second
)

type Session struct {
	registry *election.Registry
	box      *election.BallotBox
	ledger   Recorder

	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	sleep       func(time.Duration)

	roundOpen   bool
	roundClosed bool
}

func NewSession(registry *election.Registry, box *election.BallotBox, ledger Recorder, in io.Reader, out io.Writer) *Session {
	return &Session{
		registry: registry,
		box:      box,
		ledger:   ledger,
		in:       bufio.NewScanner(in),
		out:      out,
		sleep:    time.Sleep,
	}
}

// SetInteractive turns screen clearing and pauses on or off
func (s *Session) SetInteractive(interactive bool) {
	s.interactive = interactive
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Run shows the menu until the user exits or the input ends
func (s *Session) Run() error {
	for {
		s.clearScreen()
		fmt.Fprint(s.out, menu)

		option, err := s.readLine("Option: ")
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		err = s.dispatch(strings.ToLower(option))
		if errors.Is(err, errExit) || errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) dispatch(option string) error {
	switch option {
	case "a":
		return s.registerResident()
	case "b":
		return s.registerCandidate()
	case "c":
		s.listApartments()
	case "d":
		s.listResidents()
	case "e", "g":
		fmt.Fprintln(s.out, "Not implemented yet.")
		s.pause(shortPause)
	case "f":
		return s.vote()
	case "r":
		s.showResults()
	case "v":
		return s.verifyReceipt()
	case "h":
		fmt.Fprintln(s.out, "Session finished.")
		return errExit
	default:
		fmt.Fprintln(s.out, "Invalid option! Try again.")
		s.pause(shortPause)
	}
	return nil
}

// readLine prints a prompt and returns the next trimmed input line
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// readNumber re-prompts until the input is a whole number
func (s *Session) readNumber(prompt string) (int, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 0 {
			return n, nil
		}
	}
}

// readName re-prompts until the input is not blank
func (s *Session) readName(prompt string) (string, error) {
	for {
		name, err := s.readLine(prompt)
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
}

func (s *Session) clearScreen() {
	if s.interactive {
		fmt.Fprint(s.out, "\033[H\033[2J")
	}
}

func (s *Session) pause(d time.Duration) {
	if s.interactive {
		s.sleep(d)
	}
}

// warn logs a ledger failure; the in-memory election carries on
func warn(msg string, err error, args ...any) {
	slog.Warn(msg, append([]any{"error", err}, args...)...)
}
