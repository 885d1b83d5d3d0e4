// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package shell is the interactive console for running an election.

A Session reads one line at a time and drives the registry, the ballot
box, and the ledger:

	s := shell.NewSession(registry, box, ledger, os.Stdin, os.Stdout)
	s.SetInteractive(shell.IsTerminal(os.Stdin))
	err := s.Run()

# Menu

	a) Register resident      f) Vote
	b) Register candidate     g) Batch voting (not implemented)
	c) List apartments        r) Show results
	d) List residents         v) Verify receipt
	e) Import (not implemented)  h) Exit

# Voting Rounds

The first vote opens the round: every apartment registered at that moment
becomes the electorate. Apartments created later can register residents
but cannot vote in the round. Once the last apartment of the electorate
votes, the round closes and the results are printed.

# Ledger Failures

The ballot box is authoritative. If the ledger cannot be written the vote
still counts; the failure is logged and no receipt is shown.

# Interactive Mode

On a terminal the screen is cleared before each menu and messages stay up
for a few seconds. With piped input neither happens.
*/
package shell
