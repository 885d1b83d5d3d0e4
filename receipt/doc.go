// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package receipt issues and checks vote receipts.

# Receipt IDs

Every accepted vote gets a random UUID:

	id := receipt.NewID()

# Digests

A digest binds a vote to its round, apartment, and ballot number using
HMAC-SHA256 under a secret salt:

	digest := receipt.Digest(roundID, 101, 42, salt)
	err := receipt.Verify(digest, roundID, 101, 42, salt)

The ledger stores the digest instead of the ballot number, so reading the
ledger does not reveal how an apartment voted. A voter who knows their
ballot number can still prove the vote was counted.

# Short Codes

Digests are long hex strings. ShortCode turns one into a short base62
code that fits on a printed slip:

	code := receipt.ShortCode(digest)

# Salts

When no salt is configured a random one is generated per run:

	salt, err := receipt.GenerateSalt()

Receipts issued under a generated salt cannot be verified after the
process exits.
*/
package receipt
