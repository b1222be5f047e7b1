// Package pollfactory implements poll creation inside the poll-network
// context.
//
// CreatePoll spawns a new single-owner chain through the runtime substrate,
// emits the InitializePoll message to it fire-and-forget through an outbox,
// and records the chain id in the creator's append-only ledger. The relay
// worker drains pending outbox messages into per-chain mailboxes.
package pollfactory
