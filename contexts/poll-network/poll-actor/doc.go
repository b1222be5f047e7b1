// Package pollactor implements the poll lifecycle actor inside the
// poll-network context.
//
// Each chain owns exactly one poll and is mutated by a single writer: the
// module exposes the local operation contract (join/nominate/vote/start/close)
// and the mirrored cross-chain message handlers, enforces phase invariants
// before mutating, and runs the ranked-vote tally once on close. Business
// rules live in the domain/application layers; storage sits behind ports and
// adapters.
package pollactor
