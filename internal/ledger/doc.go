// Package ledger implements a hash-linked transaction ledger.
//
// A Chain starts with a fixed genesis block. Every appended Block stores the hash of its
// predecessor and a SHA-256 digest over its own timestamp, transaction and previous hash, so any
// in-place edit is caught by Chain.IsValid until Chain.Rebuild relinks the sequence.
//
// Invariants, when the chain is valid:
//   - block[i].PreviousHash() == block[i-1].Hash() for every i > 0
//   - block[i].Hash() == block[i].CalculateHash()
//
// Chains are single-writer structures. Events are reported through an EventSink, never logged
// directly.
package ledger
