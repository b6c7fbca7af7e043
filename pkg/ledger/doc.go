// Package ledger tracks which media items were already notified.
//
// The ledger is a bounded, insertion-ordered set of composite keys
// ("{Kind}:{Name}:{Year}"). It holds at most 100 entries; inserting past
// the bound evicts the oldest key first. State is loaded from a flat file
// at startup and written back after every successful notification, so
// duplicates are suppressed across process restarts.
package ledger
