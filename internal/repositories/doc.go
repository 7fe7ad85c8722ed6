// Package repositories implements SQLite persistence for the export history.
//
// Key Implementations:
//   - [SnapshotRepository] : snapshots of the record file and the tasks they captured
//
// Sequence numbers provide stable, human-readable ordering (e.g., snapshot #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
//
// The history is write-mostly: nothing in rodo reads task state back from it.
package repositories
