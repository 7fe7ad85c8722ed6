// Package models defines the domain entities of the rodo task tracker.
//
//   - [Task] : a single to-do item, stored as one record in the backing file
//   - [Status] : the task lifecycle state, a closed set plus unrecognized raw values
//   - [Snapshot] : an export of the record set into the sqlite history database
//
// Status transitions follow a small state machine, see [Status.CanTransitionTo].
// Deletion is a status change (soft delete), so ids are never reused.
package models
