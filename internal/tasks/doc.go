// Package tasks implements the task lifecycle on top of a record [Store].
//
// # Operations
//
// [Manager] exposes one method per command:
//
//  1. [Manager.Add] : assigns the next id (max id + 1, or 0) and appends a TODO task
//  2. [Manager.List] : returns non-deleted tasks in file order, [shared.ErrNoTasks] when there are none
//  3. [Manager.Remove] : soft-deletes tasks by id
//  4. [Manager.Start], [Manager.Complete], [Manager.Reopen] : status transitions
//
// # Update protocol
//
// Every mutation of existing records is a full read, an in-memory merge, and a
// full rewrite. Validation happens between the read and the rewrite: if any
// requested id is unknown or any transition is not allowed, nothing is written.
//
// Ids are checked by membership in the set of stored ids, never by comparing
// against the number of records.
package tasks
