// Package store holds the loaded catalog. A Store is an immutable snapshot of
// the records read from one dataset resource; Live tracks which snapshot is
// current so that a file watcher can swap in a reloaded one while readers
// keep querying the old one.
package store
