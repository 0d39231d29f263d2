// Package store is the single authority over PortalRoom's state: accounts
// keyed by username and the global link collection.
//
// Every mutating operation runs as one critical section. The current state
// is cloned, the change is applied to the clone, the full snapshot is saved
// through Persistence and only then does the clone replace the current
// state. A rejected or unsaved operation therefore leaves no trace.
//
// Links live in exactly one place, the global collection. The per-account
// "links" list found in snapshots and exports is computed from it.
package store
