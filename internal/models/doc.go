// Package models defines the persisted PortalRoom records: accounts, links,
// comments, lists and the snapshot that groups them.
//
// The JSON field names follow the layout the browser application used, so
// backups produced by it can be imported unchanged.
package models
