// Package cli provides the interactive PortalRoom command-line client.
//
// The client works against a local store (SQLite by default) and keeps the
// logged-in user as the store's current session, so a restart resumes where
// the previous run left off. Optional collaborators are wired from config:
//   - remote backup (gist or S3) for push/pull
//   - page metadata scraping to pre-fill link submissions
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
