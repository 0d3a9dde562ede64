// Package database provides SQLite-based storage for htmlmend.
//
// The HistoryDB stores pair reports so that later runs can tell whether a
// repair made the document better or worse. Reports are kept as JSON next
// to a few indexed columns used for listing.
//
// The database is a single file under the XDG data directory, opened with
// the CGO-free modernc.org/sqlite driver.
package database
