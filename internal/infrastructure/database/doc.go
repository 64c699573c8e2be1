// Package database manages the gateway's local SQLite connection.
//
// The gateway uses a single SQLite file for last-known thing state so a
// restart can restore property values without waiting for fresh readings.
// The connection is configured for a single writer with WAL mode and a
// busy timeout, which is the reliable way to run SQLite from one process.
package database
