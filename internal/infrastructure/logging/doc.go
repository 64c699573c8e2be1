// Package logging provides structured logging built on log/slog.
//
// The gateway logs JSON by default so deployments can ship logs straight
// into an aggregator; text format is available for development. Domain
// packages never import this package directly: they declare a small local
// Logger interface and receive a *logging.Logger through it, which keeps
// them testable with an in-package mock.
package logging
