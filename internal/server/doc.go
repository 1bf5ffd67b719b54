// Package server provides the HTTP server for the web-debit navigate relay.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// The package includes the relay handler for GET / and POST / and wires the
// infrastructure handlers (health, debug, version) and static assets.
//
// middleware is in internal/server/middleware
package server
