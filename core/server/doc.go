// Package server holds the HTTP server configuration.
//
// The server exposes pass history and dry-run plans read-only. Authentication is a
// shared API key checked by core/middleware; leaving it empty disables the check.
package server
