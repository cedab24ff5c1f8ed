// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this
// package only defines the configuration structure (port, API key)
// embedded by core/config.
package server
