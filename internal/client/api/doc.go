// Package api is the HTTP client of the rentals JSON API used by the CLI.
package api
