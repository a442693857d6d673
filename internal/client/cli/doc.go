// Package cli implements the rentals command-line client: register, login
// and me. Passwords are read from the terminal without echo.
package cli
