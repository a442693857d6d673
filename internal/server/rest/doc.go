// Package rest is the JSON-over-HTTP transport of the rentals server.
//
// Every request passes through the authorization gate. Routes on the public
// allow-list (registration, login, health, metrics and docs) are served
// without a token; every other route, including unknown ones, needs
// "Authorization: Bearer <token>" and receives the verified auth.Principal in
// its request context. Token failures of any kind are answered with the same
// 401 body and only their kind is logged.
package rest
