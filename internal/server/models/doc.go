// Package models defines the server-side records persisted in PostgreSQL.
package models
