package models

import "time"

// MaxMessageLen is the width of messages.message, in characters.
const MaxMessageLen = 2000

// Message is an inquiry sent by a user about a rental.
type Message struct {
	ID        int64
	RentalID  int64
	UserID    int64
	Message   string
	CreatedAt time.Time
}
