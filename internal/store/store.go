package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// User represents a registered user and their profile.
type User struct {
	ID             int64
	Email          string
	Name           string
	About          string
	ProfilePicture string
	PasswordHash   string
	CreatedAt      time.Time
}

// MessageStatus tracks delivery state of a persisted message.
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// Message represents a persisted direct message between two users.
// Delivery over the relay is best-effort; clients poll this store to
// fetch what they missed.
type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Body       string
	Type       string // "text", "image", "audio"
	Status     MessageStatus
	CreatedAt  time.Time
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser creates a new user with hashed password.
	CreateUser(ctx context.Context, email, name, passwordHash string) (*User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile updates the onboarding profile fields.
	UpdateProfile(ctx context.Context, id int64, name, about, profilePicture string) error

	// ListUsers returns all users ordered by name, for the contact list.
	ListUsers(ctx context.Context) ([]*User, error)
}

// MessageStore handles message persistence.
type MessageStore interface {
	// SaveMessage persists a message and fills in its ID and CreatedAt.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListMessagesBetween returns the conversation between two users in
	// either direction, oldest first.
	ListMessagesBetween(ctx context.Context, userA, userB int64) ([]*Message, error)

	// MarkMessagesRead marks all messages from sender to receiver as read.
	MarkMessagesRead(ctx context.Context, senderID, receiverID int64) error
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
