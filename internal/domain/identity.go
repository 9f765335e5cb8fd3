package domain

import "github.com/google/uuid"

// Identity is the active user reference. Authenticated ids come from the
// users table; anonymous ids are minted locally.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Anonymous bool   `json:"isAnonymous"`
}

const AnonymousEmail = "anonymous@demo.com"

func NewAnonymous() *Identity {
	return &Identity{ID: uuid.NewString(), Email: AnonymousEmail, Anonymous: true}
}

func NewAuthenticated(id, email string) *Identity {
	return &Identity{ID: id, Email: email}
}
