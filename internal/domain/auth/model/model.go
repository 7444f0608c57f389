package model

import "time"

// User is the persisted shape of an account. IDs are minted by the service
// layer; the password digest never leaves the store/service boundary.
type User struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// PublicUser is what goes over the wire and into token claims.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// AuthResult is the response of every auth operation: the identity plus a
// freshly signed token over it.
type AuthResult struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}
