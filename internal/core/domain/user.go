package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	UserStatusActive = "active"
	UserStatusBanned = "banned"
)

// User is an account identity. Game state lives in the GameProfile the user
// references; the account itself only carries credentials and moderation state.
type User struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          string    `json:"role" bson:"role"`
	Status        string    `json:"status" bson:"status"`
	GameProfileID string    `json:"game_profile_id,omitempty" bson:"game_profile_id,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	LastOnline    time.Time `json:"last_online" bson:"last_online"`
}
