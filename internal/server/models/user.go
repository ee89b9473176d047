package models

import "time"

// User is the stored credential record. PasswordHash never leaves the
// service layer; boundary responses carry only public-safe fields.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch describes a partial self-service profile update. Nil fields are
// left unchanged. PasswordHash carries an already-hashed digest; plaintext
// never reaches the repository.
type UserPatch struct {
	Email        *string
	PasswordHash *string
}
