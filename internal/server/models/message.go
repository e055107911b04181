// Package models contains the persistent entities of the server.
package models

import "time"

// Message is the stored form of a one-time secret. Only the ciphertext,
// the encryption nonce, and the bcrypt hash of the password are persisted;
// the symmetric key and the password itself exist solely in the save
// response returned to the sender.
type Message struct {
	ID           string
	Ciphertext   []byte
	Nonce        []byte
	PasswordHash string
	TryCount     int
	CreatedAt    time.Time
}
