package models

// User is a credential record. It maps to the `users` table.
// PasswordHash holds a bcrypt hash and is never serialized.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}
